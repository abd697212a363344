package ai

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// scaled returns 100*num/den, or 0 when den is zero. Every ratio
// feature goes through here so that an empty denominator is neutral
// instead of a NaN or a panic.
func scaled[T number](num, den T) float64 {
	if den == 0 {
		return 0
	}
	return 100 * float64(num) / float64(den)
}

func balance[T number](mine, theirs T) float64 {
	return scaled(mine-theirs, mine+theirs)
}
