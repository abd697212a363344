// Package bitboard implements shift and fill primitives for an 8x8
// board packed into a uint64. Bit i corresponds to row i/8, column
// i%8, so row 0 occupies the low byte.
package bitboard

const Size = 8

type Constants struct {
	ColA, ColH uint64
	Row1, Row8 uint64
	Edge       uint64
	Corners    uint64
	Mask       uint64
	notA, notH uint64
}

var C = Precompute()

func Precompute() Constants {
	var c Constants
	for i := uint(0); i < Size; i++ {
		c.ColA |= 1 << (i * Size)
	}
	c.ColH = c.ColA << (Size - 1)
	c.Row1 = (1 << Size) - 1
	c.Row8 = c.Row1 << (Size * (Size - 1))
	c.Mask = ^uint64(0)
	c.Edge = c.ColA | c.ColH | c.Row1 | c.Row8
	c.Corners = Bit(0, 0) | Bit(0, Size-1) | Bit(Size-1, 0) | Bit(Size-1, Size-1)
	c.notA = ^c.ColA
	c.notH = ^c.ColH
	return c
}

// Direction is one of the eight compass directions a line of
// captures can run in.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var Directions = [...]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// Shift moves every bit one square in direction d, dropping bits that
// fall off the board rather than wrapping them onto the next row.
func Shift(c *Constants, bits uint64, d Direction) uint64 {
	switch d {
	case North:
		return bits >> Size
	case South:
		return bits << Size
	case East:
		return (bits << 1) & c.notA
	case West:
		return (bits >> 1) & c.notH
	case NorthEast:
		return (bits >> (Size - 1)) & c.notA
	case NorthWest:
		return (bits >> (Size + 1)) & c.notH
	case SouthEast:
		return (bits << (Size + 1)) & c.notA
	case SouthWest:
		return (bits << (Size - 1)) & c.notH
	}
	panic("bad direction")
}

// Moves returns the set of empty squares from which `own` would flank
// at least one run of `opp` stones.
func Moves(c *Constants, own, opp uint64) uint64 {
	empty := ^(own | opp)
	var moves uint64
	for _, d := range Directions {
		x := Shift(c, own, d) & opp
		for i := 0; i < Size-3; i++ {
			x |= Shift(c, x, d) & opp
		}
		moves |= Shift(c, x, d) & empty
	}
	return moves
}

// Flips returns the opponent stones captured by placing a stone on the
// single bit `move`.
func Flips(c *Constants, own, opp, move uint64) uint64 {
	var flips uint64
	for _, d := range Directions {
		var run uint64
		x := Shift(c, move, d)
		for x&opp != 0 {
			run |= x
			x = Shift(c, x, d)
		}
		if x&own != 0 {
			flips |= run
		}
	}
	return flips
}

func Bit(row, col int) uint64 {
	return 1 << uint(row*Size+col)
}

func BitCoords(bits uint64) (row, col int) {
	if bits == 0 || bits&(bits-1) != 0 {
		panic("BitCoords: non-singular")
	}
	n := int(TrailingZeros(bits))
	return n / Size, n % Size
}

// Each calls fn for every set bit, lowest first.
func Each(bits uint64, fn func(bit uint64)) {
	for bits != 0 {
		next := bits & (bits - 1)
		fn(bits &^ next)
		bits = next
	}
}
