package othello

type Color byte

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Flip() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	}
	return "invalid"
}

// Rune is the single-character form used in board diagrams.
func (c Color) Rune() rune {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	}
	return '.'
}
