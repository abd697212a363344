package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/othellobot/othello/othello"
)

// ParseBoard reads a diagram of eight lines of eight characters, 'B'
// for black, 'W' for white and '.' for an empty square, top row first.
// Blank lines and surrounding whitespace are ignored.
func ParseBoard(s string, toMove othello.Color) (*othello.Position, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != othello.Size {
		return nil, fmt.Errorf("bad board: %d rows", len(rows))
	}
	return parseRows(rows, toMove)
}

func parseRows(rows []string, toMove othello.Color) (*othello.Position, error) {
	var tiles [othello.Size][othello.Size]othello.Color
	for r, line := range rows {
		if len(line) != othello.Size {
			return nil, fmt.Errorf("row %d bad length: %d", r, len(line))
		}
		for c := 0; c < othello.Size; c++ {
			switch line[c] {
			case 'B', 'b', 'X', 'x':
				tiles[r][c] = othello.Black
			case 'W', 'w', 'O', 'o':
				tiles[r][c] = othello.White
			case '.', '-':
				tiles[r][c] = othello.Empty
			default:
				return nil, fmt.Errorf("row %d: bad square %q", r, line[c])
			}
		}
	}
	return othello.FromTiles(tiles, toMove)
}

func FormatBoard(p *othello.Position) string {
	var out strings.Builder
	for r := 0; r < othello.Size; r++ {
		for c := 0; c < othello.Size; c++ {
			out.WriteRune(p.At(r, c).Rune())
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// ParsePosition reads the one-line form written by FormatPosition: the
// 64 squares in row-major order, a space, and "b" or "w" for the side
// to move.
func ParsePosition(s string) (*othello.Position, error) {
	words := strings.Fields(s)
	if len(words) != 2 {
		return nil, errors.New("bad position: wrong number of words")
	}
	if len(words[0]) != othello.Size*othello.Size {
		return nil, fmt.Errorf("bad position: %d squares", len(words[0]))
	}
	toMove, err := parseColor(words[1])
	if err != nil {
		return nil, err
	}
	rows := make([]string, othello.Size)
	for r := range rows {
		rows[r] = words[0][r*othello.Size : (r+1)*othello.Size]
	}
	return parseRows(rows, toMove)
}

func FormatPosition(p *othello.Position) string {
	var out strings.Builder
	for r := 0; r < othello.Size; r++ {
		for c := 0; c < othello.Size; c++ {
			out.WriteRune(p.At(r, c).Rune())
		}
	}
	out.WriteByte(' ')
	if p.ToMove() == othello.White {
		out.WriteByte('w')
	} else {
		out.WriteByte('b')
	}
	return out.String()
}

func parseColor(s string) (othello.Color, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return othello.Black, nil
	case "w", "white":
		return othello.White, nil
	}
	return othello.Empty, fmt.Errorf("bad color: %q", s)
}
