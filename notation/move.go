// Package notation reads and writes Othello moves, board diagrams and
// game records as text.
//
// Moves use algebraic coordinates: a column letter a-h followed by a
// row digit 1-8, so "a1" is the zero-based square (0, 0). The token
// "pass" stands for othello.Pass.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/othellobot/othello/othello"
)

const passToken = "pass"

var ErrBadMove = errors.New("bad move")

func ParseMove(s string) (othello.Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == passToken {
		return othello.Pass, nil
	}
	if len(s) != 2 {
		return othello.Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	col := s[0]
	row := s[1]
	if col < 'a' || col >= 'a'+othello.Size || row < '1' || row >= '1'+othello.Size {
		return othello.Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	return othello.Move{Row: int8(row - '1'), Col: int8(col - 'a')}, nil
}

func FormatMove(m othello.Move) string {
	if m.IsPass() {
		return passToken
	}
	if !m.Valid() {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return string([]byte{'a' + byte(m.Col), '1' + byte(m.Row)})
}

func ParseMoves(s string) ([]othello.Move, error) {
	var out []othello.Move
	for _, w := range strings.Fields(s) {
		m, err := ParseMove(w)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func FormatMoves(ms []othello.Move) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = FormatMove(m)
	}
	return strings.Join(bits, " ")
}
