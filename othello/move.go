package othello

import (
	"errors"

	"github.com/othellobot/othello/bitboard"
)

// Move is a zero-based (row, column) square, or Pass.
type Move struct {
	Row, Col int8
}

// Pass is returned by a player that has no legal move.
var Pass = Move{Row: -1, Col: -1}

func (m Move) IsPass() bool {
	return m == Pass
}

// Valid reports whether m names a square on the board.
func (m Move) Valid() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func (m Move) bit() uint64 {
	return bitboard.Bit(int(m.Row), int(m.Col))
}

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfBounds = errors.New("move is off the board")
	ErrGameOver    = errors.New("game is over")
)

// Move returns the position after the side to move plays m. Passing is
// only legal when the mover has no legal moves. The receiver is never
// modified.
func (p *Position) Move(m Move) (*Position, error) {
	if m.IsPass() {
		if p.IsTerminal() {
			return nil, ErrGameOver
		}
		if p.moves() != 0 {
			return nil, ErrIllegalMove
		}
		next := *p
		next.toMove = p.toMove.Flip()
		next.move++
		next.passes++
		return &next, nil
	}
	if !m.Valid() {
		return nil, ErrOutOfBounds
	}
	bit := m.bit()
	if p.moves()&bit == 0 {
		return nil, ErrIllegalMove
	}
	own, opp := p.sides()
	flips := bitboard.Flips(&bitboard.C, own, opp, bit)
	own |= bit | flips
	opp &^= flips

	next := &Position{move: p.move + 1, passes: p.passes}
	if p.toMove == Black {
		next.black, next.white = own, opp
	} else {
		next.black, next.white = opp, own
	}
	next.toMove = p.toMove.Flip()
	if next.moves() == 0 && bitboard.Moves(&bitboard.C, own, opp) != 0 {
		// the opponent is stuck, so the mover goes again
		next.toMove = p.toMove
		next.passes++
	}
	return next, nil
}
