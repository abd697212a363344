// Package othello implements the rules of 8x8 Othello on immutable
// positions. Every transition returns a fresh *Position; nothing
// reachable from a Position is ever mutated after construction, so
// positions may be shared freely between goroutines.
package othello

import (
	"errors"
	"hash/fnv"

	"github.com/othellobot/othello/bitboard"
)

const Size = bitboard.Size

type Position struct {
	black, white uint64
	toMove       Color

	move   int
	passes int
}

// New returns the standard starting position with Black to move.
func New() *Position {
	return &Position{
		black:  bitboard.Bit(3, 4) | bitboard.Bit(4, 3),
		white:  bitboard.Bit(3, 3) | bitboard.Bit(4, 4),
		toMove: Black,
	}
}

// FromTiles builds a position from a grid indexed [row][col]. The side
// to move is taken as given, even if it has no legal move; that side
// must then Pass.
func FromTiles(tiles [Size][Size]Color, toMove Color) (*Position, error) {
	if toMove != Black && toMove != White {
		return nil, errors.New("bad side to move")
	}
	p := &Position{toMove: toMove}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch tiles[row][col] {
			case Black:
				p.black |= bitboard.Bit(row, col)
			case White:
				p.white |= bitboard.Bit(row, col)
			case Empty:
			default:
				return nil, errors.New("bad tile")
			}
		}
	}
	p.move = bitboard.Popcount(p.black|p.white) - 4
	if p.move < 0 {
		p.move = 0
	}
	return p, nil
}

func (p *Position) ToMove() Color {
	return p.toMove
}

// MoveNumber counts plies played, including passes, since the
// position was created.
func (p *Position) MoveNumber() int {
	return p.move
}

func (p *Position) At(row, col int) Color {
	bit := bitboard.Bit(row, col)
	switch {
	case p.black&bit != 0:
		return Black
	case p.white&bit != 0:
		return White
	}
	return Empty
}

func (p *Position) Tiles() [Size][Size]Color {
	var out [Size][Size]Color
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			out[row][col] = p.At(row, col)
		}
	}
	return out
}

func (p *Position) PieceCount(c Color) int {
	switch c {
	case Black:
		return bitboard.Popcount(p.black)
	case White:
		return bitboard.Popcount(p.white)
	case Empty:
		return Size*Size - bitboard.Popcount(p.black|p.white)
	}
	return 0
}

func (p *Position) Stones(c Color) uint64 {
	switch c {
	case Black:
		return p.black
	case White:
		return p.white
	}
	return 0
}

func (p *Position) sides() (own, opp uint64) {
	if p.toMove == Black {
		return p.black, p.white
	}
	return p.white, p.black
}

func (p *Position) moves() uint64 {
	own, opp := p.sides()
	return bitboard.Moves(&bitboard.C, own, opp)
}

// MoveBits returns the legal destination squares of c as a bitboard.
func (p *Position) MoveBits(c Color) uint64 {
	switch c {
	case Black:
		return bitboard.Moves(&bitboard.C, p.black, p.white)
	case White:
		return bitboard.Moves(&bitboard.C, p.white, p.black)
	}
	return 0
}

// LegalMoves returns the moves available to the side to move in
// row-major order. The order is stable and is used as a tie-break by
// the search.
func (p *Position) LegalMoves() []Move {
	return p.LegalMovesFor(p.toMove)
}

func (p *Position) LegalMovesFor(c Color) []Move {
	bits := p.MoveBits(c)
	out := make([]Move, 0, bitboard.Popcount(bits))
	bitboard.Each(bits, func(b uint64) {
		row, col := bitboard.BitCoords(b)
		out = append(out, Move{Row: int8(row), Col: int8(col)})
	})
	return out
}

func (p *Position) IsLegal(m Move) bool {
	if m.IsPass() {
		return !p.IsTerminal() && p.moves() == 0
	}
	if !m.Valid() {
		return false
	}
	return p.moves()&m.bit() != 0
}

// IsTerminal reports whether neither side can move.
func (p *Position) IsTerminal() bool {
	return bitboard.Moves(&bitboard.C, p.black, p.white) == 0 &&
		bitboard.Moves(&bitboard.C, p.white, p.black) == 0
}

// Winner returns the color with more stones, or Empty on a tie. It is
// only meaningful once IsTerminal is true.
func (p *Position) Winner() Color {
	b, w := p.PieceCount(Black), p.PieceCount(White)
	switch {
	case b > w:
		return Black
	case w > b:
		return White
	}
	return Empty
}

func (p *Position) Hash() uint64 {
	h := fnv.New64a()
	var buf [17]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(p.black >> (8 * uint(i)))
		buf[8+i] = byte(p.white >> (8 * uint(i)))
	}
	buf[16] = byte(p.toMove)
	h.Write(buf[:])
	return h.Sum64()
}
