package ai

import (
	"golang.org/x/net/context"

	"github.com/othellobot/othello/othello"
)

// Player is anything that can pick a move. Implementations must return
// othello.Pass when, and only when, the side to move has no legal
// move. The position is shared and must be treated as read-only.
type Player interface {
	GetMove(ctx context.Context, p *othello.Position) othello.Move
}

type PlayerFunc func(ctx context.Context, p *othello.Position) othello.Move

func (f PlayerFunc) GetMove(ctx context.Context, p *othello.Position) othello.Move {
	return f(ctx, p)
}
