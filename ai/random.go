package ai

import (
	"math/rand"
	"sync"

	"golang.org/x/net/context"

	"github.com/othellobot/othello/othello"
)

type RandomAI struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, p *othello.Position) othello.Move {
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return othello.Pass
	}
	r.mu.Lock()
	i := r.r.Intn(len(moves))
	r.mu.Unlock()
	return moves[i]
}

func NewRandom(seed int64) *RandomAI {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
