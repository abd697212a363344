// Package deadline runs a move computation under a wall-clock budget.
//
// The caller always regains control within the budget. A computation
// that overruns keeps running in the background with a cancelled
// context, and whatever it eventually returns is dropped.
package deadline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/othello"
)

type MoveFunc func(ctx context.Context) othello.Move

// NoMove is returned alongside ok=false. It is off the board and is not
// the pass sentinel, so it can never be mistaken for a real answer.
var NoMove = othello.Move{Row: -2, Col: -2}

// Run calls fn and waits at most budget for its answer. ok is false if
// the budget ran out, ctx was cancelled first, or fn panicked; the move
// is then NoMove. A budget of zero or less means no limit.
func Run(ctx context.Context, budget time.Duration, fn MoveFunc) (m othello.Move, ok bool) {
	child, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so a late answer never blocks the worker
	result := make(chan othello.Move, 1)
	failed := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("panic", fmt.Sprint(r)).
					Msg("move computation panicked")
				close(failed)
			}
		}()
		result <- fn(child)
	}()

	var expired <-chan time.Time
	if budget > 0 {
		timer := time.NewTimer(budget)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case m := <-result:
		return m, true
	case <-failed:
		return NoMove, false
	case <-expired:
		return NoMove, false
	case <-ctx.Done():
		return NoMove, false
	}
}

// Timed is Run plus the wall-clock time the caller spent waiting.
func Timed(ctx context.Context, budget time.Duration, fn MoveFunc) (othello.Move, bool, time.Duration) {
	start := time.Now()
	m, ok := Run(ctx, budget, fn)
	return m, ok, time.Since(start)
}
