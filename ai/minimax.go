package ai

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

const defaultDepth = 4

type MinimaxConfig struct {
	Depth int
	Debug int

	// Sequential searches the root moves one after another instead of
	// fanning them out. The chosen move is the same either way.
	Sequential bool

	Weights  *Weights
	Evaluate EvaluationFunc
}

type Stats struct {
	Depth     int
	Evaluated uint64
	Visited   uint64
	Cutoffs   uint64
	Elapsed   time.Duration
}

// MinimaxAI is a fixed-depth alpha-beta searcher. It holds no state
// between calls, so one instance may serve concurrent searches.
type MinimaxAI struct {
	cfg      MinimaxConfig
	evaluate EvaluationFunc
}

var _ Player = &MinimaxAI{}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	m := &MinimaxAI{cfg: cfg}
	if m.cfg.Depth <= 0 {
		m.cfg.Depth = defaultDepth
	}
	m.evaluate = cfg.Evaluate
	if m.evaluate == nil {
		m.evaluate = MakeEvaluator(cfg.Weights)
	}
	return m
}

func (m *MinimaxAI) Depth() int {
	return m.cfg.Depth
}

func (m *MinimaxAI) GetMove(ctx context.Context, p *othello.Position) othello.Move {
	return m.ChooseMove(ctx, p)
}

func (m *MinimaxAI) ChooseMove(ctx context.Context, p *othello.Position) othello.Move {
	move, _, _ := m.Analyze(ctx, p)
	return move
}

// search is the state of a single ChooseMove call.
type search struct {
	m        *MinimaxAI
	me       othello.Color
	maxDepth int
	cancel   int32

	evaluated uint64
	visited   uint64
	cutoffs   uint64
}

func (s *search) cancelled() bool {
	return atomic.LoadInt32(&s.cancel) != 0
}

// Analyze returns the chosen move together with its backed-up value.
// A side with no legal move gets othello.Pass without any search.
func (m *MinimaxAI) Analyze(ctx context.Context, p *othello.Position) (othello.Move, float64, Stats) {
	start := time.Now()
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return othello.Pass, 0, Stats{Depth: m.cfg.Depth}
	}

	s := &search{m: m, me: p.ToMove(), maxDepth: m.cfg.Depth}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			atomic.StoreInt32(&s.cancel, 1)
		case <-done:
		}
	}()

	children := make([]*othello.Position, len(moves))
	for i, mv := range moves {
		child, e := p.Move(mv)
		if e != nil {
			panic("Analyze: legal move rejected: " + e.Error())
		}
		children[i] = child
	}

	values := make([]float64, len(moves))
	if m.cfg.Sequential {
		for i, child := range children {
			values[i] = s.minValue(child, math.Inf(-1), math.Inf(1), 1)
		}
	} else {
		var g errgroup.Group
		for i, child := range children {
			i, child := i, child
			g.Go(func() error {
				values[i] = s.minValue(child, math.Inf(-1), math.Inf(1), 1)
				return nil
			})
		}
		g.Wait()
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}

	st := Stats{
		Depth:     m.cfg.Depth,
		Evaluated: atomic.LoadUint64(&s.evaluated),
		Visited:   atomic.LoadUint64(&s.visited),
		Cutoffs:   atomic.LoadUint64(&s.cutoffs),
		Elapsed:   time.Since(start),
	}
	if m.cfg.Debug > 0 {
		log.Debug().
			Str("move", notation.FormatMove(moves[best])).
			Float64("value", values[best]).
			Int("depth", st.Depth).
			Uint64("evaluated", st.Evaluated).
			Uint64("visited", st.Visited).
			Uint64("cutoffs", st.Cutoffs).
			Dur("elapsed", st.Elapsed).
			Bool("cancelled", s.cancelled()).
			Msg("minimax")
	}
	if m.cfg.Debug > 1 {
		for i, mv := range moves {
			log.Debug().
				Str("move", notation.FormatMove(mv)).
				Float64("value", values[i]).
				Msg("minimax root")
		}
	}
	return moves[best], values[best], st
}

func (s *search) leaf(p *othello.Position, depth int) bool {
	return depth >= s.maxDepth || p.IsTerminal()
}

func (s *search) score(p *othello.Position) float64 {
	atomic.AddUint64(&s.evaluated, 1)
	return s.m.evaluate(p, s.me)
}

// maxValue and minValue are fail-hard: the result is clamped to the
// [alpha, beta] window they were called with.
func (s *search) maxValue(p *othello.Position, alpha, beta float64, depth int) float64 {
	if s.leaf(p, depth) {
		return s.score(p)
	}
	atomic.AddUint64(&s.visited, 1)
	for _, succ := range successors(p) {
		if v := s.minValue(succ.p, alpha, beta, depth+1); v > alpha {
			alpha = v
		}
		if alpha >= beta {
			atomic.AddUint64(&s.cutoffs, 1)
			return beta
		}
		if s.cancelled() {
			break
		}
	}
	return alpha
}

func (s *search) minValue(p *othello.Position, alpha, beta float64, depth int) float64 {
	if s.leaf(p, depth) {
		return s.score(p)
	}
	atomic.AddUint64(&s.visited, 1)
	for _, succ := range successors(p) {
		if v := s.maxValue(succ.p, alpha, beta, depth+1); v < beta {
			beta = v
		}
		if alpha >= beta {
			atomic.AddUint64(&s.cutoffs, 1)
			return alpha
		}
		if s.cancelled() {
			break
		}
	}
	return beta
}
