package rpc

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/notation"
)

// Server answers ChooseMove with a local minimax engine. Engines are
// built lazily, one per requested depth.
type Server struct {
	Weights      *ai.Weights
	DefaultDepth int

	mu      sync.Mutex
	engines map[int]*ai.MinimaxAI
}

var _ EngineServer = &Server{}

func NewServer(w *ai.Weights, depth int) *Server {
	return &Server{Weights: w, DefaultDepth: depth}
}

func (s *Server) engine(depth int) *ai.MinimaxAI {
	if depth <= 0 {
		depth = s.DefaultDepth
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engines == nil {
		s.engines = make(map[int]*ai.MinimaxAI)
	}
	e, ok := s.engines[depth]
	if !ok {
		e = ai.NewMinimax(ai.MinimaxConfig{Depth: depth, Weights: s.Weights})
		s.engines[depth] = e
	}
	return e
}

func (s *Server) ChooseMove(ctx context.Context, req *ChooseMoveRequest) (*ChooseMoveResponse, error) {
	p, err := notation.ParsePosition(req.GetPosition())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "position: %v", err)
	}
	if p.IsTerminal() {
		return nil, status.Error(codes.FailedPrecondition, "game is over")
	}
	e := s.engine(int(req.GetDepth()))
	m, v, st := e.Analyze(ctx, p)
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return nil, status.Error(codes.DeadlineExceeded, "search ran out of time")
	case context.Canceled:
		return nil, status.Error(codes.Canceled, "search cancelled")
	}
	log.Debug().
		Str("position", req.GetPosition()).
		Str("move", notation.FormatMove(m)).
		Float64("value", v).
		Int("depth", st.Depth).
		Msg("rpc choose move")
	return &ChooseMoveResponse{
		Move:      notation.FormatMove(m),
		Value:     v,
		Evaluated: st.Evaluated,
		Depth:     int32(st.Depth),
	}, nil
}
