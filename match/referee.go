// Package match referees games between two ai.Players.
//
// Every move request is bounded by the deadline runner. A side that
// times out or answers with a malformed or illegal move is charged a
// strike and asked again; a legal move clears its strikes. A side that
// collects StrikeLimit strikes in a row loses on the spot. Cancelling the
// context aborts the game without charging anyone.
package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/deadline"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

const DefaultStrikeLimit = 5

var (
	ErrTimeout       = errors.New("move timed out")
	ErrMalformedMove = errors.New("malformed move")
	ErrIllegalMove   = errors.New("illegal move")
)

type Outcome int

const (
	BlackWins Outcome = iota
	WhiteWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Winner returns the winning color, or othello.Empty for a draw.
func (o Outcome) Winner() othello.Color {
	switch o {
	case BlackWins:
		return othello.Black
	case WhiteWins:
		return othello.White
	}
	return othello.Empty
}

func outcomeFor(winner othello.Color) Outcome {
	switch winner {
	case othello.Black:
		return BlackWins
	case othello.White:
		return WhiteWins
	}
	return Draw
}

type EventKind int

const (
	EventMove EventKind = iota
	EventStrike
	EventEnd
)

// Event is reported to the Observer after every move, every strike,
// and once at the end of the game.
type Event struct {
	Kind     EventKind
	Side     othello.Color
	Move     othello.Move
	Err      error
	Strikes  int
	Latency  time.Duration
	Position *othello.Position
}

type Config struct {
	Black, White ai.Player

	// Limit bounds every move request. BlackLimit and WhiteLimit
	// override it for one side. Zero means unlimited.
	Limit      time.Duration
	BlackLimit time.Duration
	WhiteLimit time.Duration

	// Pace is the minimum time between moves, for human viewers.
	Pace time.Duration

	StrikeLimit int

	Initial  *othello.Position
	Clock    func() time.Time
	Observer func(Event)
}

type Result struct {
	ID      string
	Outcome Outcome

	BlackScore int
	WhiteScore int

	Started    time.Time
	Elapsed    time.Duration
	AvgLatency time.Duration

	Disqualified bool
	// Aborted is set when the context ended the game early; the
	// outcome then reflects the stones on the board at that point.
	Aborted bool
	Strikes [2]int

	Initial *othello.Position
	Moves   []othello.Move
	Final   *othello.Position
}

// Loser returns the disqualified side, if any.
func (r *Result) Loser() othello.Color {
	if !r.Disqualified {
		return othello.Empty
	}
	return r.Outcome.Winner().Flip()
}

type Referee struct {
	cfg Config
}

func New(cfg Config) *Referee {
	if cfg.StrikeLimit <= 0 {
		cfg.StrikeLimit = DefaultStrikeLimit
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Initial == nil {
		cfg.Initial = othello.New()
	}
	if cfg.Black == nil || cfg.White == nil {
		panic("match: both players are required")
	}
	return &Referee{cfg: cfg}
}

// Initial is the position the game starts from.
func (r *Referee) Initial() *othello.Position {
	return r.cfg.Initial
}

func Play(ctx context.Context, cfg Config) *Result {
	return New(cfg).Play(ctx)
}

func sideIndex(c othello.Color) int {
	if c == othello.White {
		return 1
	}
	return 0
}

func (r *Referee) player(c othello.Color) ai.Player {
	if c == othello.White {
		return r.cfg.White
	}
	return r.cfg.Black
}

func (r *Referee) limit(c othello.Color) time.Duration {
	if c == othello.White && r.cfg.WhiteLimit != 0 {
		return r.cfg.WhiteLimit
	}
	if c == othello.Black && r.cfg.BlackLimit != 0 {
		return r.cfg.BlackLimit
	}
	return r.cfg.Limit
}

func (r *Referee) emit(ev Event) {
	if r.cfg.Observer != nil {
		r.cfg.Observer(ev)
	}
}

// Validate classifies an answer from a player. It returns nil only for
// a move that is legal in p.
func Validate(p *othello.Position, m othello.Move, ok bool) error {
	if !ok {
		return ErrTimeout
	}
	if m.IsPass() {
		if !p.IsLegal(m) {
			return fmt.Errorf("%w: pass with moves available", ErrIllegalMove)
		}
		return nil
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %s", ErrMalformedMove, notation.FormatMove(m))
	}
	if !slices.Contains(p.LegalMoves(), m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, notation.FormatMove(m))
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (r *Referee) Play(ctx context.Context) *Result {
	res := &Result{
		ID:      uuid.New().String(),
		Started: r.cfg.Clock(),
		Initial: r.cfg.Initial,
	}
	logger := log.With().Str("match", res.ID).Logger()

	p := r.cfg.Initial
	var (
		calls     int
		waited    time.Duration
		lastMover = othello.Empty
	)

	for !p.IsTerminal() {
		if ctx.Err() != nil {
			res.Aborted = true
			break
		}
		side := p.ToMove()
		idx := sideIndex(side)
		if side == lastMover {
			sleep(ctx, r.cfg.Pace)
		}

		pl := r.player(side)
		snapshot := p
		m, ok, latency := deadline.Timed(ctx, r.limit(side), func(ctx context.Context) othello.Move {
			return pl.GetMove(ctx, snapshot)
		})
		if !ok && ctx.Err() != nil {
			res.Aborted = true
			break
		}
		calls++
		waited += latency

		if err := Validate(p, m, ok); err != nil {
			res.Strikes[idx]++
			logger.Debug().
				Str("side", side.String()).
				Err(err).
				Int("strikes", res.Strikes[idx]).
				Msg("strike")
			r.emit(Event{
				Kind: EventStrike, Side: side, Move: m, Err: err,
				Strikes: res.Strikes[idx], Latency: latency, Position: p,
			})
			if res.Strikes[idx] >= r.cfg.StrikeLimit {
				res.Disqualified = true
				res.Outcome = outcomeFor(side.Flip())
				break
			}
			if ok {
				sleep(ctx, r.cfg.Pace-latency)
			}
			continue
		}

		next, err := p.Move(m)
		if err != nil {
			panic(fmt.Sprintf("match: validated move %s rejected: %v", notation.FormatMove(m), err))
		}
		if !m.IsPass() && !next.IsTerminal() && len(next.LegalMoves()) == 0 {
			panic(fmt.Sprintf("match: live position with no moves after %s", notation.FormatMove(m)))
		}
		res.Strikes[idx] = 0
		res.Moves = append(res.Moves, m)
		lastMover = side
		p = next

		logger.Debug().
			Str("side", side.String()).
			Str("move", notation.FormatMove(m)).
			Dur("latency", latency).
			Msg("move")
		r.emit(Event{Kind: EventMove, Side: side, Move: m, Latency: latency, Position: p})

		sleep(ctx, r.cfg.Pace-latency)
	}

	res.Final = p
	res.BlackScore = p.PieceCount(othello.Black)
	res.WhiteScore = p.PieceCount(othello.White)
	if !res.Disqualified {
		res.Outcome = outcomeFor(p.Winner())
	}
	res.Elapsed = r.cfg.Clock().Sub(res.Started)
	if calls > 0 {
		res.AvgLatency = waited / time.Duration(calls)
	}

	logger.Debug().
		Str("outcome", res.Outcome.String()).
		Int("black", res.BlackScore).
		Int("white", res.WhiteScore).
		Bool("disqualified", res.Disqualified).
		Bool("aborted", res.Aborted).
		Uint64("hash", p.Hash()).
		Dur("elapsed", res.Elapsed).
		Msg("match over")
	r.emit(Event{Kind: EventEnd, Position: p})
	return res
}
