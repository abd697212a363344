package match

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/othello"
)

// Factory builds a fresh player for every game. seed is derived from
// SimConfig.Seed so that a batch can be replayed.
type Factory interface {
	NewPlayer(seed int64) ai.Player
	String() string
}

type factoryFunc struct {
	name string
	fn   func(seed int64) ai.Player
}

func (f *factoryFunc) NewPlayer(seed int64) ai.Player { return f.fn(seed) }
func (f *factoryFunc) String() string                 { return f.name }

func NewFactory(name string, fn func(seed int64) ai.Player) Factory {
	return &factoryFunc{name: name, fn: fn}
}

type SimConfig struct {
	Games   int
	Threads int
	// Swap plays every game twice, once with each player as black.
	Swap bool

	P1, P2 Factory

	Limit time.Duration
	Pace  time.Duration
	Seed  int64

	Initial *othello.Position

	Verbose bool
}

type Record struct {
	Game    int
	P1Color othello.Color
	Result  *Result
}

// P1Won reports whether the first configured player won.
func (r *Record) P1Won() bool {
	return r.Result.Outcome != Draw && r.Result.Outcome.Winner() == r.P1Color
}

type Stats struct {
	Players [2]struct {
		Wins      int
		BlackWins int
		WhiteWins int
		DQWins    int
	}
	Black, White int
	Draws        int

	Disqualifications int
	AvgLatency        time.Duration

	Games []Record `json:"-"`
}

func (s *Stats) Count() int {
	return s.Black + s.White + s.Draws
}

func (s *Stats) Merge(other *Stats) Stats {
	out := *s
	for i := range out.Players {
		out.Players[i].Wins += other.Players[i].Wins
		out.Players[i].BlackWins += other.Players[i].BlackWins
		out.Players[i].WhiteWins += other.Players[i].WhiteWins
		out.Players[i].DQWins += other.Players[i].DQWins
	}
	out.Black += other.Black
	out.White += other.White
	out.Draws += other.Draws
	out.Disqualifications += other.Disqualifications
	if n := out.Count(); n > 0 {
		out.AvgLatency = (s.AvgLatency*time.Duration(s.Count()) +
			other.AvgLatency*time.Duration(other.Count())) / time.Duration(n)
	}
	out.Games = append(append([]Record(nil), s.Games...), other.Games...)
	return out
}

func (s *Stats) add(r Record) {
	res := r.Result
	switch res.Outcome {
	case BlackWins:
		s.Black++
	case WhiteWins:
		s.White++
	default:
		s.Draws++
	}
	if res.Disqualified {
		s.Disqualifications++
	}
	if res.Outcome != Draw {
		pst := &s.Players[0]
		if !r.P1Won() {
			pst = &s.Players[1]
		}
		pst.Wins++
		if res.Outcome == BlackWins {
			pst.BlackWins++
		} else {
			pst.WhiteWins++
		}
		if res.Disqualified {
			pst.DQWins++
		}
	}
	s.Games = append(s.Games, r)
}

type gameSpec struct {
	i       int
	p1color othello.Color
	seed1   int64
	seed2   int64
}

// Simulate plays cfg.Games games (twice that with Swap) between P1
// and P2 on cfg.Threads workers. Games are tallied in the order they
// finish; Stats.Games is sorted by game number.
func Simulate(ctx context.Context, cfg *SimConfig) Stats {
	threads := cfg.Threads
	if threads <= 0 {
		threads = 1
	}
	n := cfg.Games
	if cfg.Swap {
		n *= 2
	}

	specs := make(chan gameSpec)
	results := make(chan Record)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(specs)
		r := rand.New(rand.NewSource(cfg.Seed))
		for i := 0; i < n; i++ {
			spec := gameSpec{
				i:       i,
				p1color: othello.Black,
				seed1:   r.Int63(),
				seed2:   r.Int63(),
			}
			if cfg.Swap && i%2 == 1 {
				spec.p1color = othello.White
			}
			select {
			case specs <- spec:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for spec := range specs {
				results <- playOne(gctx, cfg, spec)
			}
			return nil
		})
	}
	go func() {
		g.Wait()
		close(results)
	}()

	var st Stats
	var latency time.Duration
	for r := range results {
		if cfg.Verbose {
			log.Info().
				Int("game", r.Game).
				Str("p1", r.P1Color.String()).
				Str("outcome", r.Result.Outcome.String()).
				Int("black", r.Result.BlackScore).
				Int("white", r.Result.WhiteScore).
				Bool("disqualified", r.Result.Disqualified).
				Dur("avg_latency", r.Result.AvgLatency).
				Msg("game over")
		}
		latency += r.Result.AvgLatency
		st.add(r)
	}
	if n := len(st.Games); n > 0 {
		st.AvgLatency = latency / time.Duration(n)
	}
	slices.SortFunc(st.Games, func(a, b Record) int {
		return a.Game - b.Game
	})
	return st
}

func playOne(ctx context.Context, cfg *SimConfig, spec gameSpec) Record {
	p1 := cfg.P1.NewPlayer(spec.seed1)
	p2 := cfg.P2.NewPlayer(spec.seed2)
	black, white := p1, p2
	if spec.p1color == othello.White {
		black, white = p2, p1
	}
	res := Play(ctx, Config{
		Black:   black,
		White:   white,
		Limit:   cfg.Limit,
		Pace:    cfg.Pace,
		Initial: cfg.Initial,
	})
	return Record{Game: spec.i, P1Color: spec.p1color, Result: res}
}
