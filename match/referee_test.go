package match

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

func mustBoard(t *testing.T, board string, toMove othello.Color) *othello.Position {
	t.Helper()
	p, err := notation.ParseBoard(board, toMove)
	require.NoError(t, err)
	return p
}

// stalled never answers until its context is cancelled.
var stalled = ai.PlayerFunc(func(ctx context.Context, p *othello.Position) othello.Move {
	<-ctx.Done()
	return othello.Pass
})

func constant(m othello.Move) ai.Player {
	return ai.PlayerFunc(func(context.Context, *othello.Position) othello.Move {
		return m
	})
}

// flaky plays bad answers in a cycle, then a legal move, and repeats.
type flaky struct {
	mu   sync.Mutex
	bad  []othello.Move
	i    int
	good ai.Player
}

func (f *flaky) GetMove(ctx context.Context, p *othello.Position) othello.Move {
	f.mu.Lock()
	i := f.i
	f.i = (f.i + 1) % (len(f.bad) + 1)
	f.mu.Unlock()
	if i < len(f.bad) {
		return f.bad[i]
	}
	return f.good.GetMove(ctx, p)
}

const blackAhead = `
BBBBBBBB
BBBBBBBB
BBBBBBBB
BBBBBBBB
BBBBBB..
WWWWWWWW
WWWWWWWW
WWWWWW..
`

func TestTimeoutsDisqualifyLeader(t *testing.T) {
	initial := mustBoard(t, blackAhead, othello.Black)
	require.False(t, initial.IsTerminal())
	require.NotEmpty(t, initial.LegalMoves())

	var strikes []int
	res := Play(context.Background(), Config{
		Black:   stalled,
		White:   ai.NewRandom(1),
		Limit:   10 * time.Millisecond,
		Initial: initial,
		Observer: func(ev Event) {
			if ev.Kind == EventStrike {
				assert.True(t, errors.Is(ev.Err, ErrTimeout))
				strikes = append(strikes, ev.Strikes)
			}
		},
	})
	assert.Equal(t, WhiteWins, res.Outcome)
	assert.True(t, res.Disqualified)
	assert.Equal(t, othello.Black, res.Loser())
	assert.Equal(t, 38, res.BlackScore)
	assert.Equal(t, 22, res.WhiteScore)
	assert.Equal(t, [2]int{5, 0}, res.Strikes)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, strikes)
	assert.Empty(t, res.Moves)
	assert.True(t, res.AvgLatency >= 10*time.Millisecond, "avg latency %s", res.AvgLatency)
	assert.NotEmpty(t, res.ID)
}

func TestIllegalMovesDisqualify(t *testing.T) {
	res := Play(context.Background(), Config{
		Black: ai.NewRandom(1),
		White: constant(othello.Move{Row: 3, Col: 3}),
	})
	assert.Equal(t, BlackWins, res.Outcome)
	assert.True(t, res.Disqualified)
	assert.Equal(t, 5, res.Strikes[1])
	assert.Len(t, res.Moves, 1)
}

func TestStrikeLimitOverride(t *testing.T) {
	res := Play(context.Background(), Config{
		Black:       constant(othello.Move{Row: 9, Col: 9}),
		White:       ai.NewRandom(1),
		StrikeLimit: 2,
	})
	assert.Equal(t, WhiteWins, res.Outcome)
	assert.Equal(t, 2, res.Strikes[0])
}

func TestTerminalScoring(t *testing.T) {
	var rows string
	for i := 0; i < 64; i++ {
		if i < 37 {
			rows += "B"
		} else {
			rows += "W"
		}
		if i%8 == 7 {
			rows += "\n"
		}
	}
	initial := mustBoard(t, rows, othello.Black)
	res := Play(context.Background(), Config{
		Black:   stalled,
		White:   stalled,
		Initial: initial,
	})
	assert.Equal(t, BlackWins, res.Outcome)
	assert.Equal(t, 37, res.BlackScore)
	assert.Equal(t, 27, res.WhiteScore)
	assert.False(t, res.Disqualified)
	assert.Equal(t, time.Duration(0), res.AvgLatency)
	assert.Equal(t, othello.Empty, res.Loser())
}

func TestLegalMoveResetsStrikes(t *testing.T) {
	black := &flaky{
		bad: []othello.Move{
			{Row: 3, Col: 3},
			{Row: -2, Col: -2},
			othello.Pass,
			{Row: 4, Col: 4},
		},
		good: ai.NewRandom(7),
	}
	var sawMalformed, sawIllegal bool
	res := Play(context.Background(), Config{
		Black: black,
		White: ai.NewRandom(8),
		Observer: func(ev Event) {
			if ev.Kind != EventStrike {
				return
			}
			assert.Equal(t, othello.Black, ev.Side)
			assert.True(t, ev.Strikes <= 4, "strikes %d", ev.Strikes)
			sawMalformed = sawMalformed || errors.Is(ev.Err, ErrMalformedMove)
			sawIllegal = sawIllegal || errors.Is(ev.Err, ErrIllegalMove)
		},
	})
	assert.False(t, res.Disqualified)
	assert.True(t, res.Final.IsTerminal())
	assert.True(t, sawMalformed)
	assert.True(t, sawIllegal)
}

func TestStuckSidePasses(t *testing.T) {
	initial := mustBoard(t, `
WWWWWWWW
WWWWWBBW
WWWWBWBW
WBWBWBBW
WBWWBWBW
WBBWBWBW
WBBBWBWW
WWWWWWW.
`, othello.White)
	res := Play(context.Background(), Config{
		Black:   ai.NewRandom(1),
		White:   ai.NewRandom(2),
		Initial: initial,
	})
	assert.Equal(t, []othello.Move{othello.Pass, {Row: 7, Col: 7}}, res.Moves)
	assert.True(t, res.Final.IsTerminal())
	assert.False(t, res.Disqualified)
	assert.Equal(t, 64, res.BlackScore+res.WhiteScore)
}

func TestValidate(t *testing.T) {
	p := othello.New()
	cases := []struct {
		m   othello.Move
		ok  bool
		err error
	}{
		{othello.Move{Row: 2, Col: 3}, true, nil},
		{othello.Move{Row: 2, Col: 3}, false, ErrTimeout},
		{othello.Move{Row: 0, Col: 0}, true, ErrIllegalMove},
		{othello.Pass, true, ErrIllegalMove},
		{othello.Move{Row: -2, Col: -2}, true, ErrMalformedMove},
		{othello.Move{Row: 8, Col: 0}, true, ErrMalformedMove},
	}
	for _, tc := range cases {
		err := Validate(p, tc.m, tc.ok)
		if tc.err == nil {
			assert.NoError(t, err, "%v", tc.m)
		} else {
			assert.ErrorIs(t, err, tc.err, "%v", tc.m)
		}
	}
}

func TestFullGame(t *testing.T) {
	var moves int
	res := Play(context.Background(), Config{
		Black: ai.NewMinimax(ai.MinimaxConfig{Depth: 2}),
		White: ai.NewRandom(3),
		Limit: 5 * time.Second,
		Observer: func(ev Event) {
			if ev.Kind == EventMove {
				moves++
			}
		},
	})
	assert.True(t, res.Final.IsTerminal())
	assert.False(t, res.Disqualified)
	assert.Equal(t, moves, len(res.Moves))
	assert.Equal(t, [2]int{0, 0}, res.Strikes)

	// replaying the record reaches the same final position
	p := othello.New()
	for _, m := range res.Moves {
		var err error
		p, err = p.Move(m)
		require.NoError(t, err)
	}
	assert.Equal(t, res.Final.Hash(), p.Hash())
}

func TestCancelledMatchAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Play(ctx, Config{
		Black: stalled,
		White: stalled,
		Pace:  time.Hour,
	})
	assert.True(t, res.Aborted)
	assert.False(t, res.Disqualified)
	assert.Equal(t, Draw, res.Outcome)
}

func TestCancelDuringMoveAborts(t *testing.T) {
	initial := mustBoard(t, blackAhead, othello.Black)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	black := ai.PlayerFunc(func(ctx context.Context, p *othello.Position) othello.Move {
		calls++
		if calls < DefaultStrikeLimit {
			return othello.Move{Row: 0, Col: 0}
		}
		cancel()
		<-ctx.Done()
		return othello.Move{Row: 0, Col: 0}
	})
	res := Play(ctx, Config{
		Black:   black,
		White:   ai.NewRandom(1),
		Limit:   time.Minute,
		Initial: initial,
	})
	assert.Equal(t, DefaultStrikeLimit, calls)
	assert.True(t, res.Aborted)
	assert.False(t, res.Disqualified)
	assert.Equal(t, [2]int{DefaultStrikeLimit - 1, 0}, res.Strikes)
	assert.Equal(t, BlackWins, res.Outcome)
	assert.Empty(t, res.Moves)
}

func TestPaceAfterStrikes(t *testing.T) {
	initial := mustBoard(t, blackAhead, othello.Black)
	pace := 40 * time.Millisecond

	start := time.Now()
	res := Play(context.Background(), Config{
		Black:       constant(othello.Move{Row: 0, Col: 0}),
		White:       ai.NewRandom(1),
		Pace:        pace,
		StrikeLimit: 3,
		Initial:     initial,
	})
	require.True(t, res.Disqualified)
	// illegal answers wait out the pace between attempts
	assert.True(t, time.Since(start) >= 2*pace, "took %s", time.Since(start))

	start = time.Now()
	res = Play(context.Background(), Config{
		Black:       stalled,
		White:       ai.NewRandom(1),
		Limit:       10 * time.Millisecond,
		Pace:        time.Hour,
		StrikeLimit: 3,
		Initial:     initial,
	})
	require.True(t, res.Disqualified)
	// timeouts are retried at once
	assert.True(t, time.Since(start) < time.Minute, "took %s", time.Since(start))
}

func TestMatchOverLogsFinalHash(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	defer func() { log.Logger = saved }()

	res := Play(context.Background(), Config{
		Black: ai.NewRandom(3),
		White: ai.NewRandom(4),
	})
	assert.Contains(t, buf.String(), fmt.Sprintf(`"hash":%d`, res.Final.Hash()))
	assert.Contains(t, buf.String(), res.ID)
}

func TestClock(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(3 * time.Second)}
	res := Play(context.Background(), Config{
		Black: ai.NewRandom(1),
		White: ai.NewRandom(2),
		Clock: func() time.Time {
			t := ticks[0]
			if len(ticks) > 1 {
				ticks = ticks[1:]
			}
			return t
		},
	})
	assert.Equal(t, start, res.Started)
	assert.Equal(t, 3*time.Second, res.Elapsed)
}
