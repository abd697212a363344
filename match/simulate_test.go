package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/othello"
)

func TestSimulate(t *testing.T) {
	cfg := &SimConfig{
		Games:   3,
		Threads: 2,
		Swap:    true,
		P1: NewFactory("minimax:1", func(int64) ai.Player {
			return ai.NewMinimax(ai.MinimaxConfig{Depth: 1})
		}),
		P2: NewFactory("rand", func(seed int64) ai.Player {
			return ai.NewRandom(seed)
		}),
		Limit: 5 * time.Second,
		Seed:  11,
	}
	st := Simulate(context.Background(), cfg)
	assert.Equal(t, 6, st.Count())
	assert.Len(t, st.Games, 6)
	assert.Equal(t, 6, st.Players[0].Wins+st.Players[1].Wins+st.Draws)
	assert.Equal(t, st.Black, st.Players[0].BlackWins+st.Players[1].BlackWins)
	assert.Zero(t, st.Disqualifications)
	for i, g := range st.Games {
		assert.Equal(t, i, g.Game)
		if i%2 == 0 {
			assert.Equal(t, othello.Black, g.P1Color)
		} else {
			assert.Equal(t, othello.White, g.P1Color)
		}
		assert.True(t, g.Result.Final.IsTerminal())
	}
	assert.Equal(t, "minimax:1", cfg.P1.String())
}

func TestSimulateDisqualifications(t *testing.T) {
	cfg := &SimConfig{
		Games: 2,
		P1: NewFactory("rand", func(seed int64) ai.Player {
			return ai.NewRandom(seed)
		}),
		P2: NewFactory("broken", func(int64) ai.Player {
			return constant(othello.Move{Row: 3, Col: 3})
		}),
	}
	st := Simulate(context.Background(), cfg)
	assert.Equal(t, 2, st.Disqualifications)
	assert.Equal(t, 2, st.Players[0].Wins)
	assert.Equal(t, 2, st.Players[0].DQWins)
	assert.Equal(t, 2, st.Players[0].BlackWins)
}

func TestMerge(t *testing.T) {
	var a, b Stats
	a.Black, a.Players[0].Wins, a.Players[0].BlackWins = 2, 2, 2
	a.AvgLatency = time.Second
	b.White, b.Draws, b.Players[1].Wins, b.Players[1].WhiteWins = 1, 1, 1, 1
	b.AvgLatency = 2 * time.Second
	b.Disqualifications = 1

	m := a.Merge(&b)
	assert.Equal(t, 4, m.Count())
	assert.Equal(t, 2, m.Players[0].Wins)
	assert.Equal(t, 1, m.Players[1].WhiteWins)
	assert.Equal(t, 1, m.Disqualifications)
	assert.Equal(t, 1500*time.Millisecond, m.AvgLatency)
}
