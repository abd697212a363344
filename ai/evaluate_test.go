package ai

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

func mustBoard(t testing.TB, board string, toMove othello.Color) *othello.Position {
	t.Helper()
	p, err := notation.ParseBoard(board, toMove)
	require.NoError(t, err)
	return p
}

const fullBoard = `
BBBBBBBB
BBBBBBBB
BBBBBBBB
BBBBBBBB
BBBBBWWW
WWWWWWWW
WWWWWWWW
WWWWWWWW
`

func TestEvaluateTerminal(t *testing.T) {
	p := mustBoard(t, fullBoard, othello.Black)
	require.True(t, p.IsTerminal())
	for _, w := range []*Weights{&DefaultWeights, &MixedWeights} {
		e := NewEvaluator(w)
		assert.Equal(t, 10.0, e.Evaluate(p, othello.Black))
		assert.Equal(t, -10.0, e.Evaluate(p, othello.White))
	}
	assert.Equal(t, 0.0, MobilityScore(p, othello.Black))
}

func TestEvaluateNeutral(t *testing.T) {
	p := othello.New()
	assert.Equal(t, 0.0, CoinParityScore(p, othello.Black))
	assert.Equal(t, 0.0, MobilityScore(p, othello.Black))
	assert.Equal(t, 0.0, CornerScore(p, othello.Black))
	assert.Equal(t, 0.0, PositionalScore(&DefaultPositionalMap, p, othello.White))
	assert.Equal(t, 0.0, DefaultEvaluate(p, othello.Black))
	assert.Equal(t, 0.0, DefaultEvaluate(p, othello.White))
}

func TestEvaluateIdempotent(t *testing.T) {
	p := othello.New()
	for _, m := range []othello.Move{{Row: 2, Col: 3}, {Row: 2, Col: 2}, {Row: 3, Col: 2}} {
		var err error
		p, err = p.Move(m)
		require.NoError(t, err)
	}
	e := NewEvaluator(nil)
	first := e.Evaluate(p, othello.Black)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Evaluate(p, othello.Black))
	}
	assert.Equal(t, first, MakeEvaluator(&DefaultWeights)(p, othello.Black))
}

func TestCornerScore(t *testing.T) {
	held := mustBoard(t, `
B.......
........
........
...BW...
........
........
........
........
`, othello.Black)
	assert.Equal(t, 100.0, CornerScore(held, othello.Black))
	assert.Equal(t, -100.0, CornerScore(held, othello.White))

	// black can take a1; white cannot reach any corner
	reachable := mustBoard(t, `
.WB.....
........
........
........
........
........
........
........
`, othello.White)
	assert.Equal(t, 100.0, CornerScore(reachable, othello.Black))
	assert.Equal(t, -100.0, CornerScore(reachable, othello.White))
}

func TestPositionalScore(t *testing.T) {
	p := mustBoard(t, `
B.......
.W......
........
........
........
........
........
........
`, othello.Black)
	assert.Equal(t, 160.0, PositionalScore(&DefaultPositionalMap, p, othello.Black))
	assert.Equal(t, -160.0, PositionalScore(&DefaultPositionalMap, p, othello.White))
}

func TestPhaseOf(t *testing.T) {
	w := &DefaultWeights
	assert.Equal(t, Opening, w.PhaseOf(othello.New()))
	assert.Equal(t, Endgame, w.PhaseOf(mustBoard(t, fullBoard, othello.Black)))

	// 50 stones is 78% filled
	var rows bytes.Buffer
	for i := 0; i < 64; i++ {
		switch {
		case i < 25:
			rows.WriteByte('B')
		case i < 50:
			rows.WriteByte('W')
		default:
			rows.WriteByte('.')
		}
		if i%8 == 7 {
			rows.WriteByte('\n')
		}
	}
	assert.Equal(t, Midgame, w.PhaseOf(mustBoard(t, rows.String(), othello.Black)))
}

func TestValidateWeights(t *testing.T) {
	for name, w := range NamedWeights {
		assert.NoError(t, w.Validate(), name)
	}
	bad := DefaultWeights
	bad.Opening[Mobility] = 0.9
	assert.Error(t, bad.Validate())

	bad = DefaultWeights
	bad.MidgameAt = 95
	assert.Error(t, bad.Validate())
}

func TestRegimeJSON(t *testing.T) {
	out, err := json.Marshal(&DefaultWeights.Opening)
	require.NoError(t, err)
	assert.JSONEq(t, `{"coin_parity":0.2,"mobility":0.6,"corners":0.2}`, string(out))

	var back Weights
	bs, err := json.Marshal(&MixedWeights)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bs, &back))
	assert.Equal(t, MixedWeights, back)

	var r Regime
	assert.Error(t, json.Unmarshal([]byte(`{"capstone":1}`), &r))
}

func TestExplainScore(t *testing.T) {
	var buf bytes.Buffer
	ExplainScore(NewEvaluator(&DefaultWeights), &buf, othello.New(), othello.Black)
	out := buf.String()
	assert.Contains(t, out, "opening")
	for f := Feature(0); f < MaxFeature; f++ {
		assert.Contains(t, out, f.String())
	}
	assert.Contains(t, out, "total")
}
