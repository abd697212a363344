package oei

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

func TestEngineSession(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"oei",
		"isready",
		"newgame",
		"position startpos moves d3 c3",
		"go movetime 5000",
		"quit",
		"go",
	}, "\n") + "\n")
	var out bytes.Buffer
	e := NewEngine(in, &out)
	e.Config = ai.MinimaxConfig{Depth: 2}
	require.NoError(t, e.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "oeiok", lines[1])
	assert.Equal(t, "readyok", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "info depth 2 "), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "bestmove "), lines[4])
}

func TestEngineErrors(t *testing.T) {
	for _, script := range []string{
		"position nowhere\n",
		"position startpos moves a1\n",
		"position startpos d3\n",
		"frobnicate\n",
	} {
		e := NewEngine(strings.NewReader(script), io.Discard)
		assert.Error(t, e.Run(context.Background()), script)
	}

	var out bytes.Buffer
	e := NewEngine(strings.NewReader("go\n"), &out)
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, "bestmove none\n", out.String())
}

func TestEngineMovetimeExpired(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"position startpos moves d3 c5 f6 f5 e6 e3",
		"go movetime 1",
	}, "\n") + "\n")
	var out bytes.Buffer
	e := NewEngine(in, &out)
	e.Config = ai.MinimaxConfig{Depth: 12}
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, "bestmove none\n", out.String())
}

func TestClientIncompleteSearchIsMalformed(t *testing.T) {
	c := pipeClient(t, 12)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.Equal(t, Malformed, c.Player().GetMove(ctx, othello.New()))
}

func TestParsePosition(t *testing.T) {
	board := notation.FormatPosition(othello.New())
	_, err := parsePosition(strings.Fields("position board " + board + " moves pass"))
	assert.Error(t, err)

	p, err := parsePosition(strings.Fields("position board " + board + " moves d3 c5"))
	require.NoError(t, err)
	assert.Equal(t, othello.Black, p.ToMove())
	assert.Equal(t, 3, p.PieceCount(othello.White))

	p, err = parsePosition(strings.Fields("position startpos moves d3"))
	require.NoError(t, err)
	assert.Equal(t, othello.White, p.ToMove())
	assert.Equal(t, 4, p.PieceCount(othello.Black))
}

// pipeClient connects a Client to an in-process Engine.
func pipeClient(t *testing.T, depth int) *Client {
	t.Helper()
	toEngine, fromClient := io.Pipe()
	toClient, fromEngine := io.Pipe()
	e := NewEngine(toEngine, fromEngine)
	e.Config = ai.MinimaxConfig{Depth: depth}
	go func() {
		e.Run(context.Background())
		fromEngine.Close()
	}()
	c := &Client{}
	require.NoError(t, c.attach(toClient, fromClient, fromClient))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClientPlaysAMatch(t *testing.T) {
	c := pipeClient(t, 2)
	res := match.Play(context.Background(), match.Config{
		Black: c.Player(),
		White: ai.NewRandom(5),
		Limit: 5 * time.Second,
	})
	assert.False(t, res.Disqualified)
	assert.True(t, res.Final.IsTerminal())
}

func TestClientAgreesWithLocalSearch(t *testing.T) {
	c := pipeClient(t, 3)
	p := othello.New()
	m := c.Player().GetMove(context.Background(), p)
	want := ai.NewMinimax(ai.MinimaxConfig{Depth: 3}).ChooseMove(context.Background(), p)
	assert.Equal(t, want, m)
}
