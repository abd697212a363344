package rpc

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

func startServer(t *testing.T) (*grpc.ClientConn, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	RegisterEngineServer(srv, NewServer(&ai.DefaultWeights, 2))
	go srv.Serve(lis)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cc, err := grpc.DialContext(ctx, lis.Addr().String(), grpc.WithInsecure(), grpc.WithBlock())
	require.NoError(t, err)
	return cc, func() {
		cc.Close()
		srv.Stop()
	}
}

func TestChooseMove(t *testing.T) {
	cc, stop := startServer(t)
	defer stop()
	client := NewEngineClient(cc)

	p := othello.New()
	resp, err := client.ChooseMove(context.Background(), &ChooseMoveRequest{
		Position: notation.FormatPosition(p),
		Depth:    3,
	})
	require.NoError(t, err)
	m, err := notation.ParseMove(resp.GetMove())
	require.NoError(t, err)

	local := ai.NewMinimax(ai.MinimaxConfig{Depth: 3})
	want, v, _ := local.Analyze(context.Background(), p)
	assert.Equal(t, want, m)
	assert.Equal(t, v, resp.GetValue())
	assert.Equal(t, int32(3), resp.GetDepth())
	assert.NotZero(t, resp.GetEvaluated())
}

func TestChooseMoveDefaultDepth(t *testing.T) {
	cc, stop := startServer(t)
	defer stop()
	resp, err := NewEngineClient(cc).ChooseMove(context.Background(), &ChooseMoveRequest{
		Position: notation.FormatPosition(othello.New()),
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), resp.GetDepth())
}

func TestChooseMoveBadPosition(t *testing.T) {
	cc, stop := startServer(t)
	defer stop()
	_, err := NewEngineClient(cc).ChooseMove(context.Background(), &ChooseMoveRequest{
		Position: "nonsense",
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRemotePlayer(t *testing.T) {
	cc, stop := startServer(t)
	defer stop()
	remote := NewRemotePlayer(cc, 1)

	res := match.Play(context.Background(), match.Config{
		Black: remote,
		White: ai.NewRandom(4),
		Limit: 5 * time.Second,
	})
	assert.False(t, res.Disqualified)
	assert.True(t, res.Final.IsTerminal())
}

func TestRemotePlayerUnavailable(t *testing.T) {
	cc, stop := startServer(t)
	stop()
	remote := NewRemotePlayer(cc, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m := remote.GetMove(ctx, othello.New())
	assert.Equal(t, Malformed, m)
	assert.ErrorIs(t, match.Validate(othello.New(), m, true), match.ErrMalformedMove)
}
