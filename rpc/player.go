package rpc

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"google.golang.org/grpc"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

// Malformed is returned by RemotePlayer when the remote engine cannot
// produce a usable move. The referee charges it as a strike.
var Malformed = othello.Move{Row: -2, Col: -2}

type RemotePlayer struct {
	client EngineClient
	depth  int32
}

var _ ai.Player = &RemotePlayer{}

func NewRemotePlayer(cc *grpc.ClientConn, depth int) *RemotePlayer {
	return &RemotePlayer{client: NewEngineClient(cc), depth: int32(depth)}
}

// Dial connects to an engine server without transport security.
func Dial(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	return grpc.DialContext(ctx, addr, grpc.WithInsecure())
}

func (r *RemotePlayer) GetMove(ctx context.Context, p *othello.Position) othello.Move {
	resp, err := r.client.ChooseMove(ctx, &ChooseMoveRequest{
		Position: notation.FormatPosition(p),
		Depth:    r.depth,
	})
	if err != nil {
		log.Warn().Err(err).Msg("remote engine")
		return Malformed
	}
	m, err := notation.ParseMove(resp.GetMove())
	if err != nil {
		log.Warn().Err(err).Str("move", resp.GetMove()).Msg("remote engine sent bad move")
		return Malformed
	}
	return m
}
