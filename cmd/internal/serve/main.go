package serve

import (
	"context"
	"flag"
	"fmt"
	"net"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	"github.com/othellobot/othello/cmd/internal/opt"
	"github.com/othellobot/othello/rpc"
)

type Command struct {
	port    int
	depth   int
	weights string
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve engine RPCs via GRPC" }
func (*Command) Usage() string {
	return `serve [-port N]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55430, "bind port")
	flags.IntVar(&c.depth, "depth", 0, "default search depth")
	flags.StringVar(&c.weights, "weights", "", "evaluation weights: a name, inline JSON, or @FILE")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	file := opt.File(args)
	w, err := opt.Weights(file, c.weights)
	if err != nil {
		log.Error().Err(err).Msg("-weights")
		return subcommands.ExitUsageError
	}
	depth := c.depth
	if depth == 0 {
		depth = file.Depth
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}
	log.Info().Int("port", c.port).Msg("listening")
	grpcServer := grpc.NewServer()
	rpc.RegisterEngineServer(grpcServer, rpc.NewServer(w, depth))

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	if err := grpcServer.Serve(lis); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
