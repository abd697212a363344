package oei

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/othellobot/othello/cmd/internal/opt"
	"github.com/othellobot/othello/oei"
)

type Command struct {
	opt opt.Minimax
}

func (*Command) Name() string     { return "oei" }
func (*Command) Synopsis() string { return "Run the engine over the OEI line protocol" }
func (*Command) Usage() string {
	return `oei

Launch the engine in OEI mode, a UCI-like protocol on stdin/stdout
suitable for being driven by an external GUI or controller, or by
"othello match -p1 exec:othello oei".
`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	c.opt.AddFlags(fs)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := c.opt.BuildConfig(opt.File(args))
	if err != nil {
		log.Error().Err(err).Msg("engine config")
		return subcommands.ExitUsageError
	}
	engine := oei.NewEngine(os.Stdin, os.Stdout)
	engine.Config = cfg
	if err := engine.Run(ctx); err != nil {
		log.Error().Err(err).Msg("oei")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
