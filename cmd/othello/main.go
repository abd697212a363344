package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/othellobot/othello/cmd/internal/analyze"
	"github.com/othellobot/othello/cmd/internal/history"
	"github.com/othellobot/othello/cmd/internal/oei"
	"github.com/othellobot/othello/cmd/internal/play"
	"github.com/othellobot/othello/cmd/internal/selfplay"
	"github.com/othellobot/othello/cmd/internal/serve"
	"github.com/othellobot/othello/config"
)

var (
	configPath = flag.String("config", "", "config file (default: othello/config.json in the XDG config dirs)")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&history.Command{}, "")
	subcommands.Register(&oei.Command{}, "")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if cfg.Path() != "" {
		log.Debug().Str("path", cfg.Path()).Msg("loaded config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	status := subcommands.Execute(ctx, cfg)
	stop()
	os.Exit(int(status))
}
