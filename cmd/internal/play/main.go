package play

import (
	"bufio"
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/othellobot/othello/cli"
	"github.com/othellobot/othello/cmd/internal/opt"
	"github.com/othellobot/othello/logs"
	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/notation"
)

type Command struct {
	white string
	black string
	debug int
	limit time.Duration
	pace  time.Duration
	out   string
	db    string

	unicode bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Othello from the command line" }
func (*Command) Usage() string {
	return `play

Play Othello on the command-line, against a human or AI. Moves are
entered as a column letter and row digit, e.g. d3.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.white, "white", "minimax", "white player")
	flags.StringVar(&c.black, "black", "human", "black player")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.DurationVar(&c.limit, "limit", 0, "time limit per move for every player")
	flags.DurationVar(&c.pace, "pace", 0, "minimum time between moves")
	flags.StringVar(&c.out, "out", "", "write game record to file")
	flags.StringVar(&c.db, "db", "", "sqlite database to log the game to")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	file := opt.File(args)
	in := bufio.NewReader(os.Stdin)
	players := &opt.Players{File: file, Debug: c.debug, In: in, Out: os.Stdout}
	defer players.Close()

	black, err := players.Parse(c.black)
	if err != nil {
		log.Error().Err(err).Msg("-black")
		return subcommands.ExitUsageError
	}
	white, err := players.Parse(c.white)
	if err != nil {
		log.Error().Err(err).Msg("-white")
		return subcommands.ExitUsageError
	}

	g := glyphs(c.unicode)
	ref := match.New(match.Config{
		Black:    black.NewPlayer(0),
		White:    white.NewPlayer(0),
		Limit:    c.limit,
		Pace:     c.pace,
		Observer: cli.Observer(g, os.Stdout),
	})
	cli.RenderBoard(g, os.Stdout, ref.Initial())
	res := ref.Play(ctx)
	cli.PrintResult(os.Stdout, res)

	if c.out != "" {
		rec := &notation.Record{
			Tags: []notation.Tag{
				{Name: "Black", Value: c.black},
				{Name: "White", Value: c.white},
				{Name: "Winner", Value: res.Outcome.String()},
			},
			Moves: res.Moves,
		}
		if err := os.WriteFile(c.out, []byte(rec.Render()), 0644); err != nil {
			log.Error().Err(err).Msg("-out")
		}
	}
	if db := c.dbPath(file.Matches); db != "" {
		repo, err := logs.Open(db)
		if err != nil {
			log.Error().Err(err).Msg("open match log")
			return subcommands.ExitFailure
		}
		defer repo.Close()
		if err := repo.InsertMatch(logs.FromResult(res, c.black, c.white)); err != nil {
			log.Error().Err(err).Msg("log match")
		}
	}
	return subcommands.ExitSuccess
}

func (c *Command) dbPath(configured string) string {
	if c.db != "" {
		return c.db
	}
	return configured
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}
