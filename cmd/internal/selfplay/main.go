package selfplay

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/othellobot/othello/cmd/internal/opt"
	"github.com/othellobot/othello/match"
)

type Command struct {
	p1   string
	p2   string
	seed int64

	games   int
	swap    bool
	threads int

	debug int
	limit time.Duration
	pace  time.Duration

	out     string
	summary string
	db      string
	verbose bool
}

func (*Command) Name() string     { return "match" }
func (*Command) Synopsis() string { return "Play two engines against each other and report results" }
func (*Command) Usage() string {
	return `match [flags]

Play a batch of refereed games between -p1 and -p2. Players are given
as specs: human, rand[:SEED], minimax[:DEPTH], mixed[:DEPTH],
weights=NAME[:DEPTH] or remote:HOST:PORT[:DEPTH].
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "minimax", "player 1")
	flags.StringVar(&c.p2, "p2", "rand", "player 2")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play per color")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel games")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.DurationVar(&c.limit, "limit", 0, "time limit per move (0 for the configured default)")
	flags.DurationVar(&c.pace, "pace", 0, "minimum time between moves")
	flags.StringVar(&c.out, "out", "", "directory to write game records to")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.StringVar(&c.db, "db", "", "sqlite database to log matches to")
	flags.BoolVar(&c.verbose, "v", false, "log every game")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	file := opt.File(args)
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}
	if c.limit == 0 {
		c.limit = time.Duration(file.Limit)
	}
	if c.pace == 0 {
		c.pace = time.Duration(file.Pace)
	}
	if c.db == "" {
		c.db = file.Matches
	}

	players := &opt.Players{
		File:  file,
		Debug: c.debug,
		In:    bufio.NewReader(os.Stdin),
		Out:   os.Stdout,
	}
	defer players.Close()
	p1, err := players.Parse(c.p1)
	if err != nil {
		log.Error().Err(err).Msg("-p1")
		return subcommands.ExitUsageError
	}
	p2, err := players.Parse(c.p2)
	if err != nil {
		log.Error().Err(err).Msg("-p2")
		return subcommands.ExitUsageError
	}

	cfg := &match.SimConfig{
		Games:   c.games,
		Threads: c.threads,
		Swap:    c.swap,
		P1:      p1,
		P2:      p2,
		Limit:   c.limit,
		Pace:    c.pace,
		Seed:    c.seed,
		Verbose: c.verbose,
	}
	st := match.Simulate(ctx, cfg)

	if c.out != "" {
		if c.summary == "" {
			c.summary = path.Join(c.out, "summary.json")
		}
		for i := range st.Games {
			if err := c.writeGame(c.out, &st.Games[i]); err != nil {
				log.Error().Err(err).Msg("writing game")
			}
		}
	}
	if c.summary != "" {
		if err := c.writeSummary(c.summary, &st); err != nil {
			log.Error().Err(err).Msg("writing summary")
		}
	}
	if c.db != "" {
		if err := c.logMatches(c.db, &st); err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("logging matches")
		}
	}

	log.Info().
		Int("games", len(st.Games)).
		Int64("seed", c.seed).
		Int("draws", st.Draws).
		Int("black", st.Black).
		Int("white", st.White).
		Int("disqualified", st.Disqualifications).
		Dur("limit", c.limit).
		Msg("done")
	c.writeTally(os.Stderr, &st)
	return subcommands.ExitSuccess
}

func (c *Command) writeTally(out *os.File, st *match.Stats) {
	pr := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	pr.Fprintf(tw, "\tblack\twhite\tdq\tsum\n")
	pr.Fprintf(tw, "p1 %s\t%d\t%d\t%d\t%d\n", c.p1,
		st.Players[0].BlackWins, st.Players[0].WhiteWins, st.Players[0].DQWins, st.Players[0].Wins)
	pr.Fprintf(tw, "p2 %s\t%d\t%d\t%d\t%d\n", c.p2,
		st.Players[1].BlackWins, st.Players[1].WhiteWins, st.Players[1].DQWins, st.Players[1].Wins)
	pr.Fprintf(tw, "sum\t%d\t%d\t%d\t%d\n",
		st.Players[0].BlackWins+st.Players[1].BlackWins,
		st.Players[0].WhiteWins+st.Players[1].WhiteWins,
		st.Disqualifications,
		st.Players[0].Wins+st.Players[1].Wins,
	)
	tw.Flush()
	if n := st.Count(); n > 0 {
		pr.Fprintf(out, "p1 win rate %.1f%% over %d games (%d draws), avg move latency %s\n",
			100*float64(st.Players[0].Wins)/float64(n), n, st.Draws, st.AvgLatency.Round(time.Microsecond))
	} else {
		fmt.Fprintln(out, "no games played")
	}
}
