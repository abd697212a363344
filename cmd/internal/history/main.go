package history

import (
	"context"
	"flag"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/othellobot/othello/cmd/internal/opt"
	"github.com/othellobot/othello/logs"
)

type Command struct {
	db     string
	player string
}

func (*Command) Name() string     { return "history" }
func (*Command) Synopsis() string { return "List logged matches for a player" }
func (*Command) Usage() string {
	return `history -player NAME [-db FILE]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", "", "sqlite match log (default from config)")
	flags.StringVar(&c.player, "player", "minimax", "player spec to list")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		c.db = opt.File(args).Matches
	}
	if c.db == "" {
		log.Error().Msg("no match log: pass -db or set \"matches\" in the config file")
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Error().Err(err).Msg("open")
		return subcommands.ExitFailure
	}
	defer repo.Close()

	rows, err := repo.Matches(c.player)
	if err != nil {
		log.Error().Err(err).Msg("query")
		return subcommands.ExitFailure
	}

	pr := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	pr.Fprintf(tw, "day\tid\tcolor\topponent\tresult\tscore\tplies\n")
	var wins, losses, draws int
	for _, r := range rows {
		result := r.Result
		if r.Disqualified {
			result += " (dq)"
		}
		pr.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d-%d\t%d\n",
			r.Day, r.ID, r.Color, r.Opponent, result, r.Score, r.OpponentScore, r.Plies)
		switch r.Result {
		case "win":
			wins++
		case "lose":
			losses++
		default:
			draws++
		}
	}
	tw.Flush()
	pr.Printf("%s: %d matches, %d won, %d lost, %d drawn\n", c.player, len(rows), wins, losses, draws)
	return subcommands.ExitSuccess
}
