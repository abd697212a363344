package analyze

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/cli"
	"github.com/othellobot/othello/cmd/internal/opt"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

type Command struct {
	position  string
	move      int
	variation string
	quiet     bool
	all       bool

	timeLimit time.Duration

	eval    bool
	explain bool
	mmopt   opt.Minimax
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Choose a move for a position" }
func (*Command) Usage() string {
	return `analyze [options] [FILE]

Search a position from a game record, or from -position, and print the
chosen move. By default the final position in the record is analyzed;
use -move to pick an earlier one and -variation to play extra moves
first.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.position, "position", "", "position to analyze, as 64 squares and b|w")
	flags.IntVar(&c.move, "move", -1, "analyze the position after this many moves of the record")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves after the given position")
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.BoolVar(&c.all, "all", false, "analyze every position in the record")

	flags.DurationVar(&c.timeLimit, "limit", time.Minute, "limit of how much time to use")
	flags.BoolVar(&c.eval, "evaluate", false, "only show static evaluation")
	flags.BoolVar(&c.explain, "explain", false, "explain scoring")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := c.mmopt.BuildConfig(opt.File(args))
	if err != nil {
		log.Error().Err(err).Msg("engine config")
		return subcommands.ExitUsageError
	}
	a := &analysis{
		cmd:  c,
		ai:   ai.NewMinimax(cfg),
		eval: ai.NewEvaluator(cfg.Weights),
	}

	if c.position != "" {
		p, err := notation.ParsePosition(c.position)
		if err != nil {
			log.Error().Err(err).Msg("-position")
			return subcommands.ExitUsageError
		}
		if p, err = applyVariation(p, c.variation); err != nil {
			log.Error().Err(err).Msg("-variation")
			return subcommands.ExitFailure
		}
		a.run(ctx, p)
		return subcommands.ExitSuccess
	}

	if flag.NArg() != 1 {
		log.Error().Msg("need a record FILE or -position")
		return subcommands.ExitUsageError
	}
	rec, err := notation.ParseFile(flag.Arg(0))
	if err != nil {
		log.Error().Err(err).Msg("parse")
		return subcommands.ExitFailure
	}

	if !c.all {
		p, err := rec.PositionAfter(c.move)
		if err != nil {
			log.Error().Err(err).Msg("find move")
			return subcommands.ExitFailure
		}
		if p, err = applyVariation(p, c.variation); err != nil {
			log.Error().Err(err).Msg("-variation")
			return subcommands.ExitFailure
		}
		a.run(ctx, p)
		return subcommands.ExitSuccess
	}

	p, err := rec.InitialPosition()
	if err != nil {
		log.Error().Err(err).Msg("initial")
		return subcommands.ExitFailure
	}
	for i, m := range rec.Moves {
		fmt.Printf("%d. %s %s\n", i+1, p.ToMove(), notation.FormatMove(m))
		a.run(ctx, p)
		if p, err = p.Move(m); err != nil {
			log.Error().Err(err).Int("ply", i+1).Msg("replay")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func applyVariation(p *othello.Position, variant string) (*othello.Position, error) {
	ms, err := notation.ParseMoves(variant)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		p, err = p.Move(m)
		if err != nil {
			return nil, fmt.Errorf("bad move `%s': %w", notation.FormatMove(m), err)
		}
	}
	return p, nil
}

type analysis struct {
	cmd  *Command
	ai   *ai.MinimaxAI
	eval *ai.Evaluator
}

func (a *analysis) run(ctx context.Context, p *othello.Position) {
	if !a.cmd.quiet {
		cli.RenderBoard(nil, os.Stdout, p)
	}
	if a.cmd.explain {
		ai.ExplainScore(a.eval, os.Stdout, p, p.ToMove())
	}
	if a.cmd.eval {
		fmt.Printf(" static eval: %+.2f\n", a.eval.Evaluate(p, p.ToMove()))
		return
	}
	if p.IsTerminal() {
		fmt.Println(" game over")
		return
	}
	if a.cmd.timeLimit != 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, a.cmd.timeLimit)
		defer cancel()
	}
	m, v, st := a.ai.Analyze(ctx, p)
	fmt.Printf(" move: %s value=%+.2f depth=%d evaluated=%d visited=%d cutoffs=%d time=%s\n",
		notation.FormatMove(m), v, st.Depth, st.Evaluated, st.Visited, st.Cutoffs,
		st.Elapsed.Round(time.Millisecond))
	if ctx.Err() != nil {
		fmt.Println(" (search cut short by -limit)")
	}
}
