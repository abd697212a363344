package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

type Glyphs struct {
	White, Black, Empty string
}

var DefaultGlyphs = Glyphs{
	White: "W",
	Black: "B",
	Empty: ".",
}

var UnicodeGlyphs = Glyphs{
	White: "○",
	Black: "●",
	Empty: "·",
}

func (g *Glyphs) glyph(c othello.Color) string {
	switch c {
	case othello.White:
		return g.White
	case othello.Black:
		return g.Black
	}
	return g.Empty
}

func RenderBoard(g *Glyphs, out io.Writer, p *othello.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	if p.IsTerminal() {
		fmt.Fprintf(out, "[game over]\n")
	} else {
		fmt.Fprintf(out, "[%s to play]\n", p.ToMove())
	}
	w := tabwriter.NewWriter(out, 2, 8, 1, ' ', 0)
	fmt.Fprintf(w, "\t")
	for col := 0; col < othello.Size; col++ {
		fmt.Fprintf(w, "%c\t", 'a'+col)
	}
	fmt.Fprintf(w, "\n")
	for row := 0; row < othello.Size; row++ {
		fmt.Fprintf(w, "%c\t", '1'+row)
		for col := 0; col < othello.Size; col++ {
			fmt.Fprintf(w, "%s\t", g.glyph(p.At(row, col)))
		}
		fmt.Fprintf(w, "\n")
	}
	w.Flush()
	fmt.Fprintf(out, "stones: B:%d W:%d\n",
		p.PieceCount(othello.Black), p.PieceCount(othello.White))
}

// Observer returns a match observer that narrates a game on out.
func Observer(g *Glyphs, out io.Writer) func(match.Event) {
	return func(ev match.Event) {
		switch ev.Kind {
		case match.EventMove:
			fmt.Fprintf(out, "%s plays %s (%s)\n",
				ev.Side, notation.FormatMove(ev.Move), ev.Latency.Round(time.Millisecond))
			RenderBoard(g, out, ev.Position)
		case match.EventStrike:
			fmt.Fprintf(out, "%s: %v [strike %d]\n", ev.Side, ev.Err, ev.Strikes)
		case match.EventEnd:
			fmt.Fprintln(out, "Game over!")
		}
	}
}

func PrintResult(out io.Writer, r *match.Result) {
	switch {
	case r.Disqualified:
		fmt.Fprintf(out, "%s wins: %s disqualified\n", r.Outcome, r.Loser())
	case r.Aborted:
		fmt.Fprintf(out, "aborted\n")
	case r.Outcome == match.Draw:
		fmt.Fprintf(out, "draw\n")
	default:
		fmt.Fprintf(out, "%s wins\n", r.Outcome)
	}
	fmt.Fprintf(out, "stones: B:%d W:%d  moves: %d  elapsed: %s\n",
		r.BlackScore, r.WhiteScore, len(r.Moves), r.Elapsed.Round(time.Millisecond))
}
