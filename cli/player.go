package cli

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

// resign is what a human player answers once its input is gone; the
// referee treats it as malformed.
var resign = othello.Move{Row: -2, Col: -2}

func NewCLIPlayer(out io.Writer, in *bufio.Reader) ai.Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(ctx context.Context, p *othello.Position) othello.Move {
	if len(p.LegalMoves()) == 0 {
		fmt.Fprintf(c.out, "%s has no moves and passes\n", p.ToMove())
		return othello.Pass
	}
	for {
		fmt.Fprintf(c.out, "%s> ", p.ToMove())
		line, err := c.in.ReadString('\n')
		if err != nil {
			return resign
		}
		m, err := notation.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error: ", err)
			continue
		}
		return m
	}
}
