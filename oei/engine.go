// Package oei speaks a small UCI-like line protocol for Othello
// engines, so an engine can run as a subprocess of the referee or be
// driven by an external controller.
//
//	> oei
//	< id name othello
//	< oeiok
//	> newgame
//	> position startpos moves d3 c3
//	> go movetime 500
//	< info depth 4 time 12 nodes 913 score 3.25
//	< bestmove c4
//	> quit
//
// "position board SQUARES b|w [moves ...]" sets up an arbitrary
// position, with SQUARES in notation.FormatPosition form.
package oei

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

type Engine struct {
	Config ai.MinimaxConfig

	in  *bufio.Reader
	out io.Writer

	mm  *ai.MinimaxAI
	pos *othello.Position
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.in.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		switch words[0] {
		case "oei":
			fmt.Fprintln(e.out, "id name othello")
			fmt.Fprintln(e.out, "oeiok")
		case "quit":
			return nil
		case "newgame":
			e.mm = nil
			e.pos = nil
		case "position":
			e.pos, err = parsePosition(words)
			if err != nil {
				return fmt.Errorf("error parsing position: %w", err)
			}
		case "go":
			if err := e.analyze(ctx, words); err != nil {
				log.Error().Err(err).Msg("oei go")
				fmt.Fprintln(e.out, "bestmove none")
			}
		case "stop":
		case "isready":
			fmt.Fprintln(e.out, "readyok")
		default:
			return fmt.Errorf("unknown command: %q", line)
		}
	}
}

func parsePosition(words []string) (*othello.Position, error) {
	var pos *othello.Position
	words = words[1:]
	if len(words) == 0 {
		return nil, errors.New("not enough arguments")
	}
	switch words[0] {
	case "startpos":
		words = words[1:]
		pos = othello.New()
	case "board":
		if len(words) < 3 {
			return nil, errors.New("position board: not enough arguments")
		}
		var err error
		pos, err = notation.ParsePosition(words[1] + " " + words[2])
		if err != nil {
			return nil, fmt.Errorf("parse board: %w", err)
		}
		words = words[3:]
	default:
		return nil, fmt.Errorf("unknown initial position: %q", words[0])
	}
	if len(words) == 0 {
		return pos, nil
	}
	if words[0] != "moves" {
		return nil, errors.New("position: expected `moves'")
	}
	for _, w := range words[1:] {
		move, err := notation.ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("parse move %q: %w", w, err)
		}
		pos, err = pos.Move(move)
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", w, err)
		}
	}
	return pos, nil
}

func (e *Engine) analyze(ctx context.Context, words []string) error {
	if e.pos == nil {
		return errors.New("no position provided")
	}
	if e.mm == nil {
		e.mm = ai.NewMinimax(e.Config)
	}
	words = words[1:]
	if len(words) > 0 {
		if len(words) != 2 || words[0] != "movetime" {
			return errors.New("expected movetime N")
		}
		ms, err := strconv.ParseUint(words[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad ms: %v", words[1])
		}

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
		defer cancel()
	}

	m, val, stats := e.mm.Analyze(ctx, e.pos)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("search incomplete after %d nodes: %w", stats.Visited+stats.Evaluated, err)
	}
	fmt.Fprintf(e.out, "info depth %d time %d nodes %d score %.2f\n",
		stats.Depth,
		stats.Elapsed/time.Millisecond,
		stats.Visited+stats.Evaluated,
		val,
	)
	fmt.Fprintf(e.out, "bestmove %s\n", notation.FormatMove(m))
	return nil
}
