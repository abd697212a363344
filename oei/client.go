package oei

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

// Malformed is what a client player answers when the engine fails to
// produce a move; the referee counts it as a strike.
var Malformed = othello.Move{Row: -2, Col: -2}

// Client drives one engine process. Requests are serialized, so one
// client may back players in several concurrent games.
type Client struct {
	cmd *exec.Cmd

	closers []io.Closer

	mu    sync.Mutex
	read  *bufio.Reader
	write io.Writer
}

func NewClient(cmdline []string) (*Client, error) {
	if len(cmdline) == 0 {
		return nil, fmt.Errorf("empty engine command")
	}
	path, err := exec.LookPath(cmdline[0])
	if err != nil {
		return nil, err
	}
	cmd := &exec.Cmd{
		Path: path,
		Args: cmdline,
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	cl := &Client{cmd: cmd}
	if err := cl.attach(stdout, stdin, stdin, stdout); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

func (c *Client) attach(r io.Reader, w io.Writer, closers ...io.Closer) error {
	c.read = bufio.NewReader(r)
	c.write = w
	c.closers = closers
	_, err := c.sendCommand("oei", "oeiok")
	return err
}

func (c *Client) Close() error {
	c.mu.Lock()
	if c.write != nil {
		c.sendCommand("quit", "")
	}
	c.mu.Unlock()
	for _, cl := range c.closers {
		cl.Close()
	}
	if c.cmd != nil {
		return c.cmd.Wait()
	}
	return nil
}

func (c *Client) sendCommand(cmd string, expect string) ([]string, error) {
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	if expect == "" {
		return nil, nil
	}

	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		words := strings.Fields(line)
		if len(words) > 0 && words[0] == expect {
			return words, nil
		}
	}
}

// Player returns an ai.Player backed by this engine.
func (c *Client) Player() ai.Player {
	return &player{client: c}
}

type player struct {
	client *Client
}

func (p *player) GetMove(ctx context.Context, pos *othello.Position) othello.Move {
	m, err := p.client.bestMove(ctx, pos)
	if err != nil {
		log.Warn().Err(err).Msg("oei engine")
		return Malformed
	}
	return m
}

func (c *Client) bestMove(ctx context.Context, pos *othello.Position) (othello.Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.sendCommand("newgame", ""); err != nil {
		return othello.Move{}, err
	}
	if _, err := c.sendCommand("position board "+notation.FormatPosition(pos), ""); err != nil {
		return othello.Move{}, fmt.Errorf("send position: %w", err)
	}
	goCmd := "go"
	if deadline, ok := ctx.Deadline(); ok {
		timeoutMS := time.Until(deadline) / time.Millisecond
		if timeoutMS < 1 {
			timeoutMS = 1
		}
		goCmd = fmt.Sprintf("%s movetime %d", goCmd, timeoutMS)
	}
	bestmove, err := c.sendCommand(goCmd, "bestmove")
	if err != nil {
		return othello.Move{}, err
	}
	if len(bestmove) != 2 {
		return othello.Move{}, fmt.Errorf("bad bestmove: %q", strings.Join(bestmove, " "))
	}
	return notation.ParseMove(bestmove[1])
}
