package opt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/cli"
	"github.com/othellobot/othello/config"
	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/oei"
	"github.com/othellobot/othello/rpc"
)

// Players turns player specs from the command line into factories:
//
//	human
//	rand[:SEED]
//	minimax[:DEPTH]
//	mixed[:DEPTH]
//	weights=NAME[:DEPTH]
//	remote:HOST:PORT[:DEPTH]
//	exec:COMMAND [ARGS...]
type Players struct {
	File  *config.File
	Debug int
	In    *bufio.Reader
	Out   io.Writer

	mu      sync.Mutex
	remotes []io.Closer
}

func (ps *Players) depth(spec, rest string) (int, error) {
	if rest == "" {
		return ps.File.Depth, nil
	}
	d, err := strconv.Atoi(rest)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%q: bad depth %q", spec, rest)
	}
	return d, nil
}

func (ps *Players) minimax(spec, weights, rest string) (match.Factory, error) {
	w, err := ps.File.LookupWeights(weights)
	if err != nil {
		return nil, err
	}
	depth, err := ps.depth(spec, rest)
	if err != nil {
		return nil, err
	}
	engine := ai.NewMinimax(ai.MinimaxConfig{Depth: depth, Weights: w, Debug: ps.Debug})
	return match.NewFactory(spec, func(int64) ai.Player { return engine }), nil
}

func splitSpec(s string) (head, rest string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func (ps *Players) Parse(spec string) (match.Factory, error) {
	head, rest := splitSpec(spec)
	switch {
	case head == "human":
		pl := cli.NewCLIPlayer(ps.Out, ps.In)
		return match.NewFactory(spec, func(int64) ai.Player { return pl }), nil
	case head == "rand":
		if rest == "" {
			return match.NewFactory(spec, func(seed int64) ai.Player { return ai.NewRandom(seed) }), nil
		}
		seed, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad seed: %w", spec, err)
		}
		return match.NewFactory(spec, func(int64) ai.Player { return ai.NewRandom(seed) }), nil
	case head == "minimax":
		return ps.minimax(spec, "default", rest)
	case head == "mixed":
		return ps.minimax(spec, "mixed", rest)
	case strings.HasPrefix(head, "weights="):
		return ps.minimax(spec, strings.TrimPrefix(head, "weights="), rest)
	case head == "remote":
		return ps.remote(spec, rest)
	case head == "exec":
		return ps.exec(spec, rest)
	}
	return nil, fmt.Errorf("unknown player: %q", spec)
}

func (ps *Players) remote(spec, rest string) (match.Factory, error) {
	parts := strings.Split(rest, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("%q: want remote:HOST:PORT[:DEPTH]", spec)
	}
	addr := parts[0] + ":" + parts[1]
	var depth int
	if len(parts) == 3 {
		var err error
		if depth, err = ps.depth(spec, parts[2]); err != nil {
			return nil, err
		}
	}
	cc, err := rpc.Dial(context.Background(), addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	ps.mu.Lock()
	ps.remotes = append(ps.remotes, cc)
	ps.mu.Unlock()
	pl := rpc.NewRemotePlayer(cc, depth)
	return match.NewFactory(spec, func(int64) ai.Player { return pl }), nil
}

// exec launches an engine speaking OEI on its stdin and stdout. All
// games share the one process.
func (ps *Players) exec(spec, rest string) (match.Factory, error) {
	cmdline := strings.Fields(rest)
	if len(cmdline) == 0 {
		return nil, fmt.Errorf("%q: want exec:COMMAND [ARGS...]", spec)
	}
	cl, err := oei.NewClient(cmdline)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", cmdline[0], err)
	}
	ps.mu.Lock()
	ps.remotes = append(ps.remotes, cl)
	ps.mu.Unlock()
	pl := cl.Player()
	return match.NewFactory(spec, func(int64) ai.Player { return pl }), nil
}

// Close drops any connections to remote engines.
func (ps *Players) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, c := range ps.remotes {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("closing remote engine")
		}
	}
	ps.remotes = nil
}
