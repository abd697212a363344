package selfplay

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/othellobot/othello/logs"
	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/notation"
	"github.com/othellobot/othello/othello"
)

func (c *Command) names(r *match.Record) (black, white string) {
	if r.P1Color == othello.Black {
		return c.p1, c.p2
	}
	return c.p2, c.p1
}

func (c *Command) writeGame(d string, r *match.Record) error {
	if err := os.MkdirAll(d, 0755); err != nil {
		return err
	}
	black, white := c.names(r)
	res := r.Result
	rec := &notation.Record{
		Tags: []notation.Tag{
			{Name: "Game", Value: strconv.Itoa(r.Game)},
			{Name: "ID", Value: res.ID},
			{Name: "Date", Value: res.Started.Format("2006.01.02")},
			{Name: "Black", Value: black},
			{Name: "White", Value: white},
			{Name: "Result", Value: fmt.Sprintf("%d-%d", res.BlackScore, res.WhiteScore)},
			{Name: "Winner", Value: res.Outcome.String()},
		},
		Moves: res.Moves,
	}
	if res.Disqualified {
		rec.SetTag("Termination", "disqualified")
	}
	if res.Initial != nil && res.Initial.MoveNumber() != 0 {
		rec.SetTag("Position", notation.FormatPosition(res.Initial))
	}
	p := path.Join(d, fmt.Sprintf("%d.txt", r.Game))
	return os.WriteFile(p, []byte(rec.Render()), 0644)
}

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Seed    int64
	Limit   time.Duration
	Stats   *match.Stats
}

func (c *Command) writeSummary(path string, stats *match.Stats) error {
	summary := Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Seed:    c.seed,
		Limit:   c.limit,
		Stats:   stats,
	}
	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}

func (c *Command) logMatches(db string, st *match.Stats) error {
	repo, err := logs.Open(db)
	if err != nil {
		return err
	}
	defer repo.Close()
	rows := make([]*logs.Match, len(st.Games))
	for i := range st.Games {
		black, white := c.names(&st.Games[i])
		rows[i] = logs.FromResult(st.Games[i].Result, black, white)
	}
	return repo.InsertMatches(rows)
}
