// Package logs stores finished matches in a sqlite database.
package logs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/othellobot/othello/match"
	"github.com/othellobot/othello/notation"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

type Match struct {
	ID           string    `db:"id"`
	Day          string    `db:"day"`
	Timestamp    time.Time `db:"time"`
	Black        string    `db:"black"`
	White        string    `db:"white"`
	Winner       string    `db:"winner"`
	BlackScore   int       `db:"black_score"`
	WhiteScore   int       `db:"white_score"`
	Disqualified bool      `db:"disqualified"`
	ElapsedMS    int64     `db:"elapsed_ms"`
	LatencyMS    int64     `db:"latency_ms"`
	Plies        int       `db:"plies"`
	Moves        string    `db:"moves"`
}

// PlayerMatch is one match seen from one player's side.
type PlayerMatch struct {
	ID            string `db:"id"`
	Day           string `db:"day"`
	Player        string `db:"player"`
	Opponent      string `db:"opponent"`
	Color         string `db:"color"`
	Result        string `db:"result"`
	Score         int    `db:"score"`
	OpponentScore int    `db:"opponent_score"`
	Disqualified  bool   `db:"disqualified"`
	Plies         int    `db:"plies"`
}

// FromResult converts a referee result into a row.
func FromResult(r *match.Result, black, white string) *Match {
	m := &Match{
		ID:           r.ID,
		Day:          r.Started.Format("2006-01-02"),
		Timestamp:    r.Started,
		Black:        black,
		White:        white,
		Winner:       r.Outcome.String(),
		BlackScore:   r.BlackScore,
		WhiteScore:   r.WhiteScore,
		Disqualified: r.Disqualified,
		ElapsedMS:    r.Elapsed.Milliseconds(),
		LatencyMS:    r.AvgLatency.Milliseconds(),
		Plies:        len(r.Moves),
		Moves:        notation.FormatMoves(r.Moves),
	}
	return m
}

func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(createMatchTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create match table: %w", err)
	}
	if _, err = db.Exec(createPlayerView); err != nil {
		db.Close()
		return nil, fmt.Errorf("create player_matches view: %w", err)
	}

	repo := &Repository{db: db}
	repo.insert, err = db.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertMatch(m *Match) error {
	return r.insertMatch(r.insert, m)
}

func (r *Repository) insertMatch(stmt *sqlx.NamedStmt, m *Match) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Day == "" {
		m.Day = m.Timestamp.Format("2006-01-02")
	}
	_, err := stmt.Exec(m)
	return err
}

func (r *Repository) InsertMatches(ms []*Match) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, m := range ms {
		if e := r.insertMatch(stmt, m); e != nil {
			return e
		}
	}
	return txn.Commit()
}

func (r *Repository) Match(id string) (*Match, error) {
	var m Match
	if err := r.db.Get(&m, selectMatchStmt, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Matches(player string) ([]PlayerMatch, error) {
	var out []PlayerMatch
	if err := r.db.Select(&out, selectPlayerStmt, player); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
