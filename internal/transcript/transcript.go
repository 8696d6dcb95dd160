// Package transcript records interactive sessions in SQLite: one row per
// input line with its outcome and the stack it left behind.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome classifies how an input line ended.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeParseError Outcome = "error"
	OutcomeRunError   Outcome = "warn"
)

type Entry struct {
	Session   string
	Seq       int
	Input     string
	Outcome   Outcome
	Stack     string
	CreatedAt time.Time
}

const schema = `CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT    NOT NULL,
	seq        INTEGER NOT NULL,
	input      TEXT    NOT NULL,
	outcome    TEXT    NOT NULL,
	stack      TEXT    NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_session ON entries(session, seq);`

type Store struct {
	db  *sql.DB
	dsn string
}

// Open opens (creating if needed) the transcript database at dsn. ":memory:"
// keeps the transcript for the life of the process.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("transcript %s: %w", dsn, err)
	}
	// Every pooled connection to ":memory:" would be a separate database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript %s: %w", dsn, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript %s: create schema: %w", dsn, err)
	}
	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Append(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (session, seq, input, outcome, stack, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Session, e.Seq, e.Input, string(e.Outcome), e.Stack, e.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("transcript append: %w", err)
	}
	return nil
}

// Session returns the last limit entries of a session in input order. A
// non-positive limit returns all of them.
func (s *Store) Session(ctx context.Context, session string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session, seq, input, outcome, stack, created_at FROM (
			SELECT * FROM entries WHERE session = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`,
		session, limit)
	if err != nil {
		return nil, fmt.Errorf("transcript query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			outcome string
			created int64
		)
		if err := rows.Scan(&e.Session, &e.Seq, &e.Input, &outcome, &e.Stack, &created); err != nil {
			return nil, fmt.Errorf("transcript scan: %w", err)
		}
		e.Outcome = Outcome(outcome)
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
