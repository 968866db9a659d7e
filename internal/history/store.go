// Package history records completed calculations in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one evaluated expression.
type Entry struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"session_id"`
	Expression    string    `json:"expression"`
	Result        string    `json:"result"`
	Indeterminate bool      `json:"indeterminate"`
	CreatedAt     time.Time `json:"created_at"`
}

// Recorder stores and lists calculation history.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context, sessionID string, limit int) ([]Entry, error)
}

// Nop discards everything. It is used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

func (Nop) List(context.Context, string, int) ([]Entry, error) { return nil, nil }

// Store is a SQLite-backed Recorder.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// One connection: SQLite serializes writers anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		expression TEXT NOT NULL,
		result TEXT NOT NULL,
		indeterminate BOOLEAN NOT NULL DEFAULT FALSE,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_session ON calculations(session_id, id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts e. CreatedAt defaults to now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calculations (session_id, expression, result, indeterminate, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Expression, e.Result, e.Indeterminate, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record calculation: %w", err)
	}
	return nil
}

// List returns the newest entries of a session first, at most limit of them.
func (s *Store) List(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, expression, result, indeterminate, created_at
		 FROM calculations
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Expression, &e.Result, &e.Indeterminate, &created); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}
	return entries, nil
}
