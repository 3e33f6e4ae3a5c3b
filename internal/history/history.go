// Package history persists completed search runs to a local SQLite database
// so the UI can show what was searched before.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/primewatch/primewatch/pkg/metrics"
)

// Run is one completed search.
type Run struct {
	ID        int64
	Limit     int
	Found     int
	Elapsed   time.Duration
	StartedAt time.Time
}

// Store wraps the SQLite database holding run history.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			search_limit INTEGER NOT NULL,
			found       INTEGER NOT NULL,
			elapsed_ns  INTEGER NOT NULL,
			started_at  TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record inserts a completed run and returns its row ID.
func (s *Store) Record(ctx context.Context, r Run) (int64, error) {
	defer metrics.Timer(metrics.HistoryWrite)()

	startedAt := r.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (search_limit, found, elapsed_ns, started_at) VALUES (?, ?, ?, ?)`,
		r.Limit, r.Found, r.Elapsed.Nanoseconds(), startedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	defer metrics.Timer(metrics.HistoryRead)()

	if n <= 0 {
		n = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, search_limit, found, elapsed_ns, started_at
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedNs int64
		if err := rows.Scan(&r.ID, &r.Limit, &r.Found, &elapsedNs, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Elapsed = time.Duration(elapsedNs)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Prune deletes the oldest runs beyond keep and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
		)`, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return res.RowsAffected()
}
