package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	defaultRecentLimit = 20
	// timeLayout is fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages run persistence backed by SQLite.
type Store struct {
	db          *sql.DB
	path        string
	lockTimeout time.Duration
}

// Open initializes or connects to the journal database at path and verifies
// its schema. lockTimeout bounds how long Record waits for the writer lock;
// zero waits until ctx is done.
func Open(ctx context.Context, path string, lockTimeout time.Duration) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lockTimeout: lockTimeout}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a run and its entries in one transaction and returns the run
// id. A random UUID is assigned when run.ID is empty; Total and Failed are
// derived from entries when left at zero.
func (s *Store) Record(ctx context.Context, run Run, entries []Entry) (string, error) {
	if strings.TrimSpace(run.Tool) == "" {
		return "", errors.New("record run: tool is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Total == 0 && run.Failed == 0 {
		run.Total = len(entries)
		for _, e := range entries {
			if e.Failed() {
				run.Failed++
			}
		}
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}

	err := s.withWriteLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, tool, started_at, finished_at, workers, total, failed)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Tool, formatTime(run.StartedAt), formatTime(run.FinishedAt),
			run.Workers, run.Total, run.Failed,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO results (run_id, item, output, status, error, elapsed_ms)
             VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare result insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx,
				run.ID, e.Item, nullableString(e.Output), e.Status,
				nullableString(e.Error), e.Elapsed.Milliseconds(),
			); err != nil {
				return fmt.Errorf("insert result %q: %w", e.Item, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// Recent returns the newest runs first. An empty tool matches every tool;
// limit <= 0 uses a default of 20.
func (s *Store) Recent(ctx context.Context, tool string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	query := `SELECT id, tool, started_at, finished_at, workers, total, failed FROM runs`
	args := []any{}
	if tool = strings.TrimSpace(tool); tool != "" {
		query += ` WHERE tool = ?`
		args = append(args, tool)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
		)
		if err := rows.Scan(&run.ID, &run.Tool, &started, &finished, &run.Workers, &run.Total, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Entries returns the recorded items of one run in insertion order.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, item, output, status, error, elapsed_ms
         FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			output    sql.NullString
			errText   sql.NullString
			elapsedMS int64
		)
		if err := rows.Scan(&e.RunID, &e.Item, &output, &e.Status, &errText, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		e.Output = output.String
		e.Error = errText.String
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return entries, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
