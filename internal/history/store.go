package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded atomization or rewrite operation.
type Run struct {
	ID          string
	Operation   string // "atomize", "extract", or "fix-imports"
	Source      string
	Definitions int
	FilesOut    int
	DryRun      bool
	CreatedAt   time.Time
}

// Store persists run history in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    operation    TEXT NOT NULL,
    source       TEXT NOT NULL,
    definitions  INTEGER NOT NULL,
    files_out    INTEGER NOT NULL,
    dry_run      INTEGER NOT NULL,
    created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run.
func (s *Store) Record(run Run) error {
	dryRun := 0
	if run.DryRun {
		dryRun = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, operation, source, definitions, files_out, dry_run, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Operation, run.Source, run.Definitions, run.FilesOut, dryRun,
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, source, definitions, files_out, dry_run, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var dryRun int
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Operation, &run.Source, &run.Definitions, &run.FilesOut, &dryRun, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
