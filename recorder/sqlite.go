package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode lets a dashboard read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("open-recorder path=%q", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			started      INTEGER NOT NULL,
			finished     INTEGER,
			origin       TEXT,
			state        TEXT,
			observations INTEGER,
			warnings     INTEGER,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started)`,

		`CREATE TABLE IF NOT EXISTS run_days (
			run_id TEXT NOT NULL REFERENCES runs(id),
			grade  TEXT NOT NULL,
			days   INTEGER,
			PRIMARY KEY (run_id, grade)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts a run and its per grade day counts.
func (r *SQLiteRecorder) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, started, finished, origin, state, observations, warnings, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Started.UnixMilli(), run.Finished.UnixMilli(), run.Trigger,
		run.State, run.Observations, run.Warnings, run.Err)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for grade, days := range run.Days {
		if _, err := tx.Exec(`INSERT INTO run_days (run_id, grade, days) VALUES (?, ?, ?)`,
			run.ID.String(), grade, days); err != nil {
			return fmt.Errorf("insert run days: %w", err)
		}
	}
	return tx.Commit()
}

// Runs returns the latest runs, most recent first.
func (r *SQLiteRecorder) Runs(limit int) ([]*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, started, finished, origin, state, observations, warnings, error
		FROM runs ORDER BY started DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	byID := make(map[string]*Run)
	for rows.Next() {
		var (
			id                string
			started, finished int64
			run               = &Run{Days: make(map[string]int)}
		)
		if err := rows.Scan(&id, &started, &finished, &run.Trigger, &run.State, &run.Observations, &run.Warnings, &run.Err); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started, run.Finished = time.UnixMilli(started), time.UnixMilli(finished)
		runs = append(runs, run)
		byID[id] = run
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for id, run := range byID {
		drows, err := r.db.Query(`SELECT grade, days FROM run_days WHERE run_id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("query run days: %w", err)
		}
		for drows.Next() {
			var grade string
			var days int
			if err := drows.Scan(&grade, &days); err != nil {
				drows.Close()
				return nil, fmt.Errorf("scan run days: %w", err)
			}
			run.Days[grade] = days
		}
		drows.Close()
	}
	return runs, nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
