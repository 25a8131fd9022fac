// ABOUTME: Generation run storage operations.
// ABOUTME: Records which workbooks were written, when, and how many rows each sheet got.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one workbook written by the generator.
type Run struct {
	ID       string
	BatchID  string
	Scenario string
	Path     string
	// Seed is nil for unseeded runs.
	Seed      *int64
	CreatedAt time.Time
	// Sheets maps sheet name to data-row count.
	Sheets map[string]int
}

// NewBatchID returns an id grouping the runs of one CLI invocation.
func NewBatchID() string {
	return uuid.NewString()
}

// RecordRun inserts a run and its sheet row counts.
// ID and CreatedAt are filled in when empty.
func (s *Store) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seed sql.NullInt64
	if run.Seed != nil {
		seed = sql.NullInt64{Int64: *run.Seed, Valid: true}
	}

	if _, err := tx.Exec(`
		INSERT INTO generation_runs (id, batch_id, scenario, path, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.BatchID, run.Scenario, run.Path, seed, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for sheet, count := range run.Sheets {
		if _, err := tx.Exec(`
			INSERT INTO run_sheets (run_id, sheet, row_count)
			VALUES (?, ?, ?)
		`, run.ID, sheet, count); err != nil {
			return fmt.Errorf("failed to insert sheet %s: %w", sheet, err)
		}
	}

	return tx.Commit()
}

// RunQuery filters ListRuns.
type RunQuery struct {
	Limit int
	// PathContains matches runs whose output path contains the fragment literally.
	PathContains string
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(q RunQuery) ([]*Run, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}

	query := `
		SELECT id, batch_id, scenario, path, seed, created_at
		FROM generation_runs
	`
	args := []any{}
	if q.PathContains != "" {
		query += ` WHERE path LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeSQLLike(q.PathContains)+"%")
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, q.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, run := range runs {
		if run.Sheets, err = s.runSheets(run.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// GetRun returns a run by id. Unknown ids return sql.ErrNoRows.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, batch_id, scenario, path, seed, created_at
		FROM generation_runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	if run.Sheets, err = s.runSheets(run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	run := &Run{}
	var seed sql.NullInt64
	if err := row.Scan(&run.ID, &run.BatchID, &run.Scenario, &run.Path, &seed, &run.CreatedAt); err != nil {
		return nil, err
	}
	if seed.Valid {
		v := seed.Int64
		run.Seed = &v
	}
	return run, nil
}

func (s *Store) runSheets(runID string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT sheet, row_count FROM run_sheets WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheets := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		sheets[name] = count
	}
	return sheets, rows.Err()
}
