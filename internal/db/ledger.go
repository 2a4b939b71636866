package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chriserin/sheetgen/internal/model"
)

// FileRecord is one generated class of a run.
type FileRecord struct {
	Path      string
	ClassName string
	Kind      string
}

// Run is everything recorded about one generation.
type Run struct {
	ID          string
	Workbook    string
	StartedAt   time.Time
	Files       []FileRecord
	Diagnostics []model.Diagnostic
}

// RunSummary is a row of the runs table.
type RunSummary struct {
	ID          string
	Workbook    string
	StartedAt   time.Time
	Files       int
	Diagnostics int
}

// RecordRun stores run and its files and diagnostics in one transaction.
// An empty ID is replaced by a fresh UUID; the stored ID is returned.
func RecordRun(sqlDB *sql.DB, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := sqlDB.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning run %s: %w", run.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, workbook, started_at, files, diagnostics) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Workbook, run.StartedAt.UTC().Format(time.RFC3339), len(run.Files), len(run.Diagnostics))
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, f := range run.Files {
		_, err := tx.Exec(`INSERT INTO generated_files (run_id, path, class_name, kind) VALUES (?, ?, ?, ?)`,
			run.ID, f.Path, f.ClassName, f.Kind)
		if err != nil {
			return "", fmt.Errorf("inserting %s: %w", f.Path, err)
		}
	}

	for _, d := range run.Diagnostics {
		_, err := tx.Exec(`INSERT INTO diagnostics (run_id, severity, code, sheet, row_num, message) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, string(d.Severity), d.Code, d.Sheet, d.Row, d.Message)
		if err != nil {
			return "", fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run %s: %w", run.ID, err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func ListRuns(sqlDB *sql.DB, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := sqlDB.Query(`SELECT id, workbook, started_at, files, diagnostics FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		if err := rows.Scan(&r.ID, &r.Workbook, &started, &r.Files, &r.Diagnostics); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", r.ID, started, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFiles returns the files generated by a run in insertion order.
func RunFiles(sqlDB *sql.DB, runID string) ([]FileRecord, error) {
	rows, err := sqlDB.Query(`SELECT path, class_name, kind FROM generated_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files of run %s: %w", runID, err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Path, &f.ClassName, &f.Kind); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// FindRun resolves a run ID prefix to the full ID. The prefix must match
// exactly one run.
func FindRun(sqlDB *sql.DB, prefix string) (string, error) {
	rows, err := sqlDB.Query(`SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("looking up run %s: %w", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch {
	case prefix == "" || len(ids) > 1:
		return "", fmt.Errorf("run id %q is ambiguous", prefix)
	case len(ids) == 0:
		return "", fmt.Errorf("run %s not found", prefix)
	}
	return ids[0], nil
}
