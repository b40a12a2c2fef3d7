package database

import (
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ImportRun is one recorded import pass (contacts or orders), including
// dry runs. Kept on a plain database/sql table rather than a GORM model
// so the audit trail survives model migrations untouched.
type ImportRun struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"` // "contacts" or "orders"
	SourcePath string `json:"source_path"`
	DryRun     bool   `json:"dry_run"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
}

// EnsureImportRunSchema creates the import_runs table if it does not exist.
func EnsureImportRunSchema(db *sql.DB) error {
	sqlStmt := `
	CREATE TABLE IF NOT EXISTS import_runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		source_path TEXT NOT NULL,
		dry_run INTEGER NOT NULL DEFAULT 0,
		created INTEGER NOT NULL DEFAULT 0,
		updated INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("failed to create import_runs table: %w", err)
	}
	return nil
}

// RecordImportRun inserts one finished import pass into the audit log.
func RecordImportRun(db *sql.DB, run ImportRun) error {
	queryBuilder := psql.Insert("import_runs").
		Columns("id", "kind", "source_path", "dry_run", "created", "updated", "skipped", "started_at", "finished_at").
		Values(run.ID, run.Kind, run.SourcePath, run.DryRun, run.Created, run.Updated, run.Skipped, run.StartedAt, run.FinishedAt)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for RecordImportRun: %w", err)
	}

	if _, err := db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to execute RecordImportRun for %s (%s): %w", run.Kind, run.SourcePath, err)
	}
	return nil
}

// ListImportRuns returns the most recent import passes, newest first.
func ListImportRuns(db *sql.DB, limit int) ([]ImportRun, error) {
	queryBuilder := psql.Select("id", "kind", "source_path", "dry_run", "created", "updated", "skipped",
		"started_at", "finished_at").
		From("import_runs").
		OrderBy("started_at DESC")
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListImportRuns: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListImportRuns query: %w", err)
	}

	defer rows.Close()
	runs := []ImportRun{}
	for rows.Next() {
		var r ImportRun
		err := rows.Scan(&r.ID, &r.Kind, &r.SourcePath, &r.DryRun, &r.Created, &r.Updated, &r.Skipped,
			&r.StartedAt, &r.FinishedAt)
		if err != nil {
			log.Printf("Error scanning import run row: %v", err)
			continue
		}
		runs = append(runs, r)
	}

	if err = rows.Err(); err != nil {
		return runs, fmt.Errorf("error iterating import run rows: %w", err)
	}
	return runs, nil
}
