package meetstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cadencehq/cadence/schema"
)

// RecordRun appends one import run to the history and returns its id.
func (s *SQLStore) RecordRun(ctx context.Context, run schema.ImportRun) (int64, error) {
	quotedTableName := quoteTableName(importRunsTable, s.backend)

	var runID int64
	var err error
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (started_at, finished_at, source, imported, skipped, failed)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING run_id`, quotedTableName)
		err = s.db.QueryRowContext(ctx, query,
			run.StartedAt, run.FinishedAt, run.Source, run.Imported, run.Skipped, run.Failed).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (started_at, finished_at, source, imported, skipped, failed)
			VALUES (?, ?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = s.db.ExecContext(ctx, query,
			formatTime(run.StartedAt, s.backend), formatTime(run.FinishedAt, s.backend),
			run.Source, run.Imported, run.Skipped, run.Failed)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert import run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all import runs in insertion order.
func (s *SQLStore) ListRuns(ctx context.Context) ([]schema.ImportRun, error) {
	query := fmt.Sprintf(`SELECT run_id, started_at, finished_at, source, imported, skipped, failed
		FROM %s ORDER BY run_id`, quoteTableName(importRunsTable, s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ImportRun
	for rows.Next() {
		var run schema.ImportRun
		startedAt := newTimeField(s.backend)
		finishedAt := newTimeField(s.backend)
		if err := rows.Scan(&run.ID, startedAt.dest(), finishedAt.dest(),
			&run.Source, &run.Imported, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		if run.StartedAt, err = startedAt.value(); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = finishedAt.value(); err != nil {
			return nil, err
		}
		results = append(results, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import runs: %w", err)
	}
	return results, nil
}
