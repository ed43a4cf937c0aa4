package meetstore

import (
	"context"
	"fmt"

	"github.com/cadencehq/cadence/schema"
)

// ListTasks returns all tasks in creation order.
func (s *SQLStore) ListTasks(ctx context.Context) ([]schema.Task, error) {
	query := fmt.Sprintf(`SELECT id, contact_id, title, created_at, due_at, done
		FROM %s ORDER BY created_at, id`, quoteTableName(tasksTable, s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Task
	for rows.Next() {
		var t schema.Task
		createdAt := newTimeField(s.backend)
		dueAt := newTimeField(s.backend)
		if err := rows.Scan(&t.ID, &t.ContactID, &t.Title, createdAt.dest(), dueAt.dest(), &t.Done); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if t.CreatedAt, err = createdAt.value(); err != nil {
			return nil, err
		}
		if t.DueAt, err = dueAt.value(); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return results, nil
}

// AddTask inserts one task.
func (s *SQLStore) AddTask(ctx context.Context, t schema.Task) error {
	query := rebind(fmt.Sprintf(`
		INSERT INTO %s (id, contact_id, title, created_at, due_at, done)
		VALUES (?, ?, ?, ?, ?, ?)
	`, quoteTableName(tasksTable, s.backend)), s.backend)

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.ContactID, t.Title, formatTime(t.CreatedAt, s.backend),
		formatNullableTime(t.DueAt, s.backend), t.Done)
	if err != nil {
		return fmt.Errorf("failed to insert task %q: %w", t.Title, err)
	}
	return nil
}

// CompleteTask marks one task as done. An unknown id is an error so the
// CLI can tell the user instead of silently succeeding.
func (s *SQLStore) CompleteTask(ctx context.Context, id string) error {
	query := rebind(fmt.Sprintf(`UPDATE %s SET done = ? WHERE id = ?`,
		quoteTableName(tasksTable, s.backend)), s.backend)

	result, err := s.db.ExecContext(ctx, query, true, id)
	if err != nil {
		return fmt.Errorf("failed to complete task %q: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check task update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %q not found", id)
	}
	return nil
}
