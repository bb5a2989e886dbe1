package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/google/uuid"
)

// SQLiteCompletionRepo implements CompletionRepo using a SQLite database.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

func NewSQLiteCompletionRepo(conn db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: conn}
}

func (r *SQLiteCompletionRepo) ListByCheckIns(ctx context.Context, checkInIDs []string) ([]*domain.Completion, error) {
	var out []*domain.Completion
	for _, ids := range chunk(checkInIDs, maxVarsPerQuery) {
		query := `SELECT id, check_in_id, task_id, completed FROM completions
			WHERE check_in_id IN (` + placeholders(len(ids)) + `)
			ORDER BY check_in_id, task_id`
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("listing completions: %w", err)
		}
		for rows.Next() {
			var c domain.Completion
			var completed int
			if err := rows.Scan(&c.ID, &c.CheckInID, &c.TaskID, &completed); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning completion: %w", err)
			}
			c.Completed = completed != 0
			out = append(out, &c)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating completions: %w", err)
		}
	}
	return out, nil
}

func (r *SQLiteCompletionRepo) Upsert(ctx context.Context, c *domain.Completion) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completions (id, check_in_id, task_id, completed) VALUES (?, ?, ?, ?)
		ON CONFLICT(check_in_id, task_id) DO UPDATE SET completed = excluded.completed`,
		c.ID, c.CheckInID, c.TaskID, boolToInt(c.Completed))
	if err != nil {
		return fmt.Errorf("upserting completion: %w", err)
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM completions WHERE check_in_id = ? AND task_id = ?`, c.CheckInID, c.TaskID).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("reading upserted completion: %w", err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) InsertPlaceholders(ctx context.Context, checkInID string, taskIDs []string) error {
	for _, taskID := range taskIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO completions (id, check_in_id, task_id, completed) VALUES (?, ?, ?, 0)
			ON CONFLICT(check_in_id, task_id) DO NOTHING`,
			uuid.New().String(), checkInID, taskID)
		if err != nil {
			return fmt.Errorf("inserting placeholder for task %s: %w", taskID, err)
		}
	}
	return nil
}
