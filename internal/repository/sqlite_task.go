package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, user_id, name, icon, cadence, sort_order, created_at, removed_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Name,
		t.Icon,
		string(t.Cadence),
		t.SortOrder,
		formatTime(t.CreatedAt),
		nullableTimeToString(t.RemovedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context, userID string, includeRemoved bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	if !includeRemoved {
		query += ` AND removed_at IS NULL`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *patch.Icon)
	}
	if patch.Cadence != nil {
		sets = append(sets, "cadence = ?")
		args = append(args, string(*patch.Cadence))
	}
	if len(sets) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// SoftRemove stamps removed_at once. Removing an already removed task keeps
// the original instant.
func (r *SQLiteTaskRepo) SoftRemove(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET removed_at = ? WHERE id = ? AND removed_at IS NULL`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("removing task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	return nil
}

// Reorder assigns sort_order by position in orderedIDs. Ids that do not
// belong to userID are ignored.
func (r *SQLiteTaskRepo) Reorder(ctx context.Context, userID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET sort_order = ? WHERE id = ? AND user_id = ?`, i, id, userID); err != nil {
			return fmt.Errorf("reordering task %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) NextSortOrder(ctx context.Context, userID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM tasks WHERE user_id = ?`, userID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next sort order: %w", err)
	}
	return next, nil
}

func scanTask(row scanner) (*domain.Task, error) {
	var t domain.Task
	var cadence, createdAt string
	var removedAt sql.NullString

	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Icon, &cadence, &t.SortOrder, &createdAt, &removedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Cadence = domain.Cadence(cadence)
	var err error
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.RemovedAt = parseNullableTime(removedAt)
	return &t, nil
}
