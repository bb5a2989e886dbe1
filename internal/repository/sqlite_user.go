package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userColumns = `id, display_name, timezone, check_in_times, start_date, goal_date, created_at`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.DisplayName,
		u.Timezone,
		strings.Join(u.CheckInTimes, ","),
		u.StartDate.String(),
		nullableDateToString(u.GoalDate),
		formatTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, err
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, display_name`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET display_name = ?, timezone = ?, check_in_times = ?, start_date = ?, goal_date = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.DisplayName,
		u.Timezone,
		strings.Join(u.CheckInTimes, ","),
		u.StartDate.String(),
		nullableDateToString(u.GoalDate),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var times, startDate, createdAt string
	var goalDate sql.NullString

	if err := row.Scan(&u.ID, &u.DisplayName, &u.Timezone, &times, &startDate, &goalDate, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if times != "" {
		u.CheckInTimes = strings.Split(times, ",")
	}
	var err error
	if u.StartDate, err = calendar.ParseDate(startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	u.GoalDate = parseNullableDate(goalDate)
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}
