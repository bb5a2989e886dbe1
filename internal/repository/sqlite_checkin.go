package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
)

// SQLiteCheckInRepo implements CheckInRepo using a SQLite database.
type SQLiteCheckInRepo struct {
	db db.DBTX
}

func NewSQLiteCheckInRepo(conn db.DBTX) *SQLiteCheckInRepo {
	return &SQLiteCheckInRepo{db: conn}
}

const checkInColumns = `id, user_id, date, session_number, created_at`

func (r *SQLiteCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `INSERT INTO check_ins (` + checkInColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Date.String(),
		c.SessionNumber,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("check-in %s session %d: %w", c.Date, c.SessionNumber, ErrCheckInConflict)
		}
		return fmt.Errorf("inserting check-in: %w", err)
	}
	return nil
}

func (r *SQLiteCheckInRepo) Find(ctx context.Context, userID string, date calendar.Date, session int) (*domain.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE user_id = ? AND date = ? AND session_number = ?`
	row := r.db.QueryRowContext(ctx, query, userID, date.String(), session)
	c, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check-in %s session %d: %w", date, session, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCheckInRepo) List(ctx context.Context, userID string, from, to *calendar.Date) ([]*domain.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE user_id = ?`
	args := []any{userID}
	if from != nil {
		query += ` AND date >= ?`
		args = append(args, from.String())
	}
	if to != nil {
		query += ` AND date <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY date, session_number, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing check-ins: %w", err)
	}
	defer rows.Close()

	var out []*domain.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating check-ins: %w", err)
	}
	return out, nil
}

func scanCheckIn(row scanner) (*domain.CheckIn, error) {
	var c domain.CheckIn
	var date, createdAt string

	if err := row.Scan(&c.ID, &c.UserID, &date, &c.SessionNumber, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning check-in: %w", err)
	}

	var err error
	if c.Date, err = calendar.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}
