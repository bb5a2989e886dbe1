package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns the user's tasks by sort order. Removed tasks are only
	// included when includeRemoved is set; stats need them for history.
	List(ctx context.Context, userID string, includeRemoved bool) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) error
	SoftRemove(ctx context.Context, id string, at time.Time) error
	Reorder(ctx context.Context, userID string, orderedIDs []string) error
	NextSortOrder(ctx context.Context, userID string) (int, error)
}

type CheckInRepo interface {
	// Create fails with ErrCheckInConflict when the session already has a
	// check-in.
	Create(ctx context.Context, c *domain.CheckIn) error
	Find(ctx context.Context, userID string, date calendar.Date, session int) (*domain.CheckIn, error)
	// List returns check-ins within [from, to]; a nil bound is open.
	List(ctx context.Context, userID string, from, to *calendar.Date) ([]*domain.CheckIn, error)
}

type CompletionRepo interface {
	ListByCheckIns(ctx context.Context, checkInIDs []string) ([]*domain.Completion, error)
	// Upsert sets completed for (check-in, task), creating the row if needed.
	// c.ID is replaced with the id of the stored row.
	Upsert(ctx context.Context, c *domain.Completion) error
	// InsertPlaceholders adds an uncompleted row for every task without one.
	InsertPlaceholders(ctx context.Context, checkInID string, taskIDs []string) error
}
