package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/google/uuid"
)

type taskService struct {
	engine
}

func NewTaskService(uow db.UnitOfWork, clock calendar.Clock, observers ...UseCaseObserver) TaskService {
	return &taskService{engine: newEngine(uow, clock, observers)}
}

func (s *taskService) Create(ctx context.Context, req app.CreateTaskRequest) (*domain.Task, error) {
	task := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Name:      strings.TrimSpace(req.Name),
		Icon:      strings.TrimSpace(req.Icon),
		Cadence:   req.Cadence,
		CreatedAt: s.clock.Now().UTC(),
	}
	if task.Cadence == "" {
		task.Cadence = domain.CadenceDaily
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := s.repos(tx)
		if _, err := r.users.GetByID(ctx, req.UserID); err != nil {
			return err
		}
		next, err := r.tasks.NextSortOrder(ctx, req.UserID)
		if err != nil {
			return err
		}
		task.SortOrder = next
		return r.tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, persistence("creating task", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, userID string, includeRemoved bool) ([]*domain.Task, error) {
	tasks, err := db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) ([]*domain.Task, error) {
		return s.repos(tx).tasks.List(ctx, userID, includeRemoved)
	})
	if err != nil {
		return nil, persistence("listing tasks", err)
	}
	return tasks, nil
}

// Update edits a live task. Cadence changes apply to history too, since
// stats read the cadence a task has now.
func (s *taskService) Update(ctx context.Context, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	task, err := db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.Task, error) {
		r := s.repos(tx)
		task, err := r.tasks.GetByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if task.IsRemoved() {
			return nil, fmt.Errorf("task %q: %w", task.Name, ErrTaskRemoved)
		}
		task.Apply(patch)
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTask, err)
		}
		if err := r.tasks.Update(ctx, taskID, patch); err != nil {
			return nil, err
		}
		return task, nil
	})
	if err != nil {
		return nil, persistence("updating task", err)
	}
	return task, nil
}

// Remove soft-deletes a task at the current instant. Its check-in history
// stays and still counts on the days it was active.
func (s *taskService) Remove(ctx context.Context, taskID string) error {
	at := s.clock.Now().UTC()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.repos(tx).tasks.SoftRemove(ctx, taskID, at)
	})
	return persistence("removing task", err)
}

// Reorder sets the display order of the user's live tasks. orderedIDs must
// name each of them exactly once.
func (s *taskService) Reorder(ctx context.Context, userID string, orderedIDs []string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := s.repos(tx)
		live, err := r.tasks.List(ctx, userID, false)
		if err != nil {
			return err
		}
		if len(live) != len(orderedIDs) {
			return fmt.Errorf("%w: reorder lists %d tasks, user has %d", ErrInvalidTask, len(orderedIDs), len(live))
		}
		known := make(map[string]bool, len(live))
		for _, t := range live {
			known[t.ID] = true
		}
		for _, id := range orderedIDs {
			if !known[id] {
				return fmt.Errorf("%w: %s is not a live task of this user or is listed twice", ErrInvalidTask, id)
			}
			delete(known, id)
		}
		return r.tasks.Reorder(ctx, userID, orderedIDs)
	})
	return persistence("reordering tasks", err)
}
