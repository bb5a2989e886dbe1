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

type userService struct {
	engine
}

func NewUserService(uow db.UnitOfWork, clock calendar.Clock, observers ...UseCaseObserver) UserService {
	return &userService{engine: newEngine(uow, clock, observers)}
}

func (s *userService) Create(ctx context.Context, req app.CreateUserRequest) (*domain.User, error) {
	now := s.clock.Now()
	u := &domain.User{
		ID:           uuid.New().String(),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Timezone:     strings.TrimSpace(req.Timezone),
		CheckInTimes: req.CheckInTimes,
		GoalDate:     req.GoalDate,
		CreatedAt:    now.UTC(),
	}
	if u.Timezone == "" {
		u.Timezone = "UTC"
	}
	if len(u.CheckInTimes) == 0 {
		u.CheckInTimes = append([]string(nil), calendar.DefaultCheckInTimes...)
	}
	if err := normalizeUser(u); err != nil {
		return nil, err
	}
	loc, err := u.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}
	u.StartDate = calendar.DateOf(now, loc)
	if req.StartDate != nil {
		u.StartDate = *req.StartDate
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.repos(tx).users.Create(ctx, u)
	})
	if err != nil {
		return nil, persistence("creating user", err)
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.User, error) {
		return s.repos(tx).users.GetByID(ctx, id)
	})
	if err != nil {
		return nil, persistence("loading user", err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) ([]*domain.User, error) {
		return s.repos(tx).users.List(ctx)
	})
	if err != nil {
		return nil, persistence("listing users", err)
	}
	return users, nil
}

// Update changes settings. New check-in times apply to every day, past
// days included, because session numbers are positional.
func (s *userService) Update(ctx context.Context, req app.UpdateUserRequest) (*domain.User, error) {
	u, err := db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.User, error) {
		users := s.repos(tx).users
		u, err := users.GetByID(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if req.DisplayName != nil {
			u.DisplayName = strings.TrimSpace(*req.DisplayName)
		}
		if req.Timezone != nil {
			u.Timezone = *req.Timezone
		}
		if len(req.CheckInTimes) > 0 {
			u.CheckInTimes = req.CheckInTimes
		}
		switch {
		case req.ClearGoal:
			u.GoalDate = nil
		case req.GoalDate != nil:
			u.GoalDate = req.GoalDate
		}
		if err := normalizeUser(u); err != nil {
			return nil, err
		}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
		}
		if err := users.Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	})
	if err != nil {
		return nil, persistence("updating user", err)
	}
	return u, nil
}

// normalizeUser stores check-in times sorted and zero-padded.
func normalizeUser(u *domain.User) error {
	sched, err := u.Schedule()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}
	u.CheckInTimes = sched.Boundaries()
	return nil
}
