package testutil

import (
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/google/uuid"
)

// Epoch is the default creation instant for fixtures: 2025-01-01 00:00 UTC.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// User options
type UserOption func(*domain.User)

func WithTimezone(tz string) UserOption {
	return func(u *domain.User) {
		u.Timezone = tz
	}
}

func WithCheckInTimes(times ...string) UserOption {
	return func(u *domain.User) {
		u.CheckInTimes = times
	}
}

func WithGoalDate(d calendar.Date) UserOption {
	return func(u *domain.User) {
		u.GoalDate = &d
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:           uuid.New().String(),
		DisplayName:  name,
		Timezone:     "UTC",
		CheckInTimes: append([]string(nil), calendar.DefaultCheckInTimes...),
		StartDate:    calendar.DateOf(Epoch, time.UTC),
		CreatedAt:    Epoch,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Task options
type TaskOption func(*domain.Task)

func WithCadence(c domain.Cadence) TaskOption {
	return func(t *domain.Task) {
		t.Cadence = c
	}
}

func WithIcon(icon string) TaskOption {
	return func(t *domain.Task) {
		t.Icon = icon
	}
}

func WithSortOrder(n int) TaskOption {
	return func(t *domain.Task) {
		t.SortOrder = n
	}
}

func WithRemovedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.RemovedAt = &at
	}
}

func NewTestTask(userID, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Cadence:   domain.CadenceDaily,
		CreatedAt: Epoch,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestCheckIn(userID string, date calendar.Date, session int) *domain.CheckIn {
	return &domain.CheckIn{
		ID:            uuid.New().String(),
		UserID:        userID,
		Date:          date,
		SessionNumber: session,
		CreatedAt:     date.Time(),
	}
}

