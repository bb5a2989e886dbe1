package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/repository"
	"github.com/alexanderramin/consistency/internal/testutil"
	"github.com/stretchr/testify/require"
)

// at returns 2025-01-01 hh:mm UTC shifted by days.
func at(days, hh, mm int) time.Time {
	return time.Date(2025, 1, 1+days, hh, mm, 0, 0, time.UTC)
}

type fixture struct {
	db       *sql.DB
	uow      db.UnitOfWork
	clock    *calendar.FakeClock
	users    UserService
	tasks    TaskService
	checkIns CheckInService
	stats    StatsService
	observed *recordingObserver
}

func setup(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := calendar.NewFakeClock(at(0, 6, 0))
	obs := &recordingObserver{}
	return &fixture{
		db:       database,
		uow:      uow,
		clock:    clock,
		users:    NewUserService(uow, clock),
		tasks:    NewTaskService(uow, clock),
		checkIns: NewCheckInService(uow, clock, obs),
		stats:    NewStatsService(uow, clock, obs),
		observed: obs,
	}
}

func (f *fixture) user(t *testing.T, opts ...func(*app.CreateUserRequest)) *domain.User {
	t.Helper()
	start := calendar.Date("2025-01-01")
	req := app.CreateUserRequest{DisplayName: "Sam", Timezone: "UTC", StartDate: &start}
	for _, o := range opts {
		o(&req)
	}
	u, err := f.users.Create(context.Background(), req)
	require.NoError(t, err)
	return u
}

func (f *fixture) task(t *testing.T, userID, name string, cadence domain.Cadence) *domain.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), app.CreateTaskRequest{UserID: userID, Name: name, Cadence: cadence})
	require.NoError(t, err)
	return task
}

func (f *fixture) record(t *testing.T, userID, taskID string, completed bool) *app.RecordCompletionResponse {
	t.Helper()
	resp, err := f.checkIns.RecordCompletion(context.Background(), app.RecordCompletionRequest{
		UserID: userID, TaskID: taskID, Completed: completed,
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) completionRows(t *testing.T, userID string) []*domain.Completion {
	t.Helper()
	ctx := context.Background()
	checkIns, err := repository.NewSQLiteCheckInRepo(f.db).List(ctx, userID, nil, nil)
	require.NoError(t, err)
	rows, err := repository.NewSQLiteCompletionRepo(f.db).ListByCheckIns(ctx, domain.CheckInIDs(checkIns))
	require.NoError(t, err)
	return rows
}

func (f *fixture) checkInRows(t *testing.T, userID string) []*domain.CheckIn {
	t.Helper()
	rows, err := repository.NewSQLiteCheckInRepo(f.db).List(context.Background(), userID, nil, nil)
	require.NoError(t, err)
	return rows
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
