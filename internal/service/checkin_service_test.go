package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/repository"
	"github.com/alexanderramin/consistency/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCompletion_EndToEndPerSessionDay(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	water := f.task(t, u.ID, "Water", domain.CadencePerSession)

	f.clock.Set(at(0, 8, 0))
	resp := f.record(t, u.ID, water.ID, true)
	assert.Equal(t, 1, resp.CheckIn.SessionNumber)
	assert.True(t, resp.CreatedCheckIn)
	assert.Equal(t, 33, resp.Day.Percentage)

	f.clock.Set(at(0, 13, 0))
	resp = f.record(t, u.ID, water.ID, true)
	assert.Equal(t, 2, resp.CheckIn.SessionNumber)
	assert.Equal(t, 67, resp.Day.Percentage, "2/3 rounds half up")

	f.clock.Set(at(0, 21, 0))
	today, err := f.checkIns.Today(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, today.Day.Percentage)
	assert.True(t, today.HasCurrent)
	assert.Equal(t, 3, today.CurrentSession)
	assert.Equal(t, domain.SessionAvailable, today.Sessions[2].Status)
	assert.False(t, today.HasNext)
	assert.False(t, today.AllSessionsDone)
	require.Len(t, today.Tasks, 1)
	assert.Equal(t, 2, today.Tasks[0].Completed)
	assert.Equal(t, 3, today.Tasks[0].Required)
}

func TestRecordCompletion_Idempotent(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	f.clock.Set(at(0, 9, 0))
	first := f.record(t, u.ID, read.ID, true)
	second := f.record(t, u.ID, read.ID, true)

	assert.True(t, first.CreatedCheckIn)
	assert.False(t, second.CreatedCheckIn)
	assert.Equal(t, first.CheckIn.ID, second.CheckIn.ID)

	rows := f.completionRows(t, u.ID)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
	assert.Equal(t, 100, second.Day.Percentage)
}

func TestRecordCompletion_PerSessionFillsLowestGap(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	water := f.task(t, u.ID, "Water", domain.CadencePerSession)

	f.clock.Set(at(0, 13, 0))
	assert.Equal(t, 2, f.record(t, u.ID, water.ID, true).CheckIn.SessionNumber)

	f.clock.Set(at(0, 21, 0))
	resp := f.record(t, u.ID, water.ID, true)
	assert.Equal(t, 1, resp.CheckIn.SessionNumber, "missed morning is filled before the evening")
	assert.Equal(t, 67, resp.Day.Percentage)
}

func TestRecordCompletion_PlaceholdersForActiveTasks(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	water := f.task(t, u.ID, "Water", domain.CadencePerSession)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)
	gone := f.task(t, u.ID, "Gone", domain.CadenceDaily)
	require.NoError(t, f.tasks.Remove(context.Background(), gone.ID))

	f.clock.Set(at(0, 8, 0))
	f.record(t, u.ID, water.ID, true)

	rows := f.completionRows(t, u.ID)
	require.Len(t, rows, 2)
	byTask := map[string]bool{}
	for _, r := range rows {
		byTask[r.TaskID] = r.Completed
	}
	assert.True(t, byTask[water.ID])
	completed, ok := byTask[read.ID]
	assert.True(t, ok, "read gets a placeholder")
	assert.False(t, completed)
	_, ok = byTask[gone.ID]
	assert.False(t, ok, "removed tasks get no placeholder")
}

func TestRecordCompletion_BeforeFirstWindowUsesSessionOne(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	f.clock.Set(at(0, 5, 30))
	resp := f.record(t, u.ID, read.ID, true)
	assert.Equal(t, 1, resp.CheckIn.SessionNumber)
}

func TestRecordCompletion_UnmarkClearsLatestSession(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	f.clock.Set(at(0, 8, 0))
	f.record(t, u.ID, read.ID, true)

	f.clock.Set(at(0, 21, 0))
	resp := f.record(t, u.ID, read.ID, false)
	assert.Equal(t, 1, resp.CheckIn.SessionNumber, "unmark targets the session where it was done")
	assert.Equal(t, 0, resp.Day.Percentage)
	assert.Len(t, f.checkInRows(t, u.ID), 1, "no new check-in for an unmark")
}

func TestRecordCompletion_RemovedTask(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)
	require.NoError(t, f.tasks.Remove(ctx, read.ID))

	_, err := f.checkIns.RecordCompletion(ctx, app.RecordCompletionRequest{UserID: u.ID, TaskID: read.ID, Completed: true})
	assert.ErrorIs(t, err, ErrTaskRemoved)

	_, err = f.checkIns.RecordCompletion(ctx, app.RecordCompletionRequest{UserID: u.ID, TaskID: "nope", Completed: true})
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestRecordCompletion_UnknownUser(t *testing.T) {
	f := setup(t)

	_, err := f.checkIns.RecordCompletion(context.Background(), app.RecordCompletionRequest{UserID: "ghost", TaskID: "t"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NotErrorIs(t, err, ErrPersistenceUnavailable)
}

// staleCheckIns hides existing check-ins from snapshot reads, as if another
// writer opened the session right after the snapshot was taken.
type staleCheckIns struct {
	repository.CheckInRepo
}

func (staleCheckIns) List(context.Context, string, *calendar.Date, *calendar.Date) ([]*domain.CheckIn, error) {
	return nil, nil
}

func TestRecordCompletion_RecoversFromCreateRace(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	winner := testutil.NewTestCheckIn(u.ID, "2025-01-01", 2)
	require.NoError(t, repository.NewSQLiteCheckInRepo(f.db).Create(ctx, winner))

	svc := NewCheckInService(f.uow, f.clock).(*checkInService)
	svc.repos = func(tx db.DBTX) repoSet {
		r := sqliteRepos(tx)
		r.checkIns = staleCheckIns{r.checkIns}
		return r
	}

	f.clock.Set(at(0, 13, 0))
	resp, err := svc.RecordCompletion(ctx, app.RecordCompletionRequest{UserID: u.ID, TaskID: read.ID, Completed: true})
	require.NoError(t, err)
	assert.False(t, resp.CreatedCheckIn)
	assert.Equal(t, winner.ID, resp.CheckIn.ID)

	assert.Len(t, f.checkInRows(t, u.ID), 1)
	rows := f.completionRows(t, u.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, winner.ID, rows[0].CheckInID)
	assert.True(t, rows[0].Completed)
}

func TestRecordCompletion_PartialFailure(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	// Exec #1 creates the check-in, #2 the placeholder, #3 the upsert.
	injected := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 3, Err: injected}
	svc := NewCheckInService(failing, f.clock)

	f.clock.Set(at(0, 8, 0))
	_, err := svc.RecordCompletion(ctx, app.RecordCompletionRequest{UserID: u.ID, TaskID: read.ID, Completed: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
	assert.ErrorIs(t, err, injected)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Partial)

	// The check-in survived with its unchecked placeholder.
	assert.Len(t, f.checkInRows(t, u.ID), 1)
	rows := f.completionRows(t, u.ID)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)

	// Retrying attaches to the existing check-in.
	resp := f.record(t, u.ID, read.ID, true)
	assert.False(t, resp.CreatedCheckIn)
	assert.Equal(t, 100, resp.Day.Percentage)
}

func TestRecordCompletion_CheckInFailureIsNotPartial(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 1, Err: errors.New("locked")}
	svc := NewCheckInService(failing, f.clock)

	f.clock.Set(at(0, 8, 0))
	_, err := svc.RecordCompletion(context.Background(), app.RecordCompletionRequest{UserID: u.ID, TaskID: read.ID, Completed: true})

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.Partial)
	assert.Empty(t, f.checkInRows(t, u.ID))
}

func TestQuickToggle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)
	water := f.task(t, u.ID, "Water", domain.CadencePerSession)

	f.clock.Set(at(0, 8, 0))
	on, err := f.checkIns.QuickToggle(ctx, u.ID, read.ID)
	require.NoError(t, err)
	assert.True(t, on.Completion.Completed)

	off, err := f.checkIns.QuickToggle(ctx, u.ID, read.ID)
	require.NoError(t, err)
	assert.False(t, off.Completion.Completed)

	// A partly done per-session task keeps moving forward.
	_, err = f.checkIns.QuickToggle(ctx, u.ID, water.ID)
	require.NoError(t, err)
	f.clock.Set(at(0, 21, 0))
	next, err := f.checkIns.QuickToggle(ctx, u.ID, water.ID)
	require.NoError(t, err)
	assert.True(t, next.Completion.Completed)
	assert.Equal(t, 2, next.CheckIn.SessionNumber, "gap at midday is filled first")

	assert.Equal(t, "quick-toggle", f.observed.last().Name)
	assert.Equal(t, 2, f.observed.last().Fields["session"])
}

func TestSubmitCheckIn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)
	water := f.task(t, u.ID, "Water", domain.CadencePerSession)

	f.clock.Set(at(0, 6, 59))
	_, err := f.checkIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{UserID: u.ID})
	assert.ErrorIs(t, err, ErrNoOpenSession)

	f.clock.Set(at(0, 12, 30))
	resp, err := f.checkIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{UserID: u.ID, CompletedTaskIDs: []string{water.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CheckIn.SessionNumber)
	require.Len(t, resp.Completions, 2)
	assert.Equal(t, 25, resp.Day.Percentage)

	_, err = f.checkIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{UserID: u.ID, CompletedTaskIDs: []string{read.ID}})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	today, err := f.checkIns.Today(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.SessionStatus{
		domain.SessionMissed, domain.SessionCompleted, domain.SessionUpcoming,
	}, []domain.SessionStatus{today.Sessions[0].Status, today.Sessions[1].Status, today.Sessions[2].Status})
	assert.Equal(t, "20:00", today.NextBoundary)
}

func TestSubmitCheckIn_RejectsUnknownTask(t *testing.T) {
	f := setup(t)
	u := f.user(t)
	f.task(t, u.ID, "Read", domain.CadenceDaily)

	f.clock.Set(at(0, 8, 0))
	_, err := f.checkIns.SubmitCheckIn(context.Background(), app.SubmitCheckInRequest{UserID: u.ID, CompletedTaskIDs: []string{"bogus"}})
	assert.ErrorIs(t, err, ErrInvalidTask)
	assert.Empty(t, f.checkInRows(t, u.ID))
}

func TestSubmitCheckIn_AfterQuickCompleteInSameSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t)
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	f.clock.Set(at(0, 8, 0))
	f.record(t, u.ID, read.ID, true)

	_, err := f.checkIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{UserID: u.ID})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestToday_AllSessionsDone(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t, func(r *app.CreateUserRequest) { r.CheckInTimes = []string{"09:00", "18:00"} })
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	f.clock.Set(at(0, 9, 30))
	_, err := f.checkIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{UserID: u.ID, CompletedTaskIDs: []string{read.ID}})
	require.NoError(t, err)

	f.clock.Set(at(0, 18, 30))
	today, err := f.checkIns.Today(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, today.AllSessionsDone, "the daily task alone does not finish the day")

	_, err = f.checkIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{UserID: u.ID})
	require.NoError(t, err)
	today, err = f.checkIns.Today(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, today.AllSessionsDone)
}

func TestToday_UsesUserTimezone(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.user(t, func(r *app.CreateUserRequest) { r.Timezone = "America/New_York" })
	read := f.task(t, u.ID, "Read", domain.CadenceDaily)

	// 2025-01-02 03:00 UTC is 22:00 on Jan 1 in New York.
	f.clock.Set(at(1, 3, 0))
	resp := f.record(t, u.ID, read.ID, true)
	assert.Equal(t, calendar.Date("2025-01-01"), resp.CheckIn.Date)
	assert.Equal(t, 3, resp.CheckIn.SessionNumber)

	today, err := f.checkIns.Today(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "22:00", today.Moment.TimeOfDay)
}
