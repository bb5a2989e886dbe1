package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/repository"
	"github.com/alexanderramin/consistency/internal/session"
	"github.com/google/uuid"
)

type checkInService struct {
	engine
}

func NewCheckInService(uow db.UnitOfWork, clock calendar.Clock, observers ...UseCaseObserver) CheckInService {
	return &checkInService{engine: newEngine(uow, clock, observers)}
}

func (s *checkInService) Today(ctx context.Context, userID string) (*app.TodayResponse, error) {
	snap, err := s.load(ctx, userID, s.clock.Now(), scopeToday)
	if err != nil {
		return nil, err
	}
	return buildToday(snap), nil
}

func buildToday(snap *snapshot) *app.TodayResponse {
	today := snap.today()
	resp := &app.TodayResponse{
		User:     snap.user,
		Moment:   snap.now,
		Sessions: session.Timeline(today, snap.now, snap.sched, snap.ledger),
		Day:      snap.aggregator().DayStats(today),
	}
	resp.CurrentSession, resp.HasCurrent = calendar.CurrentSession(snap.sched, snap.now)
	resp.NextBoundary, resp.HasNext = calendar.NextSessionBoundary(snap.sched, snap.now)
	resp.AllSessionsDone = session.AllSessionsDone(resp.Sessions)
	for _, t := range snap.activeTasks() {
		resp.Tasks = append(resp.Tasks, session.Progress(t, today, snap.sched, snap.ledger))
	}
	return resp
}

func (s *checkInService) RecordCompletion(ctx context.Context, req app.RecordCompletionRequest) (resp *app.RecordCompletionResponse, err error) {
	startedAt := s.clock.Now()
	fields := map[string]any{"task_id": req.TaskID, "completed": req.Completed}
	defer observe(ctx, s.observer, "record-completion", startedAt, fields, &err)

	snap, err := s.load(ctx, req.UserID, startedAt, scopeToday)
	if err != nil {
		return nil, err
	}
	task, err := snap.activeTask(req.TaskID)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, snap, task, req.Completed, fields)
}

func (s *checkInService) QuickToggle(ctx context.Context, userID, taskID string) (resp *app.RecordCompletionResponse, err error) {
	startedAt := s.clock.Now()
	fields := map[string]any{"task_id": taskID}
	defer observe(ctx, s.observer, "quick-toggle", startedAt, fields, &err)

	snap, err := s.load(ctx, userID, startedAt, scopeToday)
	if err != nil {
		return nil, err
	}
	task, err := snap.activeTask(taskID)
	if err != nil {
		return nil, err
	}
	desired := session.DesiredToggle(session.Progress(task, snap.today(), snap.sched, snap.ledger))
	fields["completed"] = desired
	return s.record(ctx, snap, task, desired, fields)
}

// record attaches a completion of task to the session picked for it,
// opening that session's check-in first when needed. Writing the same
// state twice leaves a single row.
func (s *checkInService) record(ctx context.Context, snap *snapshot, task *domain.Task, completed bool, fields map[string]any) (*app.RecordCompletionResponse, error) {
	target := session.TargetSession(task, snap.now, snap.sched, snap.ledger)
	if !completed {
		if n, ok := session.UndoSession(task, snap.today(), snap.ledger); ok {
			target = n
		}
	}
	fields["session"] = target

	ci, created, err := s.ensureCheckIn(ctx, snap, target)
	if err != nil {
		return nil, persistence("opening check-in", err)
	}
	fields["created_check_in"] = created

	comp := &domain.Completion{CheckInID: ci.ID, TaskID: task.ID, Completed: completed}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.repos(tx).completions.Upsert(ctx, comp)
	})
	if err != nil {
		return nil, &PersistenceError{Op: "recording completion", Partial: created, Err: err}
	}

	snap.apply(ci, created, comp)
	day := snap.aggregator().DayStats(snap.today())
	fields["day_percentage"] = day.Percentage
	return &app.RecordCompletionResponse{
		Task:           task,
		CheckIn:        ci,
		Completion:     comp,
		CreatedCheckIn: created,
		Day:            day,
	}, nil
}

// ensureCheckIn returns the check-in for (today, n), creating it together
// with an unchecked placeholder for every task active today. Losing a
// creation race to another writer falls back to the winner's row.
func (s *checkInService) ensureCheckIn(ctx context.Context, snap *snapshot, n int) (*domain.CheckIn, bool, error) {
	if ci, ok := snap.ledger.CheckIn(snap.today(), n); ok {
		return ci, false, nil
	}

	ci := &domain.CheckIn{
		ID:            uuid.New().String(),
		UserID:        snap.user.ID,
		Date:          snap.today(),
		SessionNumber: n,
		CreatedAt:     snap.now.Instant.UTC(),
	}
	taskIDs := snap.activeTaskIDs()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := s.repos(tx)
		if err := r.checkIns.Create(ctx, ci); err != nil {
			return err
		}
		return r.completions.InsertPlaceholders(ctx, ci.ID, taskIDs)
	})
	if err == nil {
		return ci, true, nil
	}
	if !errors.Is(err, repository.ErrCheckInConflict) {
		return nil, false, err
	}

	existing, err := db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.CheckIn, error) {
		return s.repos(tx).checkIns.Find(ctx, snap.user.ID, snap.today(), n)
	})
	if err != nil {
		return nil, false, fmt.Errorf("re-reading check-in after conflict: %w", err)
	}
	return existing, false, nil
}

// SubmitCheckIn records the guided check-in for the open session: one
// completion row per active task, checked when listed in
// req.CompletedTaskIDs.
func (s *checkInService) SubmitCheckIn(ctx context.Context, req app.SubmitCheckInRequest) (resp *app.SubmitCheckInResponse, err error) {
	startedAt := s.clock.Now()
	fields := map[string]any{"completed_tasks": len(req.CompletedTaskIDs)}
	defer observe(ctx, s.observer, "submit-check-in", startedAt, fields, &err)

	snap, err := s.load(ctx, req.UserID, startedAt, scopeToday)
	if err != nil {
		return nil, err
	}
	current, ok := calendar.CurrentSession(snap.sched, snap.now)
	if !ok {
		first := snap.sched.Boundary(1)
		return nil, fmt.Errorf("first session opens at %s: %w", calendar.FormatTime12h(first), ErrNoOpenSession)
	}
	fields["session"] = current
	if _, exists := snap.ledger.CheckIn(snap.today(), current); exists {
		return nil, fmt.Errorf("%s session: %w", calendar.SessionLabel(current), ErrAlreadyCheckedIn)
	}

	active := snap.activeTasks()
	done := make(map[string]bool, len(req.CompletedTaskIDs))
	for _, id := range req.CompletedTaskIDs {
		if _, err := snap.activeTask(id); err != nil {
			return nil, err
		}
		done[id] = true
	}

	ci := &domain.CheckIn{
		ID:            uuid.New().String(),
		UserID:        snap.user.ID,
		Date:          snap.today(),
		SessionNumber: current,
		CreatedAt:     snap.now.Instant.UTC(),
	}
	comps := make([]*domain.Completion, 0, len(active))
	for _, t := range active {
		comps = append(comps, &domain.Completion{CheckInID: ci.ID, TaskID: t.ID, Completed: done[t.ID]})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := s.repos(tx)
		if err := r.checkIns.Create(ctx, ci); err != nil {
			return err
		}
		for _, c := range comps {
			if err := r.completions.Upsert(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, repository.ErrCheckInConflict) {
		return nil, fmt.Errorf("%s session: %w", calendar.SessionLabel(current), ErrAlreadyCheckedIn)
	}
	if err != nil {
		return nil, persistence("submitting check-in", err)
	}

	snap.apply(ci, true, comps...)
	day := snap.aggregator().DayStats(snap.today())
	fields["created_check_in"] = true
	fields["day_percentage"] = day.Percentage
	return &app.SubmitCheckInResponse{
		CheckIn:     ci,
		Completions: comps,
		Day:         day,
	}, nil
}
