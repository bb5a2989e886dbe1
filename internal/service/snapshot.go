package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/ledger"
	"github.com/alexanderramin/consistency/internal/stats"
)

// snapshot is one consistent read of a user's state, resolved at a single
// sampled instant.
type snapshot struct {
	user        *domain.User
	loc         *time.Location
	sched       calendar.Schedule
	now         calendar.Moment
	tasks       []*domain.Task // includes removed tasks
	checkIns    []*domain.CheckIn
	completions []*domain.Completion
	ledger      *ledger.Ledger
}

type snapshotScope int

const (
	scopeToday snapshotScope = iota
	scopeAllTime
)

// engine holds what every ledger-reading service shares.
type engine struct {
	uow      db.UnitOfWork
	repos    repoFactory
	clock    calendar.Clock
	observer UseCaseObserver
}

func newEngine(uow db.UnitOfWork, clock calendar.Clock, observers []UseCaseObserver) engine {
	if clock == nil {
		clock = calendar.RealClock{}
	}
	return engine{
		uow:      uow,
		repos:    sqliteRepos,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// load reads user, tasks, check-ins and their completions in one
// transaction so completions always match the fetched check-ins.
func (e engine) load(ctx context.Context, userID string, now time.Time, scope snapshotScope) (*snapshot, error) {
	snap, err := db.WithinTxResult(ctx, e.uow, func(ctx context.Context, tx db.DBTX) (*snapshot, error) {
		r := e.repos(tx)

		user, err := r.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		snap := &snapshot{user: user}
		if snap.loc, err = user.Location(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
		}
		if snap.sched, err = user.Schedule(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
		}
		snap.now = calendar.At(now, snap.loc)

		if snap.tasks, err = r.tasks.List(ctx, userID, true); err != nil {
			return nil, err
		}

		today := snap.now.Date
		from := &today
		if scope == scopeAllTime {
			from = &user.StartDate
		}
		if snap.checkIns, err = r.checkIns.List(ctx, userID, from, &today); err != nil {
			return nil, err
		}
		if snap.completions, err = r.completions.ListByCheckIns(ctx, domain.CheckInIDs(snap.checkIns)); err != nil {
			return nil, err
		}
		return snap, nil
	})
	if err != nil {
		return nil, persistence("loading snapshot", err)
	}
	snap.ledger = ledger.New(snap.checkIns, snap.completions)
	return snap, nil
}

func (s *snapshot) today() calendar.Date { return s.now.Date }

func (s *snapshot) activeTasks() []*domain.Task {
	return domain.ActiveTasks(s.tasks, s.today(), s.loc)
}

func (s *snapshot) activeTaskIDs() []string {
	active := s.activeTasks()
	ids := make([]string, 0, len(active))
	for _, t := range active {
		ids = append(ids, t.ID)
	}
	return ids
}

func (s *snapshot) aggregator() *stats.Aggregator {
	return stats.NewAggregator(s.tasks, s.ledger, s.sched.Len(), s.loc)
}

// activeTask resolves a task that can still be recorded today.
func (s *snapshot) activeTask(taskID string) (*domain.Task, error) {
	for _, t := range s.tasks {
		if t.ID != taskID {
			continue
		}
		if !t.IsActiveOn(s.today(), s.loc) {
			return nil, fmt.Errorf("task %q: %w", t.Name, ErrTaskRemoved)
		}
		return t, nil
	}
	return nil, fmt.Errorf("task %s: %w", taskID, ErrInvalidTask)
}

// apply folds freshly written rows into the snapshot. A completion replaces
// any earlier row for the same (check-in, task).
func (s *snapshot) apply(ci *domain.CheckIn, created bool, comps ...*domain.Completion) {
	if created {
		s.checkIns = append(s.checkIns, ci)
	}
	for _, c := range comps {
		kept := s.completions[:0:0]
		for _, old := range s.completions {
			if old.CheckInID == c.CheckInID && old.TaskID == c.TaskID {
				continue
			}
			kept = append(kept, old)
		}
		s.completions = append(kept, c)
	}
	s.ledger = ledger.New(s.checkIns, s.completions)
}
