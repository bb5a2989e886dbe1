package session

import (
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/ledger"
)

// TargetSession picks the session a quick completion of task is attributed
// to on m's date.
//
// A per_session task that is partly done today fills the lowest session
// without a completion, so a missed window can be filled retroactively.
// Everything else goes to the open session, or session 1 before the first
// window of the day opens.
func TargetSession(task *domain.Task, m calendar.Moment, sched calendar.Schedule, l *ledger.Ledger) int {
	fallback := 1
	if current, ok := calendar.CurrentSession(sched, m); ok {
		fallback = current
	}
	if task.Cadence != domain.CadencePerSession {
		return fallback
	}

	required := task.RequiredCount(sched.Len())
	done := l.CompletedSessions(m.Date, task.ID)
	if len(done) == 0 || len(done) >= required {
		return fallback
	}

	filled := make(map[int]bool, len(done))
	for _, n := range done {
		filled[n] = true
	}
	for n := 1; n <= sched.Len(); n++ {
		if !filled[n] {
			return n
		}
	}
	return fallback
}

// UndoSession picks the session whose completion an unmark should clear: the
// latest one today where task is completed. ok is false when nothing is
// completed, in which case the caller falls back to TargetSession.
func UndoSession(task *domain.Task, date calendar.Date, l *ledger.Ledger) (int, bool) {
	done := l.CompletedSessions(date, task.ID)
	if len(done) == 0 {
		return 0, false
	}
	return done[len(done)-1], true
}

// TaskProgress is a task's completion state for one day.
type TaskProgress struct {
	Task      *domain.Task
	Completed int
	Required  int
}

func (p TaskProgress) Done() bool { return p.Completed >= p.Required }

// Progress returns the capped completion count of task on date.
func Progress(task *domain.Task, date calendar.Date, sched calendar.Schedule, l *ledger.Ledger) TaskProgress {
	required := task.RequiredCount(sched.Len())
	return TaskProgress{
		Task:      task,
		Completed: min(l.CompletedCount(date, task.ID), required),
		Required:  required,
	}
}

// DesiredToggle returns the state a quick tap should record. A partly done
// per_session task always moves forward; anything else flips.
func DesiredToggle(p TaskProgress) bool {
	if p.Task.Cadence == domain.CadencePerSession && p.Completed > 0 && p.Completed < p.Required {
		return true
	}
	return !p.Done()
}
