// Package ledger indexes a consistent snapshot of check-ins and completions.
//
// Raw completion rows may contain duplicates for the same (check-in, task)
// pair, and may reference check-ins outside the snapshot when they were
// fetched with stale ids. New reduces both cases before any aggregation:
// duplicates collapse to a single state that is true if any row is true,
// and completions whose check-in is unknown are dropped.
package ledger

import (
	"sort"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
)

type completionKey struct {
	checkInID string
	taskID    string
}

type sessionKey struct {
	date    calendar.Date
	session int
}

// Ledger is an immutable, coalesced view over one snapshot.
type Ledger struct {
	bySession  map[sessionKey]*domain.CheckIn
	byDate     map[calendar.Date][]*domain.CheckIn
	completed  map[completionKey]bool
	byCheckIn  map[string][]domain.Completion
	dropped    int
	duplicates int
}

// New builds a Ledger. checkIns and completions must come from the same
// point in time.
func New(checkIns []*domain.CheckIn, completions []*domain.Completion) *Ledger {
	l := &Ledger{
		bySession: make(map[sessionKey]*domain.CheckIn, len(checkIns)),
		byDate:    make(map[calendar.Date][]*domain.CheckIn),
		completed: make(map[completionKey]bool, len(completions)),
		byCheckIn: make(map[string][]domain.Completion),
	}

	for _, ci := range checkIns {
		key := sessionKey{date: ci.Date, session: ci.SessionNumber}
		// Keep the earliest row if the store ever held two for one window.
		if prev, ok := l.bySession[key]; ok && !ci.CreatedAt.Before(prev.CreatedAt) {
			continue
		}
		l.bySession[key] = ci
	}
	for _, ci := range l.bySession {
		l.byDate[ci.Date] = append(l.byDate[ci.Date], ci)
	}
	// Completions attached to a superseded duplicate count toward the kept row.
	canonical := make(map[string]string, len(checkIns))
	for _, ci := range checkIns {
		canonical[ci.ID] = l.bySession[sessionKey{date: ci.Date, session: ci.SessionNumber}].ID
	}
	for d := range l.byDate {
		sort.Slice(l.byDate[d], func(i, j int) bool {
			return l.byDate[d][i].SessionNumber < l.byDate[d][j].SessionNumber
		})
	}

	order := make([]completionKey, 0, len(completions))
	firstID := make(map[completionKey]string, len(completions))
	for _, c := range completions {
		checkInID, ok := canonical[c.CheckInID]
		if !ok {
			l.dropped++
			continue
		}
		key := completionKey{checkInID: checkInID, taskID: c.TaskID}
		prev, seen := l.completed[key]
		if seen {
			l.duplicates++
		} else {
			order = append(order, key)
			firstID[key] = c.ID
		}
		l.completed[key] = prev || c.Completed
	}
	for _, key := range order {
		l.byCheckIn[key.checkInID] = append(l.byCheckIn[key.checkInID], domain.Completion{
			ID:        firstID[key],
			CheckInID: key.checkInID,
			TaskID:    key.taskID,
			Completed: l.completed[key],
		})
	}
	return l
}

// CheckIn returns the check-in for a date and session, if any.
func (l *Ledger) CheckIn(d calendar.Date, session int) (*domain.CheckIn, bool) {
	ci, ok := l.bySession[sessionKey{date: d, session: session}]
	return ci, ok
}

// CheckInsOn returns the check-ins of d ordered by session number.
func (l *Ledger) CheckInsOn(d calendar.Date) []*domain.CheckIn {
	return l.byDate[d]
}

// Completions returns the coalesced completions of a check-in, one per task.
func (l *Ledger) Completions(checkInID string) []domain.Completion {
	return l.byCheckIn[checkInID]
}

// IsCompleted reports the coalesced state of a task within a check-in.
func (l *Ledger) IsCompleted(checkInID, taskID string) bool {
	return l.completed[completionKey{checkInID: checkInID, taskID: taskID}]
}

// CompletedSessions returns the session numbers on d in which taskID is done.
func (l *Ledger) CompletedSessions(d calendar.Date, taskID string) []int {
	var sessions []int
	for _, ci := range l.byDate[d] {
		if l.IsCompleted(ci.ID, taskID) {
			sessions = append(sessions, ci.SessionNumber)
		}
	}
	return sessions
}

// CompletedCount is the number of distinct sessions on d in which taskID is
// done. Callers cap it by the task's required count.
func (l *Ledger) CompletedCount(d calendar.Date, taskID string) int {
	return len(l.CompletedSessions(d, taskID))
}

// TotalCheckIns is the number of distinct (date, session) check-ins.
func (l *Ledger) TotalCheckIns() int {
	return len(l.bySession)
}

// Dropped is the number of completion rows whose check-in was not in the
// snapshot. Non-zero values indicate a stale fetch.
func (l *Ledger) Dropped() int { return l.dropped }

// Duplicates is the number of completion rows merged into an earlier row.
func (l *Ledger) Duplicates() int { return l.duplicates }
