package session

import (
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/ledger"
)

// Slot is one check-in window of a day as presented to the user.
type Slot struct {
	Number      int
	Label       string
	Time        string
	Status      domain.SessionStatus
	CheckIn     *domain.CheckIn
	Completions []domain.Completion
}

// Timeline derives the status of every session on date as observed at m.
//
// Precedence is completed, available, upcoming, missed. A session with a
// check-in stays completed regardless of its task completions. Only today
// can have an available session; days before today have no upcoming
// sessions, and days after today have no missed ones.
func Timeline(date calendar.Date, m calendar.Moment, sched calendar.Schedule, l *ledger.Ledger) []Slot {
	current, _ := calendar.CurrentSession(sched, m)
	isToday := date == m.Date

	slots := make([]Slot, 0, sched.Len())
	for n := 1; n <= sched.Len(); n++ {
		slot := Slot{
			Number: n,
			Label:  calendar.SessionLabel(n),
			Time:   sched.Boundary(n),
		}

		if ci, ok := l.CheckIn(date, n); ok {
			slot.Status = domain.SessionCompleted
			slot.CheckIn = ci
			slot.Completions = l.Completions(ci.ID)
			slots = append(slots, slot)
			continue
		}

		switch {
		case isToday && n == current:
			slot.Status = domain.SessionAvailable
		case isToday && slot.Time > m.TimeOfDay:
			slot.Status = domain.SessionUpcoming
		case date.After(m.Date):
			slot.Status = domain.SessionUpcoming
		default:
			slot.Status = domain.SessionMissed
		}
		slots = append(slots, slot)
	}
	return slots
}

// AllSessionsDone reports whether every configured session has a check-in.
// Task cadence plays no part: a daily task satisfied in the first session
// does not complete the day on its own.
func AllSessionsDone(slots []Slot) bool {
	if len(slots) == 0 {
		return false
	}
	for _, s := range slots {
		if s.Status != domain.SessionCompleted {
			return false
		}
	}
	return true
}

// Count returns how many slots have status st.
func Count(slots []Slot, st domain.SessionStatus) int {
	n := 0
	for _, s := range slots {
		if s.Status == st {
			n++
		}
	}
	return n
}
