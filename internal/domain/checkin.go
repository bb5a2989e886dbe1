package domain

import (
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
)

// CheckIn records that a user engaged with one session on one date. At most
// one exists per (user, date, session).
type CheckIn struct {
	ID            string
	UserID        string
	Date          calendar.Date
	SessionNumber int
	CreatedAt     time.Time
}

// Completion records whether a task was marked done within a check-in.
type Completion struct {
	ID        string
	CheckInID string
	TaskID    string
	Completed bool
}

// CheckInIDs returns the ids of cs in order.
func CheckInIDs(cs []*CheckIn) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}
