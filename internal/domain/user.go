package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
)

// User holds the per-person settings the engine needs: timezone, session
// boundaries and the tracking start date.
type User struct {
	ID           string
	DisplayName  string
	Timezone     string
	CheckInTimes []string
	StartDate    calendar.Date
	GoalDate     *calendar.Date
	CreatedAt    time.Time
}

// Location resolves the user's IANA timezone.
func (u *User) Location() (*time.Location, error) {
	return calendar.LoadLocation(u.Timezone)
}

// Schedule validates and sorts the user's check-in times.
func (u *User) Schedule() (calendar.Schedule, error) {
	return calendar.NewSchedule(u.CheckInTimes)
}

// Validate checks every setting the engine depends on.
func (u *User) Validate() error {
	if strings.TrimSpace(u.DisplayName) == "" {
		return fmt.Errorf("display name is required")
	}
	if _, err := u.Location(); err != nil {
		return err
	}
	if _, err := u.Schedule(); err != nil {
		return err
	}
	if _, err := calendar.ParseDate(string(u.StartDate)); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	if u.GoalDate != nil && u.GoalDate.Before(u.StartDate) {
		return fmt.Errorf("goal date %s is before start date %s", *u.GoalDate, u.StartDate)
	}
	return nil
}

// DisplayID returns a short identifier for display.
func (u *User) DisplayID() string {
	if len(u.ID) >= 8 {
		return u.ID[:8]
	}
	return u.ID
}
