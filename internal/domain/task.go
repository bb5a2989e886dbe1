package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
)

// Task is a trackable habit owned by a user. RemovedAt marks soft deletion:
// the task stops accruing completions but its history still counts.
type Task struct {
	ID        string
	UserID    string
	Name      string
	Icon      string
	Cadence   Cadence
	SortOrder int
	CreatedAt time.Time
	RemovedAt *time.Time
}

// TaskPatch carries a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Name    *string
	Icon    *string
	Cadence *Cadence
}

// RequiredCount is the per-day completion cap: 1 for daily tasks, one per
// session otherwise.
func (t *Task) RequiredCount(sessionsPerDay int) int {
	if t.Cadence == CadencePerSession {
		return sessionsPerDay
	}
	return 1
}

// IsActiveOn reports whether the task existed on date d as seen in loc:
// created on or before d and not removed on or before d.
func (t *Task) IsActiveOn(d calendar.Date, loc *time.Location) bool {
	if calendar.DateOf(t.CreatedAt, loc).After(d) {
		return false
	}
	if t.RemovedAt != nil && !calendar.DateOf(*t.RemovedAt, loc).After(d) {
		return false
	}
	return true
}

func (t *Task) IsRemoved() bool { return t.RemovedAt != nil }

// Validate checks the user-editable fields.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	if !t.Cadence.Valid() {
		return fmt.Errorf("invalid cadence %q", t.Cadence)
	}
	return nil
}

// Apply copies the non-nil fields of p onto the task.
func (t *Task) Apply(p TaskPatch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Icon != nil {
		t.Icon = *p.Icon
	}
	if p.Cadence != nil {
		t.Cadence = *p.Cadence
	}
}

// ActiveTasks filters tasks to those active on d.
func ActiveTasks(tasks []*Task, d calendar.Date, loc *time.Location) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.IsActiveOn(d, loc) {
			out = append(out, t)
		}
	}
	return out
}
