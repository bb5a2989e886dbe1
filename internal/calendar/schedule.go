package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSessionConfig is returned for an empty, malformed or duplicated
// list of check-in boundaries.
var ErrInvalidSessionConfig = errors.New("invalid session configuration")

// DefaultCheckInTimes are the boundaries assigned to a new user.
var DefaultCheckInTimes = []string{"07:00", "12:00", "20:00"}

// Schedule is the sorted list of session opening times shared by a user.
// Session i (1-based) covers [Boundaries[i-1], Boundaries[i]); the last
// session runs until midnight.
type Schedule struct {
	boundaries []string
}

// NewSchedule validates times and sorts them. Caller ordering is never trusted.
func NewSchedule(times []string) (Schedule, error) {
	if len(times) == 0 {
		return Schedule{}, fmt.Errorf("%w: no check-in times", ErrInvalidSessionConfig)
	}
	sorted := make([]string, 0, len(times))
	for _, raw := range times {
		hhmm, err := ParseTimeOfDay(raw)
		if err != nil {
			return Schedule{}, err
		}
		sorted = append(sorted, hhmm)
	}
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Schedule{}, fmt.Errorf("%w: duplicate check-in time %s", ErrInvalidSessionConfig, sorted[i])
		}
	}
	return Schedule{boundaries: sorted}, nil
}

// MustSchedule is NewSchedule for tests and constants.
func MustSchedule(times ...string) Schedule {
	s, err := NewSchedule(times)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseTimeOfDay normalises "H:MM" or "HH:MM" into zero-padded "HH:MM".
func ParseTimeOfDay(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: %q is not HH:MM", ErrInvalidSessionConfig, s)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || len(parts[1]) != 2 || h < 0 || h > 23 || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: %q is not HH:MM", ErrInvalidSessionConfig, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// Len is the number of sessions per day.
func (s Schedule) Len() int { return len(s.boundaries) }

// Boundaries returns a copy of the sorted boundary list.
func (s Schedule) Boundaries() []string {
	return append([]string(nil), s.boundaries...)
}

// Boundary returns the opening time of session n (1-based).
func (s Schedule) Boundary(n int) string {
	if n < 1 || n > len(s.boundaries) {
		return ""
	}
	return s.boundaries[n-1]
}

// SessionAt returns the session whose window contains timeOfDay, or 0 when
// timeOfDay precedes every boundary.
func (s Schedule) SessionAt(timeOfDay string) int {
	for i := len(s.boundaries) - 1; i >= 0; i-- {
		if timeOfDay >= s.boundaries[i] {
			return i + 1
		}
	}
	return 0
}

// NextBoundaryAfter returns the first boundary strictly after timeOfDay.
func (s Schedule) NextBoundaryAfter(timeOfDay string) (string, bool) {
	for _, b := range s.boundaries {
		if b > timeOfDay {
			return b, true
		}
	}
	return "", false
}

// SessionLabel names a session for display.
func SessionLabel(n int) string {
	switch n {
	case 1:
		return "Morning"
	case 2:
		return "Midday"
	case 3:
		return "Evening"
	default:
		return fmt.Sprintf("Session %d", n)
	}
}

// FormatTime12h renders "20:00" as "8:00 PM".
func FormatTime12h(hhmm string) string {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return hhmm
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, parts[1], ampm)
}
