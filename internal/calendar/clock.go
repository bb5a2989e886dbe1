package calendar

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // zone rules must not depend on the host
)

// Clock supplies the current instant. Services sample it once per operation.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// LoadLocation resolves an IANA zone name. Offsets are deliberately not
// accepted: DST shifts a user's local midnight and window boundaries.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("timezone is required")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// Moment is one sampled instant resolved in a user's timezone. Every
// computation within a logical operation reads from the same Moment so a
// session boundary cannot be crossed mid-calculation.
type Moment struct {
	Instant   time.Time
	Location  *time.Location
	Date      Date
	TimeOfDay string
}

// At resolves now in loc.
func At(now time.Time, loc *time.Location) Moment {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return Moment{
		Instant:   now,
		Location:  loc,
		Date:      Date(local.Format(DateLayout)),
		TimeOfDay: local.Format("15:04"),
	}
}

// Today returns the user-local calendar date for clock's current instant.
func Today(clock Clock, loc *time.Location) Date {
	return At(clock.Now(), loc).Date
}

// CurrentTimeOfDay returns the user-local "HH:MM" for clock's current instant.
func CurrentTimeOfDay(clock Clock, loc *time.Location) string {
	return At(clock.Now(), loc).TimeOfDay
}

// CurrentSession returns the session open at m, or false before the first
// window of the day. A time equal to a boundary belongs to that boundary's
// session.
func CurrentSession(s Schedule, m Moment) (int, bool) {
	n := s.SessionAt(m.TimeOfDay)
	return n, n > 0
}

// NextSessionBoundary returns the first boundary strictly after m, or false
// once every window of the day has opened.
func NextSessionBoundary(s Schedule, m Moment) (string, bool) {
	return s.NextBoundaryAfter(m.TimeOfDay)
}
