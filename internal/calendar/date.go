package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the storage and display layout of a calendar day.
const DateLayout = "2006-01-02"

// Date is a civil calendar day in YYYY-MM-DD form. The zero-padded layout
// makes string comparison equivalent to chronological comparison.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t.Format(DateLayout)), nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of instant t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date(t.In(loc).Format(DateLayout))
}

func (d Date) String() string { return string(d) }

// Time returns midnight UTC of the day. Only used for day arithmetic.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(DateLayout))
}

func (d Date) Before(o Date) bool { return d < o }
func (d Date) After(o Date) bool  { return d > o }

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// DaysBetween returns the number of days from a to b (negative if b is earlier).
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// DaysInRange returns every day from start to end inclusive, ascending.
// An inverted range yields nil.
func DaysInRange(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}
	days := make([]Date, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// WeekRange returns the Monday..Sunday week containing d.
func WeekRange(d Date) (Date, Date) {
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDays(-offset)
	return start, start.AddDays(6)
}

// MonthRange returns the first and last day of d's month.
func MonthRange(d Date) (Date, Date) {
	t := d.Time()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Date(first.Format(DateLayout)), Date(last.Format(DateLayout))
}

// Clip keeps the days of ds that fall within [from, to].
func Clip(ds []Date, from, to Date) []Date {
	var out []Date
	for _, d := range ds {
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FormatShort renders a day as "Jan 2".
func (d Date) FormatShort() string {
	return d.Time().Format("Jan 2")
}

// FormatFull renders a day as "Monday, January 2, 2006".
func (d Date) FormatFull() string {
	return d.Time().Format("Monday, January 2, 2006")
}
