// Package stats aggregates a ledger snapshot into consistency metrics.
//
// Every function here is a pure transform of its inputs. The caller decides
// which dates to evaluate; nothing reads the clock.
package stats

import (
	"sort"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/ledger"
)

// DayStats is the consistency of a single calendar day.
type DayStats struct {
	Date       calendar.Date
	Possible   int
	Counted    int
	Percentage int
}

// StreakResult holds consecutive-day runs with a nonzero percentage.
type StreakResult struct {
	Current int
	Longest int
}

// TaskStats is the consistency of one task across its active dates.
type TaskStats struct {
	Task           *domain.Task
	ActiveDays     int
	TotalPossible  int
	TotalCompleted int
	Percentage     int
}

// Aggregator evaluates stats for one snapshot of tasks and ledger.
// Tasks should include removed ones so their history still counts.
type Aggregator struct {
	tasks          []*domain.Task
	ledger         *ledger.Ledger
	sessionsPerDay int
	loc            *time.Location
}

func NewAggregator(tasks []*domain.Task, l *ledger.Ledger, sessionsPerDay int, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{tasks: tasks, ledger: l, sessionsPerDay: sessionsPerDay, loc: loc}
}

// Percent rounds 100*counted/possible half up, defining 0/0 as 0.
func Percent(counted, possible int) int {
	if possible <= 0 {
		return 0
	}
	return (200*counted + possible) / (2 * possible)
}

// countedFor caps a task's completions on d at its per-day requirement.
func (a *Aggregator) countedFor(task *domain.Task, d calendar.Date) (counted, required int) {
	required = task.RequiredCount(a.sessionsPerDay)
	return min(a.ledger.CompletedCount(d, task.ID), required), required
}

// DayStats sums capped completions over the tasks active on d.
func (a *Aggregator) DayStats(d calendar.Date) DayStats {
	ds := DayStats{Date: d}
	for _, task := range a.tasks {
		if !task.IsActiveOn(d, a.loc) {
			continue
		}
		counted, required := a.countedFor(task, d)
		ds.Possible += required
		ds.Counted += counted
	}
	ds.Percentage = Percent(ds.Counted, ds.Possible)
	return ds
}

// RangePercentage is one ratio over the summed counts of every date, not a
// mean of daily percentages, so days without active tasks carry no weight.
func (a *Aggregator) RangePercentage(dates []calendar.Date) int {
	var counted, possible int
	for _, d := range dates {
		ds := a.DayStats(d)
		counted += ds.Counted
		possible += ds.Possible
	}
	return Percent(counted, possible)
}

// Streak walks dates from most recent to oldest in a single pass. A day
// counts when its percentage is above zero. Current is frozen at the first
// break; Longest is the longest run anywhere in dates.
func (a *Aggregator) Streak(dates []calendar.Date) StreakResult {
	desc := append([]calendar.Date(nil), dates...)
	sort.Slice(desc, func(i, j int) bool { return desc[i].After(desc[j]) })

	var res StreakResult
	run := 0
	broken := false
	for _, d := range desc {
		if a.DayStats(d).Percentage > 0 {
			run++
			res.Longest = max(res.Longest, run)
			continue
		}
		if !broken {
			res.Current = run
			broken = true
		}
		run = 0
	}
	if !broken {
		res.Current = run
	}
	return res
}

// TaskStats evaluates task over the dates on which it was active.
func (a *Aggregator) TaskStats(task *domain.Task, dates []calendar.Date) TaskStats {
	ts := TaskStats{Task: task}
	for _, d := range dates {
		if !task.IsActiveOn(d, a.loc) {
			continue
		}
		counted, required := a.countedFor(task, d)
		ts.ActiveDays++
		ts.TotalPossible += required
		ts.TotalCompleted += counted
	}
	ts.Percentage = Percent(ts.TotalCompleted, ts.TotalPossible)
	return ts
}
