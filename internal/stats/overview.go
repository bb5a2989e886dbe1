package stats

import (
	"github.com/alexanderramin/consistency/internal/calendar"
)

// HeatmapWeeks is how many Monday-start weeks the heatmap covers.
const HeatmapWeeks = 4

// Tier is a motivational band derived from a percentage.
type Tier string

const (
	TierPerfect Tier = "perfect"
	TierGreat   Tier = "great"
	TierGood    Tier = "good"
	TierLow     Tier = "low"
	TierNone    Tier = "none"
)

// TierFor maps a percentage onto its band.
func TierFor(pct int) Tier {
	switch {
	case pct >= 100:
		return TierPerfect
	case pct >= 75:
		return TierGreat
	case pct >= 50:
		return TierGood
	case pct > 0:
		return TierLow
	default:
		return TierNone
	}
}

// Cell is one day in the heatmap or month calendar.
type Cell struct {
	Date       calendar.Date
	Percentage int
	Today      bool
	// Future and BeforeStart cells carry no percentage.
	Future      bool
	BeforeStart bool
}

// Overview is everything the stats screen shows, evaluated for one day.
type Overview struct {
	Today            DayStats
	WeekPercentage   int
	MonthPercentage  int
	AllTimePct       int
	Tier             Tier
	Streak           StreakResult
	Tasks            []TaskStats
	TotalCheckIns    int
	PossibleCheckIns int
	Heatmap          [][]Cell
	Month            []Cell
	Countdown        calendar.CountdownView
}

// Overview evaluates the full stats screen. Ranges are clipped to
// [start, today]; nothing after today is ever counted.
func (a *Aggregator) Overview(start calendar.Date, goal *calendar.Date, today calendar.Date) Overview {
	allTime := calendar.DaysInRange(start, today)

	weekFrom, weekTo := calendar.WeekRange(today)
	week := calendar.Clip(calendar.DaysInRange(weekFrom, weekTo), start, today)

	monthFrom, monthTo := calendar.MonthRange(today)
	month := calendar.Clip(calendar.DaysInRange(monthFrom, monthTo), start, today)

	ov := Overview{
		Today:            a.DayStats(today),
		WeekPercentage:   a.RangePercentage(week),
		MonthPercentage:  a.RangePercentage(month),
		AllTimePct:       a.RangePercentage(allTime),
		Streak:           a.Streak(allTime),
		TotalCheckIns:    a.ledger.TotalCheckIns(),
		PossibleCheckIns: len(allTime) * a.sessionsPerDay,
		Heatmap:          a.Heatmap(start, today),
		Month:            a.cells(calendar.DaysInRange(monthFrom, monthTo), start, today),
		Countdown:        calendar.Countdown(start, goal, today),
	}
	ov.Tier = TierFor(ov.Today.Percentage)

	ov.Tasks = make([]TaskStats, 0, len(a.tasks))
	for _, task := range a.tasks {
		ts := a.TaskStats(task, allTime)
		if ts.ActiveDays == 0 {
			continue
		}
		ov.Tasks = append(ov.Tasks, ts)
	}
	return ov
}

// Heatmap returns HeatmapWeeks rows of seven cells, Monday first, ending
// with the week that contains today.
func (a *Aggregator) Heatmap(start, today calendar.Date) [][]Cell {
	monday, _ := calendar.WeekRange(today)
	first := monday.AddDays(-7 * (HeatmapWeeks - 1))

	rows := make([][]Cell, 0, HeatmapWeeks)
	for w := range HeatmapWeeks {
		from := first.AddDays(7 * w)
		rows = append(rows, a.cells(calendar.DaysInRange(from, from.AddDays(6)), start, today))
	}
	return rows
}

func (a *Aggregator) cells(dates []calendar.Date, start, today calendar.Date) []Cell {
	out := make([]Cell, 0, len(dates))
	for _, d := range dates {
		c := Cell{Date: d, Today: d == today}
		switch {
		case d.After(today):
			c.Future = true
		case d.Before(start):
			c.BeforeStart = true
		default:
			c.Percentage = a.DayStats(d).Percentage
		}
		out = append(out, c)
	}
	return out
}
