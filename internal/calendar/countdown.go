package calendar

import "math"

// CountdownView tracks progress from a start date toward an optional goal.
type CountdownView struct {
	DaysLeft       int
	DaysSinceStart int
	TotalDays      int
	ProgressPct    int
	HasGoal        bool
}

// Countdown computes days remaining until goal and the share of the
// start..goal span already elapsed. Negative spans clamp to zero.
func Countdown(start Date, goal *Date, today Date) CountdownView {
	v := CountdownView{DaysSinceStart: max(0, DaysBetween(start, today))}
	if goal == nil {
		return v
	}
	v.HasGoal = true
	v.DaysLeft = max(0, DaysBetween(today, *goal))
	v.TotalDays = v.DaysLeft + v.DaysSinceStart
	if v.TotalDays > 0 {
		v.ProgressPct = int(math.Floor(float64(v.DaysSinceStart)/float64(v.TotalDays)*100 + 0.5))
	}
	return v
}
