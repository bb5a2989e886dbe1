package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/stats"
)

const statsBarWidth = 12

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// FormatStats renders the stats screen.
func FormatStats(resp *app.StatsResponse) string {
	ov := resp.Overview
	var b strings.Builder

	b.WriteString(Header("Consistency") + "\n")
	rows := [][]string{
		{"Today", RenderProgress(ov.Today.Percentage, statsBarWidth)},
		{"This week", RenderProgress(ov.WeekPercentage, statsBarWidth)},
		{"This month", RenderProgress(ov.MonthPercentage, statsBarWidth)},
		{"All time", RenderProgress(ov.AllTimePct, statsBarWidth)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-11s %s\n", r[0], r[1]))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Streak: %s  %s\n",
		Bold(fmt.Sprintf("%d %s", ov.Streak.Current, plural(ov.Streak.Current, "day", "days"))),
		Dim(fmt.Sprintf("(longest %d)", ov.Streak.Longest))))
	b.WriteString(fmt.Sprintf("Check-ins: %d of %d sessions\n", ov.TotalCheckIns, ov.PossibleCheckIns))

	if cd := ov.Countdown; cd.HasGoal {
		b.WriteString(fmt.Sprintf("Goal: %s %s  %s\n",
			resp.User.GoalDate.FormatShort(),
			Dim(fmt.Sprintf("%d %s left", cd.DaysLeft, plural(cd.DaysLeft, "day", "days"))),
			RenderProgress(cd.ProgressPct, statsBarWidth)))
	}
	b.WriteString("\n")

	b.WriteString(Header("Last 4 weeks") + "\n")
	b.WriteString(FormatHeatmap(ov.Heatmap))
	b.WriteString("\n")

	if len(ov.Month) > 0 {
		b.WriteString(Header(ov.Month[0].Date.Time().Format("January 2006")) + "\n")
		b.WriteString(FormatMonth(ov.Month))
		b.WriteString("\n")
	}

	if len(ov.Tasks) > 0 {
		b.WriteString(Header("Tasks") + "\n")
		b.WriteString(FormatTaskStats(ov.Tasks))
	}

	return RenderBox("Stats", b.String())
}

// FormatHeatmap renders Monday-first week rows, one glyph per day.
func FormatHeatmap(weeks [][]stats.Cell) string {
	var b strings.Builder
	b.WriteString(Dim(strings.Join(weekdayHeader, " ")) + "\n")
	for _, week := range weeks {
		glyphs := make([]string, 0, len(week))
		for _, c := range week {
			glyphs = append(glyphs, cellGlyph(c))
		}
		b.WriteString(strings.Join(glyphs, " ") + "\n")
	}
	b.WriteString(Dim("██ 100  ▓▓ 75+  ▒▒ 50+  ░░ 1+  ·· 0") + "\n")
	return b.String()
}

// FormatMonth renders a month calendar of day numbers colored by tier.
func FormatMonth(days []stats.Cell) string {
	var b strings.Builder
	b.WriteString(Dim(strings.Join(weekdayHeader, " ")) + "\n")

	offset := (int(days[0].Date.Weekday()) + 6) % 7
	line := make([]string, 0, 7)
	for range offset {
		line = append(line, "  ")
	}
	for _, c := range days {
		num := fmt.Sprintf("%2d", c.Date.Time().Day())
		switch {
		case c.Future, c.BeforeStart:
			num = Dim(num)
		default:
			num = TierStyle(stats.TierFor(c.Percentage)).Render(num)
		}
		if c.Today {
			num = StyleBold.Underline(true).Render(fmt.Sprintf("%2d", c.Date.Time().Day()))
		}
		line = append(line, num)
		if len(line) == 7 {
			b.WriteString(strings.Join(line, " ") + "\n")
			line = line[:0]
		}
	}
	if len(line) > 0 {
		b.WriteString(strings.Join(line, " ") + "\n")
	}
	return b.String()
}

// FormatTaskStats renders the per-task consistency table.
func FormatTaskStats(ts []stats.TaskStats) string {
	rows := make([][]string, 0, len(ts))
	for _, s := range ts {
		name := TaskLabel(s.Task)
		if s.Task.IsRemoved() {
			name = Dim(name + " (removed)")
		}
		rows = append(rows, []string{
			name,
			CadenceBadge(s.Task.Cadence),
			fmt.Sprintf("%d", s.ActiveDays),
			fmt.Sprintf("%d/%d", s.TotalCompleted, s.TotalPossible),
			Percentage(s.Percentage),
		})
	}
	return RenderTable([]string{"TASK", "CADENCE", "DAYS", "DONE", "RATE"}, rows)
}

func cellGlyph(c stats.Cell) string {
	switch {
	case c.Future:
		return "  "
	case c.BeforeStart:
		return Dim("--")
	}
	var g string
	switch stats.TierFor(c.Percentage) {
	case stats.TierPerfect:
		g = "██"
	case stats.TierGreat:
		g = "▓▓"
	case stats.TierGood:
		g = "▒▒"
	case stats.TierLow:
		g = "░░"
	default:
		g = "··"
	}
	style := TierStyle(stats.TierFor(c.Percentage))
	if c.Today {
		style = style.Underline(true)
	}
	return style.Render(g)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
