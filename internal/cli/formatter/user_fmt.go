package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
)

// FormatSettings renders a profile's settings.
func FormatSettings(u *domain.User) string {
	var b strings.Builder

	times := make([]string, 0, len(u.CheckInTimes))
	for i, t := range u.CheckInTimes {
		times = append(times, fmt.Sprintf("%s %s", calendar.SessionLabel(i+1), calendar.FormatTime12h(t)))
	}
	goal := Dim("none")
	if u.GoalDate != nil {
		goal = u.GoalDate.FormatFull()
	}

	rows := [][]string{
		{"Name", Bold(u.DisplayName)},
		{"ID", TruncID(u.ID)},
		{"Timezone", u.Timezone},
		{"Check-ins", strings.Join(times, Dim(" · "))},
		{"Started", u.StartDate.FormatFull()},
		{"Goal", goal},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-10s %s\n", r[0], r[1]))
	}
	return RenderBox("Settings", b.String())
}

// FormatUserList renders every profile, marking the active one.
func FormatUserList(users []*domain.User, activeID string) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		marker := " "
		if u.ID == activeID {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{marker, u.DisplayName, u.Timezone, TruncID(u.ID)})
	}
	return RenderTable([]string{"", "NAME", "TIMEZONE", "ID"}, rows)
}
