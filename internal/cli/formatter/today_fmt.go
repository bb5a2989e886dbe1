package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/session"
)

const todayBarWidth = 20

// FormatToday renders the daily dashboard: session timeline, task
// checklist and today's percentage.
func FormatToday(resp *app.TodayResponse) string {
	var b strings.Builder

	b.WriteString(Bold(resp.Moment.Date.FormatFull()))
	b.WriteString(Dim(fmt.Sprintf("  %s %s", calendar.FormatTime12h(resp.Moment.TimeOfDay), resp.User.Timezone)))
	b.WriteString("\n")
	b.WriteString(sessionLine(resp))
	b.WriteString("\n\n")

	b.WriteString(Header("Sessions") + "\n")
	b.WriteString(FormatTimeline(resp.Sessions))
	b.WriteString("\n")

	b.WriteString(Header("Tasks") + "\n")
	if len(resp.Tasks) == 0 {
		b.WriteString(Dim("No tasks yet. Add one with `consistency task add <name>`.") + "\n")
	}
	for i, p := range resp.Tasks {
		b.WriteString(FormatTaskProgress(i+1, p) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Today %s  %s\n", RenderProgress(resp.Day.Percentage, todayBarWidth),
		Dim(fmt.Sprintf("%d/%d", resp.Day.Counted, resp.Day.Possible))))
	if resp.AllSessionsDone {
		b.WriteString(StyleGreen.Render("All sessions checked in. See you tomorrow!") + "\n")
	}

	return RenderBox("Today", b.String())
}

func sessionLine(resp *app.TodayResponse) string {
	var parts []string
	if resp.HasCurrent {
		parts = append(parts, StyleHeader.Render(calendar.SessionLabel(resp.CurrentSession)+" session open"))
	} else {
		parts = append(parts, Dim("No session open yet"))
	}
	if resp.HasNext {
		parts = append(parts, Dim("next at "+calendar.FormatTime12h(resp.NextBoundary)))
	}
	return strings.Join(parts, Dim(" · "))
}

// FormatTimeline renders one line per session slot.
func FormatTimeline(slots []session.Slot) string {
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, []string{
			s.Label,
			calendar.FormatTime12h(s.Time),
			SessionIndicator(s.Status),
		})
	}
	return RenderTable([]string{"SESSION", "OPENS", "STATUS"}, rows)
}

// FormatTaskProgress renders one checklist line. n is the position used by
// `done` and the live view's number keys.
func FormatTaskProgress(n int, p session.TaskProgress) string {
	count := ""
	if p.Task.Cadence == domain.CadencePerSession {
		count = Dim(fmt.Sprintf(" %d/%d", p.Completed, p.Required))
	}
	return fmt.Sprintf("%s %s %s%s", Dim(fmt.Sprintf("%d.", n)), Checkbox(p.Done()), TaskLabel(p.Task), count)
}

// FormatRecord confirms a single recorded completion.
func FormatRecord(resp *app.RecordCompletionResponse) string {
	verb := "done"
	mark := StyleGreen.Render("✔")
	if !resp.Completion.Completed {
		verb = "not done"
		mark = StyleYellow.Render("↺")
	}
	line := fmt.Sprintf("%s %s marked %s for the %s session", mark, Bold(TaskLabel(resp.Task)), verb,
		calendar.SessionLabel(resp.CheckIn.SessionNumber))
	if resp.CreatedCheckIn {
		line += Dim(" (checked in)")
	}
	return fmt.Sprintf("%s\nToday: %s\n", line, Percentage(resp.Day.Percentage))
}

// FormatCheckIn confirms a guided check-in. tasks resolves names.
func FormatCheckIn(resp *app.SubmitCheckInResponse, tasks []*domain.Task) string {
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var b strings.Builder
	done := 0
	for _, c := range resp.Completions {
		if c.Completed {
			done++
		}
		name := c.TaskID
		if t, ok := byID[c.TaskID]; ok {
			name = TaskLabel(t)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", Checkbox(c.Completed), name))
	}

	header := fmt.Sprintf("%s Checked in for the %s session: %d/%d tasks",
		StyleGreen.Render("✔"), calendar.SessionLabel(resp.CheckIn.SessionNumber), done, len(resp.Completions))
	return fmt.Sprintf("%s\n%sToday: %s\n", header, b.String(), Percentage(resp.Day.Percentage))
}
