package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/session"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme using the formatter's Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// checkInForm asks which of today's tasks were done this session. Tasks
// already satisfied today start selected.
func checkInForm(sessionLabel string, tasks []session.TaskProgress, selected *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(tasks))
	for _, p := range tasks {
		options = append(options, huh.NewOption(formatter.TaskLabel(p.Task), p.Task.ID).Selected(p.Done()))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(sessionLabel+" check-in").
				Description("Space to toggle, enter to submit").
				Options(options...).
				Value(selected),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// taskForm collects a new task's name, icon and cadence.
func taskForm(name, icon *string, cadence *domain.Cadence) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("Drink water").
				Value(name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Icon (optional)").
				Placeholder("💧").
				Value(icon),
			huh.NewSelect[domain.Cadence]().
				Title("How often").
				Options(
					huh.NewOption("Once a day", domain.CadenceDaily),
					huh.NewOption("Every check-in session", domain.CadencePerSession),
				).
				Value(cadence),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// profileForm collects the settings `init` needs.
func profileForm(name, timezone, times *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Value(name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, e.g. Europe/Berlin").
				Value(timezone).
				Validate(validateTimezone),
			huh.NewInput().
				Title("Check-in times").
				Description("Comma-separated HH:MM").
				Value(times).
				Validate(validateTimeList),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateTimezone(s string) error {
	if _, err := calendar.LoadLocation(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("unknown timezone")
	}
	return nil
}

func validateTimeList(s string) error {
	_, err := calendar.NewSchedule(splitList(s))
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseOptionalDate parses a YYYY-MM-DD flag value; "" yields nil.
func parseOptionalDate(s string) (*calendar.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%q: use YYYY-MM-DD format", s)
	}
	return &d, nil
}
