package cli

import (
	"strings"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and environment hooks used by CLI commands.
type App struct {
	Users    service.UserService
	Tasks    service.TaskService
	CheckIns service.CheckInService
	Stats    service.StatsService

	// UserID is the configured profile, used when --user is not given.
	UserID string
	// DefaultTimezone and DefaultCheckInTimes seed `init`.
	DefaultTimezone     string
	DefaultCheckInTimes []string

	// RememberUser persists the profile created by `init`. Nil skips it.
	RememberUser func(userID string) error
	// IsInteractive reports whether forms may be shown.
	IsInteractive func() bool
	RunForm       func(*huh.Form) error
	RunProgram    func(tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (a *App) defaultCheckInTimes() []string {
	if len(a.DefaultCheckInTimes) > 0 {
		return a.DefaultCheckInTimes
	}
	return calendar.DefaultCheckInTimes
}

// NewRootCmd creates the top-level "consistency" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var userFlag string

	root := &cobra.Command{
		Use:           "consistency",
		Short:         "Daily habit check-ins and consistency stats",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&userFlag, "user", "", "Profile id, id prefix or name (default from config)")
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	user := func() string { return userFlag }
	root.AddCommand(
		newInitCmd(app),
		newSettingsCmd(app, user),
		newTaskCmd(app, user),
		newTodayCmd(app, user),
		newDoneCmd(app, user),
		newCheckInCmd(app, user),
		newStatsCmd(app, user),
	)

	return root
}

// normalizeFlagName accepts snake_case spellings of dashed flags, so
// --check_in_times and --check-in-times are the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
