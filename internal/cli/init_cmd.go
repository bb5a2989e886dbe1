package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newInitCmd(a *App) *cobra.Command {
	var name, timezone, startDate, goalDate string
	var times []string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create your profile",
		Long: "Create a profile with a timezone and check-in times. Without --name on a\n" +
			"terminal, a short form asks for the details.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if name == "" {
				if !a.interactive() {
					return fmt.Errorf("--name is required")
				}
				if timezone == "" {
					timezone = a.DefaultTimezone
				}
				joined := strings.Join(a.defaultCheckInTimes(), ", ")
				if len(times) > 0 {
					joined = strings.Join(times, ", ")
				}
				if err := a.runForm(profileForm(&name, &timezone, &joined)); err != nil {
					return err
				}
				times = splitList(joined)
			}

			start, err := parseOptionalDate(startDate)
			if err != nil {
				return fmt.Errorf("--start-date %w", err)
			}
			goal, err := parseOptionalDate(goalDate)
			if err != nil {
				return fmt.Errorf("--goal-date %w", err)
			}
			if timezone == "" {
				timezone = a.DefaultTimezone
			}
			if len(times) == 0 {
				times = a.defaultCheckInTimes()
			}

			u, err := a.Users.Create(ctx, app.CreateUserRequest{
				DisplayName:  name,
				Timezone:     timezone,
				CheckInTimes: times,
				StartDate:    start,
				GoalDate:     goal,
			})
			if err != nil {
				return err
			}
			if a.RememberUser != nil {
				if err := a.RememberUser(u.ID); err != nil {
					return fmt.Errorf("profile created but not saved as default: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSettings(u))
			fmt.Fprintln(out, formatter.Dim("Next: add a habit with `consistency task add <name>`."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default from config, else UTC)")
	cmd.Flags().StringSliceVar(&times, "check-in-times", nil, "Session boundaries as HH:MM, comma-separated")
	cmd.Flags().StringVar(&startDate, "start-date", "", "First tracked day, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&goalDate, "goal-date", "", "Optional goal date, YYYY-MM-DD")

	return cmd
}
