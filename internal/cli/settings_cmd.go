package cli

import (
	"fmt"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *App, userFlag func() string) *cobra.Command {
	var name, timezone, goalDate string
	var times []string
	var clearGoal, list bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change profile settings",
		Long: "Show the active profile. Any flag given changes that setting. New\n" +
			"check-in times apply to past days too: sessions are numbered by position.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if list {
				users, err := a.Users.List(ctx)
				if err != nil {
					return err
				}
				active, _ := resolveUserID(ctx, a, userFlag())
				fmt.Fprint(out, formatter.FormatUserList(users, active))
				return nil
			}

			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("timezone") && !flags.Changed("check-in-times") &&
				!flags.Changed("goal-date") && !clearGoal {
				u, err := a.Users.Get(ctx, userID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatSettings(u))
				return nil
			}

			req := app.UpdateUserRequest{UserID: userID, CheckInTimes: times, ClearGoal: clearGoal}
			if flags.Changed("name") {
				req.DisplayName = &name
			}
			if flags.Changed("timezone") {
				req.Timezone = &timezone
			}
			if flags.Changed("goal-date") {
				goal, err := parseOptionalDate(goalDate)
				if err != nil {
					return fmt.Errorf("--goal-date %w", err)
				}
				req.GoalDate = goal
			}

			u, err := a.Users.Update(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatSettings(u))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&timezone, "timezone", "", "New IANA timezone")
	cmd.Flags().StringSliceVar(&times, "check-in-times", nil, "New session boundaries as HH:MM, comma-separated")
	cmd.Flags().StringVar(&goalDate, "goal-date", "", "Goal date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&clearGoal, "clear-goal", false, "Remove the goal date")
	cmd.Flags().BoolVar(&list, "list", false, "List every profile")
	cmd.MarkFlagsMutuallyExclusive("goal-date", "clear-goal")

	return cmd
}
