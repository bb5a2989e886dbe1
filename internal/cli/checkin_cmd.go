package cli

import (
	"fmt"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCheckInCmd(a *App, userFlag func() string) *cobra.Command {
	var taskRefs []string

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Check in for the open session",
		Long: "Record the open session in one go: every habit listed with --task is\n" +
			"done, the rest are not. On a terminal without --task, a checklist asks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}

			var done []string
			if len(taskRefs) == 0 && a.interactive() {
				today, err := a.CheckIns.Today(ctx, userID)
				if err != nil {
					return err
				}
				if !today.HasCurrent {
					return fmt.Errorf("no session is open yet; the first opens at %s",
						calendar.FormatTime12h(today.Sessions[0].Time))
				}
				if err := a.runForm(checkInForm(calendar.SessionLabel(today.CurrentSession), today.Tasks, &done)); err != nil {
					return err
				}
			} else {
				tasks, err := resolveTasks(ctx, a, userID, taskRefs)
				if err != nil {
					return err
				}
				for _, t := range tasks {
					done = append(done, t.ID)
				}
			}

			resp, err := a.CheckIns.SubmitCheckIn(ctx, app.SubmitCheckInRequest{
				UserID:           userID,
				CompletedTaskIDs: done,
			})
			if err != nil {
				return err
			}

			tasks, err := a.Tasks.List(ctx, userID, false)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCheckIn(resp, tasks))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&taskRefs, "task", "t", nil, "Habit done this session (repeatable)")

	return cmd
}
