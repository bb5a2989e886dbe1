package cli

import (
	"fmt"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDoneCmd(a *App, userFlag func() string) *cobra.Command {
	var state bool

	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Tick a habit off for the current session",
		Long: "Record a habit as done. Without --state this toggles: a habit already\n" +
			"done today is unmarked, and a per-session habit that is partly done\n" +
			"fills its earliest missed session. --state=false unmarks explicitly.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}
			task, err := resolveTask(ctx, a, userID, args[0])
			if err != nil {
				return err
			}

			var resp *app.RecordCompletionResponse
			if cmd.Flags().Changed("state") {
				resp, err = a.CheckIns.RecordCompletion(ctx, app.RecordCompletionRequest{
					UserID:    userID,
					TaskID:    task.ID,
					Completed: state,
				})
			} else {
				resp, err = a.CheckIns.QuickToggle(ctx, userID, task.ID)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecord(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&state, "state", true, "Record this state instead of toggling")

	return cmd
}
