package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodayCmd(a *App, userFlag func() string) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's sessions and habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}

			if watch {
				return a.runProgram(newWatchModel(watchSource{
					load: func(ctx context.Context) (*app.TodayResponse, error) {
						return a.CheckIns.Today(ctx, userID)
					},
					toggle: func(ctx context.Context, taskID string) (*app.RecordCompletionResponse, error) {
						return a.CheckIns.QuickToggle(ctx, userID, taskID)
					},
				}, interval))
			}

			resp, err := a.CheckIns.Today(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(resp))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the view open and refresh it; number keys toggle habits")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Refresh interval for --watch")

	return cmd
}
