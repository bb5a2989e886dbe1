package cli

import (
	"fmt"

	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *App, userFlag func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show consistency percentages, streaks and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}
			resp, err := a.Stats.Overview(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(resp))
			return nil
		},
	}
}
