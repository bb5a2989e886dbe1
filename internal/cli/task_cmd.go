package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/cli/formatter"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *App, userFlag func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tracked habits",
	}

	cmd.AddCommand(
		newTaskAddCmd(a, userFlag),
		newTaskListCmd(a, userFlag),
		newTaskEditCmd(a, userFlag),
		newTaskRemoveCmd(a, userFlag),
		newTaskReorderCmd(a, userFlag),
	)

	return cmd
}

func newTaskAddCmd(a *App, userFlag func() string) *cobra.Command {
	var icon, cadenceFlag string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			cadence, err := domain.ParseCadence(cadenceFlag)
			if err != nil {
				return err
			}
			if name == "" {
				if !a.interactive() {
					return fmt.Errorf("task name is required")
				}
				if err := a.runForm(taskForm(&name, &icon, &cadence)); err != nil {
					return err
				}
			}

			task, err := a.Tasks.Create(ctx, app.CreateTaskRequest{
				UserID:  userID,
				Name:    name,
				Icon:    icon,
				Cadence: cadence,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", formatter.Bold(formatter.TaskLabel(task)), formatter.CadenceBadge(task.Cadence))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Emoji or short symbol shown before the name")
	cmd.Flags().StringVar(&cadenceFlag, "cadence", "daily", "daily or per_session")

	return cmd
}

func newTaskListCmd(a *App, userFlag func() string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}
			tasks, err := a.Tasks.List(ctx, userID, all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include removed habits")

	return cmd
}

func newTaskEditCmd(a *App, userFlag func() string) *cobra.Command {
	var name, icon, cadenceFlag string

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Rename a habit or change its icon or cadence",
		Long: "Edit a habit. A cadence change also applies to past days when stats\n" +
			"are computed.",
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

			var patch domain.TaskPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("icon") {
				patch.Icon = &icon
			}
			if cmd.Flags().Changed("cadence") {
				c, err := domain.ParseCadence(cadenceFlag)
				if err != nil {
					return err
				}
				patch.Cadence = &c
			}
			if patch == (domain.TaskPatch{}) {
				return fmt.Errorf("nothing to change; pass --name, --icon or --cadence")
			}

			updated, err := a.Tasks.Update(ctx, task.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", formatter.Bold(formatter.TaskLabel(updated)), formatter.CadenceBadge(updated.Cadence))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon (empty clears it)")
	cmd.Flags().StringVar(&cadenceFlag, "cadence", "", "daily or per_session")

	return cmd
}

func newTaskRemoveCmd(a *App, userFlag func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <task>",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a habit; its history is kept",
		Args:    cobra.ExactArgs(1),
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
			if err := a.Tasks.Remove(ctx, task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s. Past check-ins still count.\n", formatter.Bold(formatter.TaskLabel(task)))
			return nil
		},
	}
	return cmd
}

func newTaskReorderCmd(a *App, userFlag func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <task>...",
		Short: "Set the display order; list every habit once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, a, userFlag())
			if err != nil {
				return err
			}
			tasks, err := resolveTasks(ctx, a, userID, args)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(tasks))
			for _, t := range tasks {
				ids = append(ids, t.ID)
			}
			if err := a.Tasks.Reorder(ctx, userID, ids); err != nil {
				return err
			}

			ordered, err := a.Tasks.List(ctx, userID, false)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(ordered))
			return nil
		},
	}
	return cmd
}
