package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/spf13/cobra"
)

func newTasksCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage your tasks",
	}

	cmd.AddCommand(newTasksListCommand(opts))
	cmd.AddCommand(newTasksAddCommand(opts))
	cmd.AddCommand(newTasksEditCommand(opts))
	cmd.AddCommand(newTasksCompleteCommand(opts, "done", "Mark a task as completed", true))
	cmd.AddCommand(newTasksCompleteCommand(opts, "undone", "Mark a task as not completed", false))
	cmd.AddCommand(newTasksRemoveCommand(opts))

	return cmd
}

func newTasksListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.api.ListTasks(cmd.Context())
			if err != nil {
				return explain(err)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			for _, t := range list {
				fmt.Fprintln(cmd.OutOrStdout(), t.String())
			}
			return nil
		},
	}
}

type addTaskFlags struct {
	DueDate   string
	DueTime   string
	Priority  string
	Completed bool
}

func newTasksAddCommand(opts *RootOptions) *cobra.Command {
	f := &addTaskFlags{}

	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task",
		Long: `Add a task.

Example:
  gophtodo tasks add --due-date 2025-01-01 --due-time 10:00 --priority high Buy milk`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.api.CreateTask(cmd.Context(), models.NewTask{
				Description: strings.Join(args, " "),
				DueDate:     f.DueDate,
				DueTime:     f.DueTime,
				Priority:    models.NormalizePriority(f.Priority),
				Completed:   f.Completed,
			})
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&f.DueDate, "due-date", "", "due date (required)")
	cmd.Flags().StringVar(&f.DueTime, "due-time", "", "due time (required)")
	cmd.Flags().StringVarP(&f.Priority, "priority", "p", "", "High, Medium or Low (default Medium)")
	cmd.Flags().BoolVar(&f.Completed, "done", false, "create the task already completed")
	_ = cmd.MarkFlagRequired("due-date")
	_ = cmd.MarkFlagRequired("due-time")

	return cmd
}

func newTasksEditCommand(opts *RootOptions) *cobra.Command {
	var description, dueDate, dueTime, priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.TaskPatch
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("due-date") {
				patch.DueDate = &dueDate
			}
			if cmd.Flags().Changed("due-time") {
				patch.DueTime = &dueTime
			}
			if cmd.Flags().Changed("priority") {
				p := models.NormalizePriority(priority)
				patch.Priority = &p
			}
			if patch.Empty() {
				return errors.New("nothing to change: pass at least one of --description, --due-date, --due-time, --priority")
			}

			task, err := opts.api.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "new due date")
	cmd.Flags().StringVar(&dueTime, "due-time", "", "new due time")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")

	return cmd
}

func newTasksCompleteCommand(opts *RootOptions, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.api.SetCompleted(cmd.Context(), args[0], completed)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.String())
			return nil
		},
	}
}

func newTasksRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.api.DeleteTask(cmd.Context(), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task deleted successfully")
			return nil
		},
	}
}
