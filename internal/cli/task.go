package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/usecase"
)

// newTaskCommand creates the task command with its subcommands.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskListCommand(c),
		newTaskDeleteCommand(c),
	)

	return cmd
}

func newTaskAddCommand(c *app.Container) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "add <id> <title>",
		Short: "Create a task",
		Long: `Create a task with status 'open'.

Examples:
  # Create a single task
  tt task add fix-auth "Fix the login flow"

  # Bulk-create from a YAML file (a list of {id, title})
  tt task add --from tasks.yaml`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{Path: from})
				if err != nil {
					return err
				}
				for _, t := range out.Created {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", t.ID, t.Title)
				}
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("expected <id> <title> (or --from <file>)")
			}
			task, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{ID: args[0], Title: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Create tasks from a YAML file")

	return cmd
}

func newTaskListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.ListTasksUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks. Create one with 'tt task add'.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
}

func newTaskDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.DeleteTaskUseCase().Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tASSIGNEE\tENGINE\tTITLE")
	for _, t := range tasks {
		assignee := t.Assignee
		if assignee == "" {
			assignee = "-"
		}
		engine := t.Engine
		if engine == "" {
			engine = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status.Display(), assignee, engine, t.Title)
	}
	_ = tw.Flush()
}
