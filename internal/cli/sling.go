package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/usecase"
)

// newSlingCommand creates the sling command for dispatching a task to an agent.
func newSlingCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Engine string
		Role   string
	}

	cmd := &cobra.Command{
		Use:   "sling <task> <agent>",
		Short: "Dispatch a task to an agent",
		Long: `Dispatch a task to an agent.

Spawns a tmux worker session running the configured engine with the
task as its mission, then marks the task in_progress and binds the
agent to it. Re-running sling for the same agent is harmless while
its session is alive.

Examples:
  tt sling fix-auth alice
  tt sling fix-auth alice --engine claude --role reviewer`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SlingUseCase().Execute(cmd.Context(), usecase.SlingInput{
				TaskID: args[0],
				Agent:  args[1],
				Engine: opts.Engine,
				Role:   opts.Role,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Slung task %s to %s (engine: %s, session: %s)\n",
				out.Task.ID, out.Task.Assignee, out.Engine, out.SessionName)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Engine, "engine", "", "Engine to run (claude, opencode, gemini)")
	cmd.Flags().StringVar(&opts.Role, "role", "", "Role prompt to load (default: worker)")

	return cmd
}

// newDoneCommand creates the done command for closing a task.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task>",
		Short: "Close a task and tear down its worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DoneUseCase().Execute(cmd.Context(), usecase.DoneInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			if out.NukedAgent != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Closed task %s and nuked worker %s\n", out.Task.ID, out.NukedAgent)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Closed task %s\n", out.Task.ID)
			}
			return nil
		},
	}
}
