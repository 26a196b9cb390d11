package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/usecase"
)

// newWorkerCommand creates the worker command with its subcommands.
func newWorkerCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage worker sessions",
	}

	cmd.AddCommand(
		newWorkerSpawnCommand(c),
		newWorkerNukeCommand(c),
	)

	return cmd
}

func newWorkerSpawnCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Engine string
		Role   string
	}

	cmd := &cobra.Command{
		Use:   "spawn <task> <agent>",
		Short: "Spawn a worker session without touching task state",
		Long: `Spawn a worker session without touching task state.

Unlike sling, this does not assign the task or change its status.
Useful for re-launching an agent whose session died.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SpawnWorkerUseCase().Execute(cmd.Context(), usecase.SpawnWorkerInput{
				TaskID: args[0],
				Agent:  args[1],
				Engine: opts.Engine,
				Role:   opts.Role,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Spawned worker %s on task %s (session: %s)\n",
				args[1], args[0], out.SessionName)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Engine, "engine", "", "Engine to run (claude, opencode, gemini)")
	cmd.Flags().StringVar(&opts.Role, "role", "", "Role prompt to load (default: worker)")

	return cmd
}

func newWorkerNukeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "nuke <agent>",
		Short: "Kill a worker session and remove its scratch directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.NukeWorkerUseCase().Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nuked worker %s (session %s)\n",
				args[0], domain.WorkerSessionName(args[0]))
			return nil
		},
	}
}
