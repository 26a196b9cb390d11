package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/usecase"
)

// newNudgeCommand creates the nudge command.
func newNudgeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "nudge <agent> <message...>",
		Short: "Flash a message at a live agent, or mail it if the agent is down",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NudgeUseCase().Execute(cmd.Context(), usecase.NudgeInput{
				Agent:   args[0],
				Message: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			if out.Delivered {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nudged %s\n", args[0])
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is not running; nudge delivered to inbox\n", args[0])
			}
			return nil
		},
	}
}

// newPeekCommand creates the peek command.
func newPeekCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "peek <agent>",
		Short: "Show the tail of an agent's active task log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.PeekUseCase().Execute(cmd.Context(), usecase.PeekInput{
				Agent: args[0],
				Lines: lines,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "=== %s (task %s) ===\n", out.LogPath, out.TaskID)
			for _, line := range out.Lines {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of trailing lines to show")

	return cmd
}
