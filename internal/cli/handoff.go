package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
)

// newHandoffCommand creates the handoff command.
// Handoff is advisory only: it prints guidance for transferring a session
// to a fresh agent but does not move any state itself.
func newHandoffCommand(_ *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Session transfer hints",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new",
			Short: "Begin a session transfer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "HANDOFF: Initiating session transfer...")
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Current session context saved. Run 'tt sling' with a new agent name to resume.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show pending transfers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "HANDOFF STATUS: No pending transfers.")
				return nil
			},
		},
	)

	return cmd
}
