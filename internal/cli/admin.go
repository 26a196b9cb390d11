package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
)

// newAdminCommand creates the admin command with its subcommands.
func newAdminCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the overseer session",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start the overseer session",
			Long: `Start the overseer session.

Launches a single agent in the hq-admin tmux session, seeded with the
admin prompt and the current open-task backlog.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out, err := c.AdminStartUseCase().Execute(cmd.Context(), struct{}{})
				if err != nil {
					return err
				}
				if out.AlreadyRunning {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Overseer already running (session %s)\n", out.SessionName)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Overseer started (session %s). Attach with 'tt admin attach'.\n", out.SessionName)
				return nil
			},
		},
		&cobra.Command{
			Use:   "attach",
			Short: "Attach to the overseer session",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return c.Sessions.Attach(domain.AdminSessionName)
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the overseer session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c.Sessions.Kill(domain.AdminSessionName)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Overseer stopped.")
				return nil
			},
		},
	)

	return cmd
}
