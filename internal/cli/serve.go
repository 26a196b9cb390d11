package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/server"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == 0 {
				port = c.AppConfig.Server.Port
			}

			srv := server.New(server.Deps{
				Tasks:      c.Tasks,
				Audit:      c.Audit,
				Sessions:   c.Sessions,
				Logger:     c.Logger,
				WorkDir:    c.WorkDir,
				AddTask:    c.AddTaskUseCase(),
				DeleteTask: c.DeleteTaskUseCase(),
				Sling:      c.SlingUseCase(),
				Done:       c.DoneUseCase(),
				Nudge:      c.NudgeUseCase(),
				Beads:      c.BeadsUseCase(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://localhost:%d\n", port)
			return srv.ListenAndServe(ctx, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")

	return cmd
}
