package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/monitor"
)

// newMonitorCommand creates the monitor command.
func newMonitorCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the completion monitor",
	}

	var interval int

	start := &cobra.Command{
		Use:   "start",
		Short: "Watch task logs and close finished tasks",
		Long: `Watch task logs and close finished tasks.

Scans every task log for the completion marker and closes the matching
task when it appears. Runs in the foreground until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mon := c.NewMonitor()
			if cmd.Flags().Changed("interval") {
				mon = monitor.New(c.Tasks, c.Logger, c.WorkDir, time.Duration(interval)*time.Second)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Monitor running. Ctrl-C to stop.")
			return mon.Run(ctx)
		},
	}
	start.Flags().IntVar(&interval, "interval", 0, "Poll interval in seconds (default: from config)")
	cmd.AddCommand(start)

	return cmd
}
