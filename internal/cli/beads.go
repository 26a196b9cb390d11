package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
)

var (
	cockpitBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 1).
			Width(76)
	cockpitTitle   = lipgloss.NewStyle().Bold(true)
	cockpitSection = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cockpitDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// newBeadsCommand creates the beads command: the one-screen town cockpit.
func newBeadsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beads",
		Short: "Town cockpit",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the system pulse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.BeadsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(cockpitTitle.Render("THINK-TODO COCKPIT (SYSTEM PULSE)"))
			b.WriteString("\n\n")

			b.WriteString(cockpitSection.Render("[TASKS]"))
			b.WriteString(fmt.Sprintf(" Progress: [%-20s] %.1f%%\n", strings.Repeat("=", int(report.Progress/5)), report.Progress))
			b.WriteString(fmt.Sprintf("        Total: %d | Open: %d | Active: %d | Done: %d\n\n",
				report.Total, report.Open, report.InProgress, report.Closed))

			b.WriteString(cockpitSection.Render("[FRONTLINE]"))
			b.WriteString(" Active Workers:\n")
			if len(report.ActiveWorkers) == 0 {
				b.WriteString(cockpitDim.Render("  (No active workers currently)"))
				b.WriteString("\n")
			} else {
				for _, t := range report.ActiveWorkers {
					b.WriteString(fmt.Sprintf("  > Agent %q is working on %q\n", t.Assignee, t.ID))
				}
			}
			b.WriteString("\n")

			b.WriteString(cockpitSection.Render("[RECENT TRAIL]"))
			b.WriteString("\n")
			if len(report.Trail) == 0 {
				b.WriteString(cockpitDim.Render("  (No activity yet)"))
				b.WriteString("\n")
			} else {
				for _, rec := range report.Trail {
					b.WriteString(fmt.Sprintf("  * %s %s %s\n", rec.Actor, rec.Action, rec.Target))
				}
			}
			b.WriteString("\n")

			b.WriteString(cockpitSection.Render("[COSTS]"))
			b.WriteString(fmt.Sprintf(" Total spend: $%.4f\n", report.TotalCostUSD))

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cockpitBox.Render(strings.TrimRight(b.String(), "\n")))
			return nil
		},
	})

	return cmd
}

// newTrailCommand creates the trail command.
func newTrailCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "trail",
		Short: "Show recent audit activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.TrailUseCase().Execute(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No activity yet.")
				return nil
			}
			for _, rec := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %-15s %s\n",
					rec.Time.Format("2006-01-02 15:04:05"), rec.Actor, rec.Action, rec.Target)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 15, "Number of records to show")

	return cmd
}
