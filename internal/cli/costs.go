package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/usecase"
)

// newCostsCommand creates the costs command with its subcommands.
func newCostsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Track engine spend",
	}

	cmd.AddCommand(
		newCostsAddCommand(c),
		newCostsListCommand(c),
		newCostsSummaryCommand(c),
	)

	return cmd
}

func newCostsAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task> <agent> <model> <input-tokens> <output-tokens> <cost-usd>",
		Short: "Record a cost entry",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid input token count %q", args[3])
			}
			output, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("invalid output token count %q", args[4])
			}
			cost, err := strconv.ParseFloat(args[5], 64)
			if err != nil {
				return fmt.Errorf("invalid cost %q", args[5])
			}

			err = c.AddCostUseCase().Execute(cmd.Context(), usecase.AddCostInput{
				TaskID:       args[0],
				Agent:        args[1],
				Model:        args[2],
				InputTokens:  input,
				OutputTokens: output,
				CostUSD:      cost,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded $%.4f for task %s\n", cost, args[0])
			return nil
		},
	}
}

func newCostsListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cost entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.ListCostsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No cost entries.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TIME\tTASK\tAGENT\tMODEL\tIN\tOUT\tCOST")
			for _, e := range entries {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t$%.4f\n",
					e.Time.Format("2006-01-02 15:04"), e.TaskID, e.Agent, e.Model,
					e.InputTokens, e.OutputTokens, e.CostUSD)
			}
			return tw.Flush()
		},
	}
}

func newCostsSummaryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize spend per model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := c.CostSummaryUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No cost entries.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "MODEL\tENTRIES\tIN\tOUT\tCOST")
			var total float64
			for _, s := range summaries {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t$%.4f\n",
					s.Model, s.Entries, s.InputTokens, s.OutputTokens, s.CostUSD)
				total += s.CostUSD
			}
			_, _ = fmt.Fprintf(tw, "TOTAL\t\t\t\t$%.4f\n", total)
			return tw.Flush()
		},
	}
}
