package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tt in the current directory",
		Long: `Initialize tt in the current directory.

Creates the .tt/ data directory with an empty store and a starter
config. Safe to run more than once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.InitUseCase().Execute(cmd.Context()); err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized tt in %s\n", domain.DataDir(c.WorkDir))
			return nil
		},
	}
}
