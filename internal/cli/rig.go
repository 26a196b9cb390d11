package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/usecase"
)

// newRigCommand creates the rig command with its subcommands.
func newRigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rig",
		Short: "Manage registered repositories",
	}

	cmd.AddCommand(
		newRigAddCommand(c),
		newRigListCommand(c),
		newRigStatusCommand(c),
	)

	return cmd
}

func newRigAddCommand(c *app.Container) *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a repository",
		Long: `Register a repository as a rig.

The path must be a git repository. The remote URL is detected from
origin unless --repo overrides it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rig, err := c.AddRigUseCase().Execute(cmd.Context(), usecase.AddRigInput{
				Name: args[0],
				Path: args[1],
				Repo: repo,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered rig %s at %s", rig.Name, rig.Path)
			if rig.Repo != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%s)", rig.Repo)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "Remote URL (default: detected from origin)")

	return cmd
}

func newRigListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List rigs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rigs, err := c.ListRigsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(rigs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No rigs registered.")
				return nil
			}
			printRigList(cmd.OutOrStdout(), rigs)
			return nil
		},
	}
}

func newRigStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status <name>",
		Short: "Show a rig",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rig, err := c.RigStatusUseCase().Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Name:      %s\nPath:      %s\nRepo:      %s\nStatus:    %s\nLast sync: %s\n",
				rig.Name, rig.Path, rig.Repo, rig.Status, rig.LastSync.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

// printRigList prints rigs in TSV format.
func printRigList(w io.Writer, rigs []domain.Rig) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSTATUS\tPATH\tREPO")
	for _, r := range rigs {
		repo := r.Repo
		if repo == "" {
			repo = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Status, r.Path, repo)
	}
	_ = tw.Flush()
}
