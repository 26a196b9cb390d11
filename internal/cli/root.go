// Package cli provides the command-line interface for tt.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/thinktodo/tt/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupCrew  = "crew"
	groupTown  = "town"
)

// NewRootCommand creates the root command for tt.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tt",
		Short: "AI agent town management CLI",
		Long: `tt runs a town of AI coding agents on top of tmux.
Each agent lives in its own tmux session, works a task in its own
scratch directory, and streams its output to a task log. A background
monitor watches the logs and closes tasks whose agent printed the
completion marker.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupCrew, Title: "Crew Management:"},
		&cobra.Group{ID: groupTown, Title: "Town Services:"},
	)

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask

	slingCmd := newSlingCommand(c)
	slingCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	workerCmd := newWorkerCommand(c)
	workerCmd.GroupID = groupCrew

	nudgeCmd := newNudgeCommand(c)
	nudgeCmd.GroupID = groupCrew

	peekCmd := newPeekCommand(c)
	peekCmd.GroupID = groupCrew

	mailCmd := newMailCommand(c)
	mailCmd.GroupID = groupCrew

	handoffCmd := newHandoffCommand(c)
	handoffCmd.GroupID = groupCrew

	monitorCmd := newMonitorCommand(c)
	monitorCmd.GroupID = groupTown

	adminCmd := newAdminCommand(c)
	adminCmd.GroupID = groupTown

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupTown

	beadsCmd := newBeadsCommand(c)
	beadsCmd.GroupID = groupTown

	trailCmd := newTrailCommand(c)
	trailCmd.GroupID = groupTown

	rigCmd := newRigCommand(c)
	rigCmd.GroupID = groupTown

	costsCmd := newCostsCommand(c)
	costsCmd.GroupID = groupTown

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTown

	root.AddCommand(
		initCmd,
		taskCmd,
		slingCmd,
		doneCmd,
		workerCmd,
		nudgeCmd,
		peekCmd,
		mailCmd,
		handoffCmd,
		monitorCmd,
		adminCmd,
		serveCmd,
		beadsCmd,
		trailCmd,
		rigCmd,
		costsCmd,
		tuiCmd,
	)

	return root
}
