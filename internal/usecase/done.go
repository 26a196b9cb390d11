package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// DoneInput contains the parameters for closing a task.
type DoneInput struct {
	TaskID string
	Actor  string // Audit actor ("user" from the CLI, "web" from the API)
}

// DoneOutput contains the result of closing a task.
type DoneOutput struct {
	Task        *domain.Task
	NukedAgent  string // Agent whose worker was torn down, if any
	WasAssigned bool
}

// Done is the use case for explicitly finishing a task: tear down the
// assignee's worker and force the status to closed.
type Done struct {
	tasks   domain.TaskRepository
	audit   domain.AuditLog
	workers domain.WorkerLauncher
	clock   domain.Clock
	logger  domain.Logger
}

// NewDone creates a new Done use case.
func NewDone(
	tasks domain.TaskRepository,
	audit domain.AuditLog,
	workers domain.WorkerLauncher,
	clock domain.Clock,
	logger domain.Logger,
) *Done {
	return &Done{
		tasks:   tasks,
		audit:   audit,
		workers: workers,
		clock:   clock,
		logger:  logger,
	}
}

// Execute closes the task. Teardown is best-effort and never blocks the
// close. The assignee field is left in place after closure; it is the
// record of who last worked the task.
func (uc *Done) Execute(_ context.Context, in DoneInput) (*DoneOutput, error) {
	task, err := uc.tasks.Get(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task %q: %w", in.TaskID, domain.ErrTaskNotFound)
	}

	out := &DoneOutput{Task: task}
	if task.Assignee != "" {
		uc.workers.Nuke(task.Assignee)
		out.NukedAgent = task.Assignee
		out.WasAssigned = true
	}

	task.Status = domain.StatusClosed
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	actor := in.Actor
	if actor == "" {
		actor = "user"
	}
	if err := uc.audit.Append(domain.AuditRecord{
		Time:    uc.clock.Now(),
		Actor:   actor,
		Action:  "task_closed",
		Target:  in.TaskID,
		Outcome: "success",
	}); err != nil {
		return nil, fmt.Errorf("append audit: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(in.TaskID, "done", "task closed")
	}
	return out, nil
}
