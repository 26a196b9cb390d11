// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// SlingInput contains the parameters for dispatching a task to an agent.
type SlingInput struct {
	TaskID string // Task to dispatch
	Agent  string // Agent to bind
	Engine string // Engine tag (empty = configured default)
	Role   string // Role prompt selector (empty = worker)
	Actor  string // Audit actor; defaults to the agent name
}

// SlingOutput contains the result of a dispatch.
type SlingOutput struct {
	Task        *domain.Task
	SessionName string
	Engine      string // Engine tag recorded on the task
}

// Sling is the use case for dispatching a task: spawn a worker, then bind
// assignee, engine, and in_progress status onto the task.
type Sling struct {
	tasks        domain.TaskRepository
	audit        domain.AuditLog
	workers      domain.WorkerLauncher
	configLoader domain.ConfigLoader
	clock        domain.Clock
	logger       domain.Logger
}

// NewSling creates a new Sling use case.
func NewSling(
	tasks domain.TaskRepository,
	audit domain.AuditLog,
	workers domain.WorkerLauncher,
	configLoader domain.ConfigLoader,
	clock domain.Clock,
	logger domain.Logger,
) *Sling {
	return &Sling{
		tasks:        tasks,
		audit:        audit,
		workers:      workers,
		configLoader: configLoader,
		clock:        clock,
		logger:       logger,
	}
}

// Execute dispatches the task. Spawn failure aborts before any task-state
// mutation; a duplicate session for the same agent is a silent success.
//
// No status gate is applied: dispatching a closed task reopens it, matching
// the behavior of the store's other writers.
func (uc *Sling) Execute(ctx context.Context, in SlingInput) (*SlingOutput, error) {
	task, err := uc.tasks.Get(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task %q: %w", in.TaskID, domain.ErrTaskNotFound)
	}

	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	engine := in.Engine
	if engine == "" {
		engine = cfg.DefaultEngine
	}

	if err := uc.workers.Spawn(ctx, domain.WorkerSpec{
		TaskID:          in.TaskID,
		Agent:           in.Agent,
		Engine:          engine,
		Role:            in.Role,
		EngineOverrides: cfg.Engines,
	}); err != nil {
		return nil, fmt.Errorf("spawn worker: %w", err)
	}

	task.Status = domain.StatusInProgress
	task.Assignee = in.Agent
	task.Engine = engine
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	actor := in.Actor
	if actor == "" {
		actor = in.Agent
	}
	if err := uc.audit.Append(domain.AuditRecord{
		Time:    uc.clock.Now(),
		Actor:   actor,
		Action:  "sling_assigned",
		Target:  in.TaskID,
		Outcome: "success",
	}); err != nil {
		return nil, fmt.Errorf("append audit: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(in.TaskID, "sling",
			fmt.Sprintf("dispatched to agent %q with engine %q", in.Agent, engine))
	}

	return &SlingOutput{
		Task:        task,
		SessionName: domain.WorkerSessionName(in.Agent),
		Engine:      engine,
	}, nil
}
