package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// SpawnWorkerInput contains the parameters for a raw worker spawn.
type SpawnWorkerInput struct {
	TaskID string
	Agent  string
	Engine string
	Role   string
}

// SpawnWorkerOutput contains the result of a raw spawn.
type SpawnWorkerOutput struct {
	SessionName string
}

// SpawnWorker is the use case for launching a worker without touching task
// state, the low-level counterpart of Sling.
type SpawnWorker struct {
	audit        domain.AuditLog
	workers      domain.WorkerLauncher
	configLoader domain.ConfigLoader
	clock        domain.Clock
}

// NewSpawnWorker creates a new SpawnWorker use case.
func NewSpawnWorker(
	audit domain.AuditLog,
	workers domain.WorkerLauncher,
	configLoader domain.ConfigLoader,
	clock domain.Clock,
) *SpawnWorker {
	return &SpawnWorker{
		audit:        audit,
		workers:      workers,
		configLoader: configLoader,
		clock:        clock,
	}
}

// Execute spawns the worker and records the action.
func (uc *SpawnWorker) Execute(ctx context.Context, in SpawnWorkerInput) (*SpawnWorkerOutput, error) {
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

	_ = uc.audit.Append(domain.AuditRecord{
		Time:    uc.clock.Now(),
		Actor:   "user",
		Action:  "spawn",
		Target:  in.Agent,
		Outcome: "success",
	})

	return &SpawnWorkerOutput{SessionName: domain.WorkerSessionName(in.Agent)}, nil
}

// NukeWorker is the use case for tearing down a worker by agent name.
type NukeWorker struct {
	workers domain.WorkerLauncher
}

// NewNukeWorker creates a new NukeWorker use case.
func NewNukeWorker(workers domain.WorkerLauncher) *NukeWorker {
	return &NukeWorker{workers: workers}
}

// Execute tears down the agent's worker. Always succeeds: teardown of an
// absent session and a missing directory is a no-op.
func (uc *NukeWorker) Execute(_ context.Context, agent string) error {
	uc.workers.Nuke(agent)
	return nil
}
