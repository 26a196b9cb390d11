package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/worker"
)

// AdminStartOutput contains the result of starting the overseer.
type AdminStartOutput struct {
	AlreadyRunning bool
	SessionName    string
}

// AdminStart is the use case for launching the overseer session: a single
// agent seeded with the admin prompt plus the current open-task backlog.
type AdminStart struct {
	sessions     domain.SessionManager
	tasks        domain.TaskRepository
	configLoader domain.ConfigLoader
	workDir      string
}

// NewAdminStart creates a new AdminStart use case.
func NewAdminStart(
	sessions domain.SessionManager,
	tasks domain.TaskRepository,
	configLoader domain.ConfigLoader,
	workDir string,
) *AdminStart {
	return &AdminStart{
		sessions:     sessions,
		tasks:        tasks,
		configLoader: configLoader,
		workDir:      workDir,
	}
}

// Execute starts the hq-admin session if it is not already live.
func (uc *AdminStart) Execute(ctx context.Context, _ struct{}) (*AdminStartOutput, error) {
	if uc.sessions.IsRunning(domain.AdminSessionName) {
		return &AdminStartOutput{AlreadyRunning: true, SessionName: domain.AdminSessionName}, nil
	}

	instruction := "You are the Think Todo admin."
	if content, err := os.ReadFile(domain.AdminPromptPath(uc.workDir)); err == nil {
		instruction = string(content)
	}

	tasks, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var backlog strings.Builder
	backlog.WriteString("\n\nPending Tasks:\n")
	for _, t := range tasks {
		if t.Status == domain.StatusOpen {
			fmt.Fprintf(&backlog, "- [%s] %s\n", t.ID, t.Title)
		}
	}
	instruction += backlog.String()

	adminDir := domain.AdminDir(uc.workDir)
	if err := os.MkdirAll(adminDir, 0o750); err != nil {
		return nil, fmt.Errorf("create admin directory: %w", err)
	}

	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	_, engineCmd := domain.ResolveEngine(cfg.DefaultEngine, cfg.Engines)

	script, err := worker.BuildLaunchScript(worker.LaunchSpec{
		Dir:           adminDir,
		EngineCommand: engineCmd,
		Prompt:        instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("build launch script: %w", err)
	}

	scriptPath := domain.AdminScriptPath(uc.workDir)
	if err := os.MkdirAll(domain.ScriptDir(uc.workDir), 0o750); err != nil {
		return nil, fmt.Errorf("create scripts directory: %w", err)
	}
	if err := os.WriteFile(scriptPath, []byte(script), 0o700); err != nil { //nolint:gosec // executable script requires execute permission
		return nil, fmt.Errorf("write launch script: %w", err)
	}

	if err := uc.sessions.Start(ctx, domain.StartSessionOptions{
		Name:    domain.AdminSessionName,
		Dir:     adminDir,
		Command: scriptPath,
	}); err != nil {
		_ = os.Remove(scriptPath)
		return nil, err
	}

	return &AdminStartOutput{SessionName: domain.AdminSessionName}, nil
}
