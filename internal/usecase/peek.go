package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/thinktodo/tt/internal/domain"
)

// PeekInput contains the parameters for peeking at an agent's activity.
type PeekInput struct {
	Agent string
	Lines int // Number of trailing lines to return (default 10)
}

// PeekOutput contains the tail of the agent's active task log.
type PeekOutput struct {
	TaskID  string
	LogPath string
	Lines   []string
}

// Peek is the use case for viewing the recent log output of an agent's
// active task.
type Peek struct {
	tasks   domain.TaskRepository
	workDir string
}

// NewPeek creates a new Peek use case.
func NewPeek(tasks domain.TaskRepository, workDir string) *Peek {
	return &Peek{tasks: tasks, workDir: workDir}
}

// Execute finds the agent's in-progress task and tails its log.
func (uc *Peek) Execute(_ context.Context, in PeekInput) (*PeekOutput, error) {
	if in.Lines <= 0 {
		in.Lines = 10
	}

	tasks, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var active *domain.Task
	for _, t := range tasks {
		if t.Assignee == in.Agent && t.Status == domain.StatusInProgress {
			active = t
			break
		}
	}
	if active == nil {
		return nil, fmt.Errorf("agent %q: %w", in.Agent, domain.ErrNoActiveTask)
	}

	logPath := domain.TaskLogPath(uc.workDir, active.ID, in.Agent)
	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", logPath, domain.ErrLogNotFound)
		}
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) > in.Lines {
		lines = lines[len(lines)-in.Lines:]
	}

	return &PeekOutput{
		TaskID:  active.ID,
		LogPath: logPath,
		Lines:   lines,
	}, nil
}
