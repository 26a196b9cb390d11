package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/thinktodo/tt/internal/domain"
	"gopkg.in/yaml.v3"
)

// taskSpec is one entry of a YAML task import file.
type taskSpec struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// ImportTasksInput contains the parameters for a bulk task import.
type ImportTasksInput struct {
	Path string // YAML file: a list of {id, title}
}

// ImportTasksOutput contains the result of a bulk import.
type ImportTasksOutput struct {
	Created []*domain.Task
}

// ImportTasks is the use case for registering many tasks from a file.
type ImportTasks struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(tasks domain.TaskRepository, clock domain.Clock) *ImportTasks {
	return &ImportTasks{tasks: tasks, clock: clock}
}

// Execute parses the file and registers every entry. The whole file is
// validated before any task is written, so a malformed entry rejects the
// import without partial creation.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var specs []taskSpec
	if err := yaml.Unmarshal(content, &specs); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("entry %d: id is required", i+1)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i+1, spec.ID)
		}
		seen[spec.ID] = true
		if spec.Title == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, domain.ErrEmptyTitle)
		}
		existing, err := uc.tasks.Get(spec.ID)
		if err != nil {
			return nil, fmt.Errorf("get task: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("entry %d: task %q: %w", i+1, spec.ID, domain.ErrTaskExists)
		}
	}

	out := &ImportTasksOutput{}
	for _, spec := range specs {
		task := &domain.Task{
			ID:      spec.ID,
			Title:   spec.Title,
			Status:  domain.StatusOpen,
			Created: uc.clock.Now(),
		}
		if err := uc.tasks.Save(task); err != nil {
			return nil, fmt.Errorf("save task %q: %w", spec.ID, err)
		}
		out.Created = append(out.Created, task)
	}
	return out, nil
}
