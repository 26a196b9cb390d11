package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// AddTaskInput contains the parameters for registering a task.
type AddTaskInput struct {
	ID    string
	Title string
}

// AddTask is the use case for creating a task.
type AddTask struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(tasks domain.TaskRepository, clock domain.Clock) *AddTask {
	return &AddTask{tasks: tasks, clock: clock}
}

// Execute registers a task in Open status with no assignee.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	existing, err := uc.tasks.Get(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("task %q: %w", in.ID, domain.ErrTaskExists)
	}

	task := &domain.Task{
		ID:      in.ID,
		Title:   in.Title,
		Status:  domain.StatusOpen,
		Created: uc.clock.Now(),
	}
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

// ListTasks is the use case for listing the backlog.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute returns all tasks sorted by ID.
func (uc *ListTasks) Execute(_ context.Context) ([]*domain.Task, error) {
	return uc.tasks.List()
}

// DeleteTask is the use case for removing a task. This is an admin action
// outside the dispatch/close path; it does not touch any running worker.
type DeleteTask struct {
	tasks domain.TaskRepository
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

// Execute removes the task by ID.
func (uc *DeleteTask) Execute(_ context.Context, id string) error {
	return uc.tasks.Delete(id)
}
