package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/testutil"
)

func TestAddTask_Execute_Success(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	uc := NewAddTask(repo, clock)

	task, err := uc.Execute(context.Background(), AddTaskInput{ID: "fix-auth", Title: "Fix login"})
	require.NoError(t, err)
	assert.Equal(t, "fix-auth", task.ID)
	assert.Equal(t, domain.StatusOpen, task.Status)
	assert.Empty(t, task.Assignee)
	assert.Equal(t, clock.NowTime, task.Created)
	assert.Contains(t, repo.Tasks, "fix-auth")
}

func TestAddTask_Execute_EmptyTitle(t *testing.T) {
	uc := NewAddTask(testutil.NewMockTaskRepository(), &testutil.MockClock{})

	_, err := uc.Execute(context.Background(), AddTaskInput{ID: "t1"})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestAddTask_Execute_DuplicateID(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Title: "existing", Status: domain.StatusOpen}

	uc := NewAddTask(repo, &testutil.MockClock{})

	_, err := uc.Execute(context.Background(), AddTaskInput{ID: "t1", Title: "again"})
	assert.ErrorIs(t, err, domain.ErrTaskExists)
	assert.Equal(t, "existing", repo.Tasks["t1"].Title)
}

func TestDeleteTask_Execute(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Status: domain.StatusOpen}

	uc := NewDeleteTask(repo)

	require.NoError(t, uc.Execute(context.Background(), "t1"))
	assert.NotContains(t, repo.Tasks, "t1")

	// Deleting a missing task is a no-op.
	assert.NoError(t, uc.Execute(context.Background(), "t1"))
}

func TestImportTasks_Execute_Success(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: fix-auth
  title: Fix the login flow
- id: add-docs
  title: Write the user guide
`), 0o600))

	uc := NewImportTasks(repo, clock)

	out, err := uc.Execute(context.Background(), ImportTasksInput{Path: path})
	require.NoError(t, err)
	require.Len(t, out.Created, 2)
	assert.Equal(t, "fix-auth", out.Created[0].ID)
	assert.Equal(t, domain.StatusOpen, out.Created[0].Status)
	assert.Len(t, repo.Tasks, 2)
}

func TestImportTasks_Execute_ValidationRejectsWholeFile(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "- title: no id here\n"},
		{"missing title", "- id: t1\n"},
		{"duplicate in file", "- id: t1\n  title: one\n- id: t1\n  title: two\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository()
			path := filepath.Join(t.TempDir(), "tasks.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			uc := NewImportTasks(repo, &testutil.MockClock{})

			_, err := uc.Execute(context.Background(), ImportTasksInput{Path: path})
			require.Error(t, err)
			// Nothing was created: validation precedes all writes.
			assert.Empty(t, repo.Tasks)
		})
	}
}

func TestImportTasks_Execute_ExistingTaskRejects(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Title: "already here", Status: domain.StatusOpen}

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: t2\n  title: new\n- id: t1\n  title: clash\n"), 0o600))

	uc := NewImportTasks(repo, &testutil.MockClock{})

	_, err := uc.Execute(context.Background(), ImportTasksInput{Path: path})
	assert.ErrorIs(t, err, domain.ErrTaskExists)
	assert.NotContains(t, repo.Tasks, "t2")
}

func TestImportTasks_Execute_MissingFile(t *testing.T) {
	uc := NewImportTasks(testutil.NewMockTaskRepository(), &testutil.MockClock{})

	_, err := uc.Execute(context.Background(), ImportTasksInput{Path: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}
