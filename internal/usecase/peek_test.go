package usecase

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/testutil"
)

func writeTaskLog(t *testing.T, workDir, taskID, agent, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(domain.TaskLogDir(workDir, taskID), 0o750))
	require.NoError(t, os.WriteFile(domain.TaskLogPath(workDir, taskID, agent), []byte(content), 0o600))
}

func TestPeek_Execute_TailsActiveTaskLog(t *testing.T) {
	workDir := t.TempDir()
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Status: domain.StatusInProgress, Assignee: "alice"}
	repo.Tasks["t2"] = &domain.Task{ID: "t2", Status: domain.StatusClosed, Assignee: "alice"}

	writeTaskLog(t, workDir, "t1", "alice", "one\ntwo\nthree\nfour\n")

	uc := NewPeek(repo, workDir)

	out, err := uc.Execute(context.Background(), PeekInput{Agent: "alice", Lines: 2})
	require.NoError(t, err)
	assert.Equal(t, "t1", out.TaskID)
	assert.Equal(t, []string{"three", "four"}, out.Lines)
}

func TestPeek_Execute_DefaultLineCount(t *testing.T) {
	workDir := t.TempDir()
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Status: domain.StatusInProgress, Assignee: "alice"}

	writeTaskLog(t, workDir, "t1", "alice", "a\nb\nc\n")

	uc := NewPeek(repo, workDir)

	out, err := uc.Execute(context.Background(), PeekInput{Agent: "alice"})
	require.NoError(t, err)
	// Fewer lines than the default of 10 returns them all.
	assert.Equal(t, []string{"a", "b", "c"}, out.Lines)
}

func TestPeek_Execute_NoActiveTask(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Status: domain.StatusClosed, Assignee: "alice"}

	uc := NewPeek(repo, t.TempDir())

	_, err := uc.Execute(context.Background(), PeekInput{Agent: "alice"})
	assert.ErrorIs(t, err, domain.ErrNoActiveTask)
}

func TestPeek_Execute_LogMissing(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Status: domain.StatusInProgress, Assignee: "alice"}

	uc := NewPeek(repo, t.TempDir())

	_, err := uc.Execute(context.Background(), PeekInput{Agent: "alice"})
	assert.ErrorIs(t, err, domain.ErrLogNotFound)
}
