package app

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/infra/config"
	"github.com/thinktodo/tt/internal/infra/jsonstore"
	"github.com/thinktodo/tt/internal/monitor"
	"github.com/thinktodo/tt/internal/testutil"
	"github.com/thinktodo/tt/internal/usecase"
	"github.com/thinktodo/tt/internal/worker"
)

// newTestContainer wires a container against a real store and worker
// service but a mocked session manager, so no tmux is involved.
func newTestContainer(t *testing.T) (*Container, *testutil.MockSessionManager) {
	t.Helper()
	workDir := t.TempDir()

	store := jsonstore.New(domain.StorePath(workDir))
	sessions := testutil.NewMockSessionManager()
	loader := config.NewLoaderWithGlobalDir(domain.DataDir(workDir), t.TempDir())

	c := &Container{
		Tasks:            store,
		Audit:            store,
		Mail:             store,
		Rigs:             store.Rigs(),
		Costs:            store.Costs(),
		StoreInitializer: store,
		Sessions:         sessions,
		Workers:          worker.New(sessions, testutil.NopLogger{}, workDir),
		ConfigLoader:     loader,
		ConfigWriter:     loader,
		Clock:            domain.RealClock{},
		Logger:           testutil.NopLogger{},
		AppConfig:        domain.NewDefaultConfig(),
		WorkDir:          workDir,
	}
	return c, sessions
}

// The full lifecycle: init, create a task, dispatch it, observe the
// completion marker in the agent log, have the monitor close it, then
// tear down the worker.
func TestLifecycle_SlingMonitorDone(t *testing.T) {
	c, sessions := newTestContainer(t)
	ctx := context.Background()

	require.NoError(t, c.InitUseCase().Execute(ctx))

	_, err := c.AddTaskUseCase().Execute(ctx, usecase.AddTaskInput{ID: "fix-auth", Title: "Fix login"})
	require.NoError(t, err)

	out, err := c.SlingUseCase().Execute(ctx, usecase.SlingInput{TaskID: "fix-auth", Agent: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "worker-alice", out.SessionName)
	assert.True(t, sessions.IsRunning("worker-alice"))

	task, err := c.Tasks.Get("fix-auth")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, task.Status)

	// The agent finishes: its log gains the completion marker.
	logPath := domain.TaskLogPath(c.WorkDir, "fix-auth", "alice")
	require.NoError(t, os.WriteFile(logPath, []byte("did the work\n[TASK_DONE]\n"), 0o600))

	mon := monitor.New(c.Tasks, c.Logger, c.WorkDir, time.Second)
	mon.Scan()

	task, err = c.Tasks.Get("fix-auth")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, task.Status)
	assert.Equal(t, "alice", task.Assignee)

	// Done tears down the worker even though the task is already closed.
	doneOut, err := c.DoneUseCase().Execute(ctx, usecase.DoneInput{TaskID: "fix-auth"})
	require.NoError(t, err)
	assert.Equal(t, "alice", doneOut.NukedAgent)
	assert.False(t, sessions.IsRunning("worker-alice"))
	assert.NoDirExists(t, domain.WorkerDir(c.WorkDir, "alice"))

	// The audit trail recorded both actions.
	trail, err := c.TrailUseCase().Execute(ctx, 10)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "task_closed", trail[0].Action)
	assert.Equal(t, "sling_assigned", trail[1].Action)
}

func TestLifecycle_ReSlingWhileRunning(t *testing.T) {
	c, sessions := newTestContainer(t)
	ctx := context.Background()

	require.NoError(t, c.InitUseCase().Execute(ctx))
	_, err := c.AddTaskUseCase().Execute(ctx, usecase.AddTaskInput{ID: "t1", Title: "Work"})
	require.NoError(t, err)

	_, err = c.SlingUseCase().Execute(ctx, usecase.SlingInput{TaskID: "t1", Agent: "alice"})
	require.NoError(t, err)

	// A second dispatch to the same agent is accepted without error.
	_, err = c.SlingUseCase().Execute(ctx, usecase.SlingInput{TaskID: "t1", Agent: "alice"})
	require.NoError(t, err)
	assert.Len(t, sessions.Started, 2)
}

func TestNew_FallsBackToDefaultsWithoutConfig(t *testing.T) {
	c := New(t.TempDir())
	defer func() { _ = c.Close() }()

	assert.Equal(t, "gemini", c.AppConfig.DefaultEngine)
	assert.NotNil(t, c.SlingUseCase())
	assert.NotNil(t, c.NewMonitor())
}
