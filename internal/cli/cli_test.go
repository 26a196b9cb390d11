package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/testutil"
)

type cliFixture struct {
	container *app.Container
	tasks     *testutil.MockTaskRepository
	audit     *testutil.MockAuditLog
	mail      *testutil.MockMailbox
	sessions  *testutil.MockSessionManager
	workers   *testutil.MockWorkerLauncher
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		tasks:    testutil.NewMockTaskRepository(),
		audit:    &testutil.MockAuditLog{},
		mail:     &testutil.MockMailbox{},
		sessions: testutil.NewMockSessionManager(),
		workers:  &testutil.MockWorkerLauncher{},
	}
	f.container = &app.Container{
		Tasks:        f.tasks,
		Audit:        f.audit,
		Mail:         f.mail,
		Sessions:     f.sessions,
		Workers:      f.workers,
		ConfigLoader: &testutil.MockConfigLoader{},
		Clock:        &testutil.MockClock{NowTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		Logger:       testutil.NopLogger{},
		AppConfig:    domain.NewDefaultConfig(),
		WorkDir:      t.TempDir(),
	}
	return f
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTaskAddCommand_CreatesTask(t *testing.T) {
	f := newCLIFixture(t)

	out, err := execute(newTaskAddCommand(f.container), "fix-auth", "Fix the login flow")

	require.NoError(t, err)
	assert.Contains(t, out, "Created task fix-auth: Fix the login flow")
	task := f.tasks.Tasks["fix-auth"]
	require.NotNil(t, task)
	assert.Equal(t, domain.StatusOpen, task.Status)
}

func TestTaskAddCommand_DuplicateFails(t *testing.T) {
	f := newCLIFixture(t)
	f.tasks.Tasks["fix-auth"] = &domain.Task{ID: "fix-auth", Title: "taken", Status: domain.StatusOpen}

	_, err := execute(newTaskAddCommand(f.container), "fix-auth", "again")

	assert.ErrorIs(t, err, domain.ErrTaskExists)
}

func TestTaskListCommand_Empty(t *testing.T) {
	f := newCLIFixture(t)

	out, err := execute(newTaskListCommand(f.container))

	require.NoError(t, err)
	assert.Contains(t, out, "No tasks.")
}

func TestTaskListCommand_ShowsColumns(t *testing.T) {
	f := newCLIFixture(t)
	f.tasks.Tasks["t1"] = &domain.Task{ID: "t1", Title: "First", Status: domain.StatusInProgress, Assignee: "alice", Engine: "claude"}
	f.tasks.Tasks["t2"] = &domain.Task{ID: "t2", Title: "Second", Status: domain.StatusOpen}

	out, err := execute(newTaskListCommand(f.container))

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "First")
	// Unassigned fields render as a dash.
	assert.Contains(t, out, "-")
}

func TestTaskDeleteCommand(t *testing.T) {
	f := newCLIFixture(t)
	f.tasks.Tasks["t1"] = &domain.Task{ID: "t1", Title: "doomed", Status: domain.StatusOpen}

	out, err := execute(newTaskDeleteCommand(f.container), "t1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task t1")
	assert.Empty(t, f.tasks.Tasks)
}

func TestSlingCommand_DispatchesWorker(t *testing.T) {
	f := newCLIFixture(t)
	f.tasks.Tasks["t1"] = &domain.Task{ID: "t1", Title: "Work", Status: domain.StatusOpen}

	out, err := execute(newSlingCommand(f.container), "t1", "alice", "--engine", "claude")

	require.NoError(t, err)
	assert.Contains(t, out, "Slung task t1 to alice")
	assert.Contains(t, out, "session: worker-alice")
	require.Len(t, f.workers.Spawned, 1)
	assert.Equal(t, "claude", f.workers.Spawned[0].Engine)
	assert.Equal(t, domain.StatusInProgress, f.tasks.Tasks["t1"].Status)
}

func TestSlingCommand_UnknownTask(t *testing.T) {
	f := newCLIFixture(t)

	_, err := execute(newSlingCommand(f.container), "ghost", "alice")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDoneCommand_ClosesAndNukes(t *testing.T) {
	f := newCLIFixture(t)
	f.tasks.Tasks["t1"] = &domain.Task{ID: "t1", Title: "Work", Status: domain.StatusInProgress, Assignee: "alice"}

	out, err := execute(newDoneCommand(f.container), "t1")

	require.NoError(t, err)
	assert.Contains(t, out, "Closed task t1 and nuked worker alice")
	assert.Equal(t, []string{"alice"}, f.workers.Nuked)
}

func TestNudgeCommand_MailFallbackWhenAgentDown(t *testing.T) {
	f := newCLIFixture(t)

	out, err := execute(newNudgeCommand(f.container), "alice", "check", "your", "tests")

	require.NoError(t, err)
	assert.Contains(t, out, "alice is not running; nudge delivered to inbox")
	require.Len(t, f.mail.Messages, 1)
	assert.Equal(t, "check your tests", f.mail.Messages[0].Body)
}

func TestNudgeCommand_LiveAgent(t *testing.T) {
	f := newCLIFixture(t)
	f.sessions.Running[domain.WorkerSessionName("alice")] = true

	out, err := execute(newNudgeCommand(f.container), "alice", "hurry")

	require.NoError(t, err)
	assert.Contains(t, out, "Nudged alice")
	assert.Empty(t, f.mail.Messages)
}

func TestMailSendAndInboxCommands(t *testing.T) {
	f := newCLIFixture(t)

	out, err := execute(newMailSendCommand(f.container), "alice", "please review PR 12", "--from", "admin", "--subject", "review")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")

	out, err = execute(newMailInboxCommand(f.container))
	require.NoError(t, err)
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "admin")
}

func TestNewRootCommand_RegistersCommands(t *testing.T) {
	f := newCLIFixture(t)
	root := NewRootCommand(f.container, "test-version")

	for _, name := range []string{
		"init", "task", "sling", "done", "worker", "nudge", "peek",
		"mail", "monitor", "admin", "serve", "beads", "trail", "rig",
		"costs", "tui", "handoff",
	} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "command %q should be registered", name)
	}
	assert.Equal(t, "test-version", root.Version)
}
