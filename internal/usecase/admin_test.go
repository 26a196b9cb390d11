package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/testutil"
)

func TestAdminStart_Execute_Success(t *testing.T) {
	workDir := t.TempDir()
	sessions := testutil.NewMockSessionManager()
	repo := testutil.NewMockTaskRepository()
	repo.Tasks["t1"] = &domain.Task{ID: "t1", Title: "Open thing", Status: domain.StatusOpen}
	repo.Tasks["t2"] = &domain.Task{ID: "t2", Title: "Done thing", Status: domain.StatusClosed}

	uc := NewAdminStart(sessions, repo, &testutil.MockConfigLoader{}, workDir)

	out, err := uc.Execute(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.False(t, out.AlreadyRunning)
	assert.Equal(t, "hq-admin", out.SessionName)

	require.Len(t, sessions.Started, 1)
	assert.Equal(t, "hq-admin", sessions.Started[0].Name)
	assert.Equal(t, domain.AdminDir(workDir), sessions.Started[0].Dir)

	// The launch script embeds the backlog of open tasks only.
	content, err := os.ReadFile(domain.AdminScriptPath(workDir))
	require.NoError(t, err)
	script := string(content)
	assert.Contains(t, script, "You are the Think Todo admin.")
	assert.Contains(t, script, "- [t1] Open thing")
	assert.NotContains(t, script, "Done thing")
	// Default engine runs the admin when no config overrides it.
	assert.Contains(t, script, "gemini --approval-mode yolo")
}

func TestAdminStart_Execute_CustomPrompt(t *testing.T) {
	workDir := t.TempDir()
	sessions := testutil.NewMockSessionManager()

	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "prompts"), 0o750))
	require.NoError(t, os.WriteFile(domain.AdminPromptPath(workDir), []byte("You run the town."), 0o600))

	uc := NewAdminStart(sessions, testutil.NewMockTaskRepository(), &testutil.MockConfigLoader{}, workDir)

	_, err := uc.Execute(context.Background(), struct{}{})
	require.NoError(t, err)

	content, err := os.ReadFile(domain.AdminScriptPath(workDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "You run the town.")
}

func TestAdminStart_Execute_AlreadyRunning(t *testing.T) {
	workDir := t.TempDir()
	sessions := testutil.NewMockSessionManager()
	sessions.Running["hq-admin"] = true

	uc := NewAdminStart(sessions, testutil.NewMockTaskRepository(), &testutil.MockConfigLoader{}, workDir)

	out, err := uc.Execute(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.True(t, out.AlreadyRunning)
	assert.Empty(t, sessions.Started)
}

func TestAdminStart_Execute_StartFailureRemovesScript(t *testing.T) {
	workDir := t.TempDir()
	sessions := testutil.NewMockSessionManager()
	sessions.StartErr = domain.ErrSessionRejected

	uc := NewAdminStart(sessions, testutil.NewMockTaskRepository(), &testutil.MockConfigLoader{}, workDir)

	_, err := uc.Execute(context.Background(), struct{}{})
	require.Error(t, err)
	assert.NoFileExists(t, domain.AdminScriptPath(workDir))
}
