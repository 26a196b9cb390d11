// Package worker translates a (task, agent, engine, role) tuple into a
// running external agent process inside a detached tmux session, and
// reverses that translation on teardown.
package worker

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/thinktodo/tt/internal/domain"
)

// Service spawns and tears down workers.
type Service struct {
	sessions domain.SessionManager
	logger   domain.Logger
	workDir  string
}

// Ensure Service implements domain.WorkerLauncher.
var _ domain.WorkerLauncher = (*Service)(nil)

// New creates a worker service rooted at workDir.
func New(sessions domain.SessionManager, logger domain.Logger, workDir string) *Service {
	return &Service{
		sessions: sessions,
		logger:   logger,
		workDir:  workDir,
	}
}

// Spawn starts a detached session for the agent.
//
// On success a live session named worker-<agent> exists and all its output
// accumulates in the task log file. A session already running under that
// name is a silent success (idempotent dispatch). Any other session failure
// is returned and the caller must not commit a task-state change.
func (s *Service) Spawn(ctx context.Context, opts domain.WorkerSpec) error {
	if opts.Role == "" {
		opts.Role = "worker"
	}

	sessionName := domain.WorkerSessionName(opts.Agent)
	workerDir := domain.WorkerDir(s.workDir, opts.Agent)

	// Pre-existing directories are reused: repeated dispatch to the same
	// agent accumulates state rather than resetting it.
	_ = os.MkdirAll(workerDir, 0o750)

	logDir := domain.TaskLogDir(s.workDir, opts.TaskID)
	_ = os.MkdirAll(logDir, 0o750)

	engineName, engineCmd := domain.ResolveEngine(opts.Engine, opts.EngineOverrides)
	mission := s.composeMission(opts.TaskID, opts.Role)

	script, err := BuildLaunchScript(LaunchSpec{
		Dir:           workerDir,
		EngineCommand: engineCmd,
		Prompt:        mission,
		LogFile:       domain.TaskLogPath(s.workDir, opts.TaskID, opts.Agent),
	})
	if err != nil {
		return fmt.Errorf("build launch script: %w", err)
	}

	scriptPath := domain.WorkerScriptPath(s.workDir, opts.Agent)
	if err := os.MkdirAll(domain.ScriptDir(s.workDir), 0o750); err != nil {
		return fmt.Errorf("create scripts directory: %w", err)
	}
	if err := os.WriteFile(scriptPath, []byte(script), 0o700); err != nil { //nolint:gosec // executable script requires execute permission
		return fmt.Errorf("write launch script: %w", err)
	}

	if err := s.sessions.Start(ctx, domain.StartSessionOptions{
		Name:    sessionName,
		Dir:     workerDir,
		Command: scriptPath,
	}); err != nil {
		_ = os.Remove(scriptPath)
		return err
	}

	if s.logger != nil {
		s.logger.Info(opts.TaskID, "worker",
			fmt.Sprintf("spawned agent %q with engine %q", opts.Agent, engineName))
	}
	return nil
}

// Nuke tears down an agent's worker: kill the session, remove the scratch
// directory, remove the launch script. Every step is best-effort and safe
// to repeat; the task log is deliberately left behind for later inspection.
func (s *Service) Nuke(agent string) {
	s.sessions.Kill(domain.WorkerSessionName(agent))
	_ = os.RemoveAll(domain.WorkerDir(s.workDir, agent))
	_ = os.Remove(domain.WorkerScriptPath(s.workDir, agent))
	if s.logger != nil {
		s.logger.Info("", "worker", fmt.Sprintf("nuked agent %q", agent))
	}
}

// composeMission builds the instruction text handed to the agent: the base
// prompt, the role prompt, and the task directive.
func (s *Service) composeMission(taskID, role string) string {
	var b strings.Builder

	if base, err := os.ReadFile(domain.BasePromptPath(s.workDir)); err == nil {
		b.Write(base)
		b.WriteString("\n\n")
	}

	rolePrompt := "You are a specialized agent."
	if content, err := os.ReadFile(domain.RolePromptPath(s.workDir, role)); err == nil {
		rolePrompt = string(content)
	}
	b.WriteString(rolePrompt)

	fmt.Fprintf(&b, "\n\nMISSION ID: %s\n\nEXECUTE NOW.", taskID)
	return b.String()
}

// LaunchSpec describes a generated launch script.
type LaunchSpec struct {
	Dir           string // Working directory to cd into
	EngineCommand string // Agent invocation; the prompt is appended as "$PROMPT"
	Prompt        string // Mission text, embedded via quoted heredoc
	LogFile       string // Tee target for combined output; empty disables teeing
}

// scriptTemplate is the launch script skeleton. The prompt is embedded
// through a quoted heredoc so user-influenced text (task ids, titles) is
// never interpolated into a shell command line; paths are single-quote
// escaped. This is what makes adversarial ids like `task';rm -rf /` inert.
const scriptTemplate = `#!/bin/bash
set -o pipefail

read -r -d '' PROMPT << 'TT_PROMPT_EOF'
{{.Prompt}}
TT_PROMPT_EOF

cd {{.Dir}} || exit 1
{{if .LogFile}}{{.EngineCommand}} "$PROMPT" 2>&1 | tee {{.LogFile}}
{{else}}{{.EngineCommand}} "$PROMPT"
{{end}}`

// launchData is the template payload with paths already shell-quoted.
type launchData struct {
	Prompt        string
	Dir           string
	EngineCommand string
	LogFile       string
}

// BuildLaunchScript renders a launch script for the given spec.
func BuildLaunchScript(spec LaunchSpec) (string, error) {
	tmpl := template.Must(template.New("launch").Parse(scriptTemplate))

	data := launchData{
		Prompt:        spec.Prompt,
		Dir:           shellQuote(spec.Dir),
		EngineCommand: spec.EngineCommand,
	}
	if spec.LogFile != "" {
		data.LogFile = shellQuote(spec.LogFile)
	}

	var script strings.Builder
	if err := tmpl.Execute(&script, data); err != nil {
		return "", fmt.Errorf("execute launch template: %w", err)
	}
	return script.String(), nil
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
