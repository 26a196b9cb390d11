package domain

import (
	"fmt"
	"path/filepath"
)

// CompletionSentinel is the literal marker an agent emits into its log to
// signal done-ness. The monitor performs a plain substring match on it.
const CompletionSentinel = "[TASK_DONE]"

// AdminSessionName is the tmux session name of the overseer agent.
const AdminSessionName = "hq-admin"

// ConfigFileName is the name of the TOML configuration file.
const ConfigFileName = "config.toml"

// WorkerSessionName returns the tmux session name for an agent.
// Format: worker-<agent>. External tools attaching to or inspecting
// sessions rely on this exact format.
func WorkerSessionName(agent string) string {
	return "worker-" + agent
}

// DataDir returns the path to the tt state directory.
func DataDir(workDir string) string {
	return filepath.Join(workDir, ".tt")
}

// StorePath returns the path to the persisted store file.
func StorePath(workDir string) string {
	return filepath.Join(DataDir(workDir), "store.json")
}

// OpsLogDir returns the directory holding tt's own operational logs.
func OpsLogDir(workDir string) string {
	return filepath.Join(DataDir(workDir), "logs")
}

// WorkerDir returns an agent's private scratch directory.
func WorkerDir(workDir, agent string) string {
	return filepath.Join(workDir, "workers", agent)
}

// AdminDir returns the overseer's working directory.
func AdminDir(workDir string) string {
	return filepath.Join(workDir, "admin")
}

// LogRoot returns the root of the per-task agent log tree.
func LogRoot(workDir string) string {
	return filepath.Join(workDir, ".logs", "tasks")
}

// TaskLogDir returns the log directory for a task.
func TaskLogDir(workDir, taskID string) string {
	return filepath.Join(LogRoot(workDir), taskID)
}

// TaskLogPath returns the combined stdout+stderr log file for an agent
// working a task. Logs outlive worker teardown.
func TaskLogPath(workDir, taskID, agent string) string {
	return filepath.Join(TaskLogDir(workDir, taskID), agent+".log")
}

// ScriptDir returns the directory holding generated launch scripts.
func ScriptDir(workDir string) string {
	return filepath.Join(DataDir(workDir), "scripts")
}

// WorkerScriptPath returns the generated launch script for an agent.
func WorkerScriptPath(workDir, agent string) string {
	return filepath.Join(ScriptDir(workDir), fmt.Sprintf("worker-%s.sh", agent))
}

// AdminScriptPath returns the generated launch script for the overseer.
func AdminScriptPath(workDir string) string {
	return filepath.Join(ScriptDir(workDir), "admin.sh")
}

// PromptDir returns the directory of static prompt documents.
func PromptDir(workDir string) string {
	return filepath.Join(workDir, "prompts")
}

// BasePromptPath returns the shared base instruction document.
func BasePromptPath(workDir string) string {
	return filepath.Join(PromptDir(workDir), "base.md")
}

// RolePromptPath returns the role instruction document.
func RolePromptPath(workDir, role string) string {
	return filepath.Join(PromptDir(workDir), "roles", role+".md")
}

// AdminPromptPath returns the overseer instruction document.
func AdminPromptPath(workDir string) string {
	return filepath.Join(PromptDir(workDir), "admin.md")
}
