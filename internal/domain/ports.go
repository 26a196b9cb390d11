package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the persisted store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// TaskRepository manages task persistence. Every method is a single,
// independently committed operation; there is no multi-call transaction,
// and concurrent writers resolve by last-writer-wins.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id string) (*Task, error)

	// List retrieves all tasks sorted by ID.
	List() ([]*Task, error)

	// Save creates or updates a task.
	Save(task *Task) error

	// Delete removes a task by ID.
	Delete(id string) error

	// SetStatus unconditionally sets a task's status, preserving all other
	// fields. A missing task is a no-op, mirroring an UPDATE with no
	// matching row. Used by the monitor's idempotent close.
	SetStatus(id string, status Status) error
}

// AuditLog records state-changing actions. Write-mostly: the core never
// reads it back, only reporting surfaces do.
type AuditLog interface {
	// Append adds a record to the trail.
	Append(rec AuditRecord) error

	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]AuditRecord, error)

	// History returns records whose target is taskID or whose actor is the
	// given assignee, newest first. An empty assignee matches nothing.
	History(taskID, assignee string) ([]AuditRecord, error)
}

// Mailbox manages persisted inter-agent messages.
type Mailbox interface {
	// Send stores a new unread message and returns its ID.
	Send(msg Message) (int, error)

	// Inbox returns all messages, newest first.
	Inbox() ([]Message, error)

	// Read returns a message by ID and marks it read.
	Read(id int) (*Message, error)
}

// RigRepository manages the registry of external repositories.
type RigRepository interface {
	// Put creates or replaces a rig.
	Put(rig Rig) error

	// Get retrieves a rig by name. Returns nil if not found.
	Get(name string) (*Rig, error)

	// List returns all rigs sorted by name.
	List() ([]Rig, error)
}

// CostLedger records per-run token spend.
type CostLedger interface {
	// Add appends a cost entry.
	Add(entry CostEntry) error

	// List returns all entries, newest first.
	List() ([]CostEntry, error)
}

// SessionManager manages detached terminal-multiplexer sessions. It holds
// no state of its own; every call is synchronous and side-effecting on the
// OS process table.
type SessionManager interface {
	// Start creates a detached session running the command. A session that
	// already exists under the same name is treated as success, making
	// retried dispatches idempotent. Any other failure is surfaced.
	Start(ctx context.Context, opts StartSessionOptions) error

	// Kill terminates a session. Best-effort: errors are swallowed so
	// teardown never fails merely because the session was already gone.
	Kill(name string)

	// IsRunning checks if a session is live. Never fails; any inability to
	// query (multiplexer missing, no server) reads as false.
	IsRunning(name string) bool

	// Display delivers an ephemeral visual notice into a live session.
	// Returns an error if the session does not accept it; callers are
	// expected to check IsRunning first and fall back to the mailbox.
	Display(name, text string) error

	// Attach replaces the current process with an attached session.
	Attach(name string) error
}

// StartSessionOptions configures session creation.
type StartSessionOptions struct {
	Name    string // Session name
	Dir     string // Working directory
	Command string // Command to run (typically a generated script path)
}

// WorkerLauncher starts and tears down workers.
type WorkerLauncher interface {
	// Spawn starts a detached agent session for the spec. Duplicate
	// sessions are a silent success; any other failure is surfaced and the
	// caller must not commit a task-state change.
	Spawn(ctx context.Context, spec WorkerSpec) error

	// Nuke tears down an agent's worker. Best-effort and safe to repeat.
	Nuke(agent string)
}

// WorkerSpec identifies what a worker should run.
type WorkerSpec struct {
	EngineOverrides map[string]string // Engine command overrides from config
	TaskID          string            // Task the worker is bound to
	Agent           string            // Agent name
	Engine          string            // Engine tag; empty or unknown falls back
	Role            string            // Role prompt selector; defaults to "worker"
}

// RepoInspector inspects a local git repository.
type RepoInspector interface {
	// RemoteURL returns the origin remote URL of the repository at path.
	// Returns ErrNotGitRepository if path is not a repository; an empty
	// string with nil error if the repository has no origin remote.
	RemoteURL(path string) (string, error)
}

// Logger writes tt's operational log. Distinct from the agent output logs
// under .logs/tasks, which are written by the spawned processes themselves.
type Logger interface {
	Debug(taskID, category, msg string)
	Info(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (workdir over global over
	// defaults).
	Load() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
