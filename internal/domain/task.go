// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents a unit of work tracked by tt.
// The ID is caller-chosen and used everywhere: store key, log directory,
// session correlation.
type Task struct {
	Created  time.Time `json:"created"`
	ID       string    `json:"-"`                  // Stored as map key, not in value
	Title    string    `json:"title"`              // Free text, descriptive only
	Status   Status    `json:"status"`             // Current lifecycle state
	Assignee string    `json:"assignee,omitempty"` // Agent name set on dispatch
	Engine   string    `json:"engine,omitempty"`   // Engine tag set on dispatch
}

// IsActive returns true if an agent is currently working the task.
func (t *Task) IsActive() bool {
	return t.Status == StatusInProgress && t.Assignee != ""
}

// AuditRecord is an append-only trail entry for a state-changing action.
type AuditRecord struct {
	Time    time.Time `json:"time"`
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	Target  string    `json:"target"`
	Outcome string    `json:"outcome"`
}

// Message is a persisted inter-agent mail item.
type Message struct {
	Time     time.Time `json:"time"`
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Status   string    `json:"status"` // "unread" or "read"
	ID       int       `json:"-"`      // Stored as map key
}

// Mail status values.
const (
	MailUnread = "unread"
	MailRead   = "read"
)

// Rig is a registered external repository agents may be pointed at.
type Rig struct {
	LastSync time.Time `json:"lastSync"`
	Name     string    `json:"-"` // Stored as map key
	Path     string    `json:"path"`
	Repo     string    `json:"repo"`
	Status   string    `json:"status"` // "active" unless marked otherwise
}

// CostEntry records token usage and spend for one agent run.
type CostEntry struct {
	Time         time.Time `json:"time"`
	TaskID       string    `json:"taskID"`
	Agent        string    `json:"agent"`
	Model        string    `json:"model"`
	InputTokens  int       `json:"inputTokens"`
	OutputTokens int       `json:"outputTokens"`
	CostUSD      float64   `json:"costUSD"`
}
