// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/thinktodo/tt/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Safe for concurrent use so monitor tests can poll it from another
// goroutine.
type MockTaskRepository struct {
	mu      sync.Mutex
	Tasks   map[string]*domain.Task
	GetErr  error
	SaveErr error
}

// NewMockTaskRepository creates a new MockTaskRepository with an initialized map.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{Tasks: make(map[string]*domain.Task)}
}

// Get retrieves a task by ID. Returns nil if not found.
func (m *MockTaskRepository) Get(id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Tasks[id], nil
}

// List returns all tasks sorted by ID.
func (m *MockTaskRepository) List() ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// Save creates or updates a task.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete removes a task by ID.
func (m *MockTaskRepository) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Tasks, id)
	return nil
}

// SetStatus sets a task's status. A missing task is a no-op. The stored
// task is replaced rather than mutated so previously returned pointers
// stay stable.
func (m *MockTaskRepository) SetStatus(id string, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if t, ok := m.Tasks[id]; ok {
		updated := *t
		updated.Status = status
		m.Tasks[id] = &updated
	}
	return nil
}

// MockAuditLog is a test double for domain.AuditLog.
type MockAuditLog struct {
	Records   []domain.AuditRecord
	AppendErr error
}

// Append adds a record.
func (m *MockAuditLog) Append(rec domain.AuditRecord) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Records = append(m.Records, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (m *MockAuditLog) Recent(limit int) ([]domain.AuditRecord, error) {
	out := make([]domain.AuditRecord, 0, limit)
	for i := len(m.Records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Records[i])
	}
	return out, nil
}

// History returns records for a task or its assignee, newest first.
func (m *MockAuditLog) History(taskID, assignee string) ([]domain.AuditRecord, error) {
	var out []domain.AuditRecord
	for i := len(m.Records) - 1; i >= 0; i-- {
		rec := m.Records[i]
		if rec.Target == taskID || (assignee != "" && rec.Actor == assignee) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// MockMailbox is a test double for domain.Mailbox.
type MockMailbox struct {
	Messages []domain.Message
	SendErr  error
	nextID   int
}

// Send stores a new unread message and returns its ID.
func (m *MockMailbox) Send(msg domain.Message) (int, error) {
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	m.nextID++
	msg.ID = m.nextID
	msg.Status = domain.MailUnread
	m.Messages = append(m.Messages, msg)
	return msg.ID, nil
}

// Inbox returns all messages, newest first.
func (m *MockMailbox) Inbox() ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(m.Messages))
	for i := len(m.Messages) - 1; i >= 0; i-- {
		out = append(out, m.Messages[i])
	}
	return out, nil
}

// Read returns a message by ID and marks it read.
func (m *MockMailbox) Read(id int) (*domain.Message, error) {
	for i := range m.Messages {
		if m.Messages[i].ID == id {
			m.Messages[i].Status = domain.MailRead
			return &m.Messages[i], nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

// MockRigRepository is a test double for domain.RigRepository.
type MockRigRepository struct {
	Rigs map[string]domain.Rig
}

// NewMockRigRepository creates a new MockRigRepository.
func NewMockRigRepository() *MockRigRepository {
	return &MockRigRepository{Rigs: make(map[string]domain.Rig)}
}

// Put creates or replaces a rig.
func (m *MockRigRepository) Put(rig domain.Rig) error {
	m.Rigs[rig.Name] = rig
	return nil
}

// Get retrieves a rig by name. Returns nil if not found.
func (m *MockRigRepository) Get(name string) (*domain.Rig, error) {
	if rig, ok := m.Rigs[name]; ok {
		return &rig, nil
	}
	return nil, nil
}

// List returns all rigs sorted by name.
func (m *MockRigRepository) List() ([]domain.Rig, error) {
	rigs := make([]domain.Rig, 0, len(m.Rigs))
	for _, r := range m.Rigs {
		rigs = append(rigs, r)
	}
	sort.Slice(rigs, func(i, j int) bool { return rigs[i].Name < rigs[j].Name })
	return rigs, nil
}

// MockCostLedger is a test double for domain.CostLedger.
type MockCostLedger struct {
	Entries []domain.CostEntry
}

// Add appends a cost entry.
func (m *MockCostLedger) Add(entry domain.CostEntry) error {
	m.Entries = append(m.Entries, entry)
	return nil
}

// List returns all entries, newest first.
func (m *MockCostLedger) List() ([]domain.CostEntry, error) {
	out := make([]domain.CostEntry, 0, len(m.Entries))
	for i := len(m.Entries) - 1; i >= 0; i-- {
		out = append(out, m.Entries[i])
	}
	return out, nil
}

// MockSessionManager is a test double for domain.SessionManager.
type MockSessionManager struct {
	Running    map[string]bool
	Started    []domain.StartSessionOptions
	Killed     []string
	Displayed  []string
	Attached   []string
	StartErr   error
	DisplayErr error
}

// NewMockSessionManager creates a new MockSessionManager.
func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{Running: make(map[string]bool)}
}

// Start records the options and marks the session running.
func (m *MockSessionManager) Start(_ context.Context, opts domain.StartSessionOptions) error {
	if m.StartErr != nil {
		return m.StartErr
	}
	m.Started = append(m.Started, opts)
	m.Running[opts.Name] = true
	return nil
}

// Kill records the kill and marks the session stopped.
func (m *MockSessionManager) Kill(name string) {
	m.Killed = append(m.Killed, name)
	delete(m.Running, name)
}

// IsRunning reports whether the session was started.
func (m *MockSessionManager) IsRunning(name string) bool {
	return m.Running[name]
}

// Display records the displayed text.
func (m *MockSessionManager) Display(name, text string) error {
	if m.DisplayErr != nil {
		return m.DisplayErr
	}
	m.Displayed = append(m.Displayed, name+": "+text)
	return nil
}

// Attach records the attach.
func (m *MockSessionManager) Attach(name string) error {
	m.Attached = append(m.Attached, name)
	return nil
}

// MockWorkerLauncher is a test double for domain.WorkerLauncher.
type MockWorkerLauncher struct {
	Spawned  []domain.WorkerSpec
	Nuked    []string
	SpawnErr error
}

// Spawn records the spec.
func (m *MockWorkerLauncher) Spawn(_ context.Context, spec domain.WorkerSpec) error {
	if m.SpawnErr != nil {
		return m.SpawnErr
	}
	m.Spawned = append(m.Spawned, spec)
	return nil
}

// Nuke records the agent.
func (m *MockWorkerLauncher) Nuke(agent string) {
	m.Nuked = append(m.Nuked, agent)
}

// MockRepoInspector is a test double for domain.RepoInspector.
type MockRepoInspector struct {
	URL string
	Err error
}

// RemoteURL returns the configured URL or error.
func (m *MockRepoInspector) RemoteURL(_ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.URL, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// Load returns the configured config, or defaults if none was set.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config != nil {
		return m.Config, nil
	}
	return domain.NewDefaultConfig(), nil
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, string, string) {}
func (NopLogger) Info(string, string, string)  {}
func (NopLogger) Warn(string, string, string)  {}
func (NopLogger) Error(string, string, string) {}

// Interface compliance checks.
var (
	_ domain.Clock          = (*MockClock)(nil)
	_ domain.TaskRepository = (*MockTaskRepository)(nil)
	_ domain.AuditLog       = (*MockAuditLog)(nil)
	_ domain.Mailbox        = (*MockMailbox)(nil)
	_ domain.RigRepository  = (*MockRigRepository)(nil)
	_ domain.CostLedger     = (*MockCostLedger)(nil)
	_ domain.SessionManager = (*MockSessionManager)(nil)
	_ domain.WorkerLauncher = (*MockWorkerLauncher)(nil)
	_ domain.RepoInspector  = (*MockRepoInspector)(nil)
	_ domain.ConfigLoader   = (*MockConfigLoader)(nil)
	_ domain.Logger         = NopLogger{}
)
