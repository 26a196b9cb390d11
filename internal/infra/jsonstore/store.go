// Package jsonstore provides a JSON file-based implementation of the
// persistence ports: tasks, audit trail, mailbox, rigs, and costs.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/thinktodo/tt/internal/domain"
)

// storeData represents the JSON file structure. One file holds every table
// the original SQLite schema kept; each repository method commits a single
// lock-guarded read(-modify-write), so there is no cross-table transaction.
type storeData struct {
	Tasks    map[string]*domain.Task    `json:"tasks"`
	Messages map[string]*domain.Message `json:"messages"`
	Rigs     map[string]*domain.Rig     `json:"rigs"`
	Audit    []domain.AuditRecord       `json:"audit"`
	Costs    []domain.CostEntry         `json:"costs"`
	Meta     meta                       `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextMessageID int `json:"nextMessageID"`
}

// Store implements the persistence ports using a single JSON file guarded
// by a flock'd lock file.
type Store struct {
	path     string
	lockPath string
}

// Interface checks.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.AuditLog         = (*Store)(nil)
	_ domain.Mailbox          = (*Store)(nil)
	_ domain.RigRepository    = rigView{}
	_ domain.CostLedger       = costView{}
	_ domain.StoreInitializer = (*Store)(nil)
)

// New creates a new Store for the given file path.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		if t, ok := data.Tasks[id]; ok {
			task = t
			task.ID = id
		}
		return nil
	})
	return task, err
}

// List retrieves all tasks sorted by ID.
func (s *Store) List() ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.withLock(func(data *storeData) error {
		for id, t := range data.Tasks {
			t.ID = id
			tasks = append(tasks, t)
		}
		return nil
	})

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return strings.Compare(a.ID, b.ID)
	})

	return tasks, err
}

// Save creates or updates a task.
func (s *Store) Save(task *domain.Task) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Tasks[task.ID] = task
		return nil
	})
}

// Delete removes a task by ID.
func (s *Store) Delete(id string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Tasks, id)
		return nil
	})
}

// SetStatus unconditionally sets a task's status. A missing task is a
// no-op, mirroring an UPDATE with no matching row.
func (s *Store) SetStatus(id string, status domain.Status) error {
	return s.withLockWrite(func(data *storeData) error {
		if t, ok := data.Tasks[id]; ok {
			t.Status = status
		}
		return nil
	})
}

// Append adds a record to the audit trail.
func (s *Store) Append(rec domain.AuditRecord) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Audit = append(data.Audit, rec)
		return nil
	})
}

// Recent returns up to limit audit records, newest first.
func (s *Store) Recent(limit int) ([]domain.AuditRecord, error) {
	var recs []domain.AuditRecord
	err := s.withLock(func(data *storeData) error {
		recs = newestFirst(data.Audit)
		return nil
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, err
}

// History returns audit records for a task or its assignee, newest first.
func (s *Store) History(taskID, assignee string) ([]domain.AuditRecord, error) {
	var recs []domain.AuditRecord
	err := s.withLock(func(data *storeData) error {
		for _, rec := range newestFirst(data.Audit) {
			if rec.Target == taskID || (assignee != "" && rec.Actor == assignee) {
				recs = append(recs, rec)
			}
		}
		return nil
	})
	return recs, err
}

// Send stores a new unread message and returns its ID.
func (s *Store) Send(msg domain.Message) (int, error) {
	var id int
	err := s.withLockWrite(func(data *storeData) error {
		id = data.Meta.NextMessageID
		data.Meta.NextMessageID++
		msg.ID = id
		msg.Status = domain.MailUnread
		data.Messages[strconv.Itoa(id)] = &msg
		return nil
	})
	return id, err
}

// Inbox returns all messages, newest first.
func (s *Store) Inbox() ([]domain.Message, error) {
	var msgs []domain.Message
	err := s.withLock(func(data *storeData) error {
		for key, m := range data.Messages {
			id, _ := strconv.Atoi(key)
			m.ID = id
			msgs = append(msgs, *m)
		}
		return nil
	})

	slices.SortFunc(msgs, func(a, b domain.Message) int {
		if c := b.Time.Compare(a.Time); c != 0 {
			return c
		}
		return b.ID - a.ID
	})

	return msgs, err
}

// Read returns a message by ID and marks it read.
func (s *Store) Read(id int) (*domain.Message, error) {
	var msg *domain.Message
	err := s.withLockWrite(func(data *storeData) error {
		m, ok := data.Messages[strconv.Itoa(id)]
		if !ok {
			return nil
		}
		m.Status = domain.MailRead
		copied := *m
		copied.ID = id
		msg = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domain.ErrMessageNotFound
	}
	return msg, nil
}

// Rigs returns the rig registry view of the store.
func (s *Store) Rigs() domain.RigRepository {
	return rigView{s: s}
}

// Costs returns the cost ledger view of the store.
func (s *Store) Costs() domain.CostLedger {
	return costView{s: s}
}

// rigView adapts the store to domain.RigRepository. A separate view avoids
// method-set collisions with the task repository on the same file.
type rigView struct {
	s *Store
}

// Put creates or replaces a rig.
func (v rigView) Put(rig domain.Rig) error {
	return v.s.withLockWrite(func(data *storeData) error {
		data.Rigs[rig.Name] = &rig
		return nil
	})
}

// Get retrieves a rig by name. Returns nil if not found.
func (v rigView) Get(name string) (*domain.Rig, error) {
	var rig *domain.Rig
	err := v.s.withLock(func(data *storeData) error {
		if r, ok := data.Rigs[name]; ok {
			rig = r
			rig.Name = name
		}
		return nil
	})
	return rig, err
}

// List returns all rigs sorted by name.
func (v rigView) List() ([]domain.Rig, error) {
	var rigs []domain.Rig
	err := v.s.withLock(func(data *storeData) error {
		for name, r := range data.Rigs {
			r.Name = name
			rigs = append(rigs, *r)
		}
		return nil
	})

	slices.SortFunc(rigs, func(a, b domain.Rig) int {
		return strings.Compare(a.Name, b.Name)
	})

	return rigs, err
}

// costView adapts the store to domain.CostLedger.
type costView struct {
	s *Store
}

// Add appends a cost entry.
func (v costView) Add(entry domain.CostEntry) error {
	return v.s.withLockWrite(func(data *storeData) error {
		data.Costs = append(data.Costs, entry)
		return nil
	})
}

// List returns all cost entries, newest first.
func (v costView) List() ([]domain.CostEntry, error) {
	var entries []domain.CostEntry
	err := v.s.withLock(func(data *storeData) error {
		entries = newestFirst(data.Costs)
		return nil
	})
	return entries, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	return s.write(emptyData())
}

func emptyData() *storeData {
	return &storeData{
		Tasks:    make(map[string]*domain.Task),
		Messages: make(map[string]*domain.Message),
		Rigs:     make(map[string]*domain.Rig),
		Meta:     meta{NextMessageID: 1},
	}
}

// newestFirst returns a reversed copy of an append-ordered slice.
func newestFirst[T any](in []T) []T {
	out := make([]T, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		out = append(out, in[i])
	}
	return out
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the
// result back.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	// Guard against partially written or hand-edited files.
	if data.Tasks == nil {
		data.Tasks = make(map[string]*domain.Task)
	}
	if data.Messages == nil {
		data.Messages = make(map[string]*domain.Message)
	}
	if data.Rigs == nil {
		data.Rigs = make(map[string]*domain.Rig)
	}
	if data.Meta.NextMessageID == 0 {
		data.Meta.NextMessageID = 1
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o640); err != nil { //nolint:gosec // store readable by owner and group
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
