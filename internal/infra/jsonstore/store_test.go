package jsonstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), ".tt", "store.json"))
	require.NoError(t, s.Initialize())
	return s
}

func TestStore_NotInitialized(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"))

	_, err := s.Get("t1")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	err = s.Save(&domain.Task{ID: "t1"})
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestStore_Initialize_Idempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&domain.Task{ID: "t1", Title: "keep me", Status: domain.StatusOpen}))
	require.NoError(t, s.Initialize())

	task, err := s.Get("t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "keep me", task.Title)
}

func TestStore_TaskRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(&domain.Task{
		ID:       "fix-auth",
		Title:    "Fix the login flow",
		Status:   domain.StatusInProgress,
		Assignee: "alice",
		Engine:   "claude",
		Created:  created,
	}))

	task, err := s.Get("fix-auth")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "fix-auth", task.ID)
	assert.Equal(t, "Fix the login flow", task.Title)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, "alice", task.Assignee)
	assert.Equal(t, "claude", task.Engine)
	assert.True(t, created.Equal(task.Created))
}

func TestStore_Get_Missing(t *testing.T) {
	s := newTestStore(t)

	task, err := s.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestStore_List_SortedByID(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&domain.Task{ID: "zeta", Status: domain.StatusOpen}))
	require.NoError(t, s.Save(&domain.Task{ID: "alpha", Status: domain.StatusOpen}))
	require.NoError(t, s.Save(&domain.Task{ID: "mid", Status: domain.StatusClosed}))

	tasks, err := s.List()
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "alpha", tasks[0].ID)
	assert.Equal(t, "mid", tasks[1].ID)
	assert.Equal(t, "zeta", tasks[2].ID)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&domain.Task{ID: "t1", Status: domain.StatusOpen}))
	require.NoError(t, s.Delete("t1"))

	task, err := s.Get("t1")
	require.NoError(t, err)
	assert.Nil(t, task)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete("t1"))
}

func TestStore_SetStatus(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&domain.Task{ID: "t1", Status: domain.StatusInProgress, Assignee: "alice"}))
	require.NoError(t, s.SetStatus("t1", domain.StatusClosed))

	task, err := s.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, task.Status)
	// Other fields survive the status write.
	assert.Equal(t, "alice", task.Assignee)
}

func TestStore_SetStatus_MissingTaskNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.SetStatus("ghost", domain.StatusClosed))
}

func TestStore_Audit(t *testing.T) {
	s := newTestStore(t)

	for _, rec := range []domain.AuditRecord{
		{Actor: "alice", Action: "sling_assigned", Target: "t1", Time: time.Now()},
		{Actor: "user", Action: "task_closed", Target: "t1", Time: time.Now()},
		{Actor: "bob", Action: "spawn", Target: "t2", Time: time.Now()},
	} {
		require.NoError(t, s.Append(rec))
	}

	recent, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "spawn", recent[0].Action)
	assert.Equal(t, "task_closed", recent[1].Action)

	// History matches by target or by actor.
	history, err := s.History("t1", "bob")
	require.NoError(t, err)
	require.Len(t, history, 3)

	history, err = s.History("t1", "")
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestStore_Mailbox(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Send(domain.Message{Sender: "user", Receiver: "alice", Subject: "hi", Body: "first", Time: time.Now()})
	require.NoError(t, err)
	id2, err := s.Send(domain.Message{Sender: "user", Receiver: "bob", Body: "second", Time: time.Now().Add(time.Second)})
	require.NoError(t, err)
	assert.Equal(t, id1+1, id2)

	inbox, err := s.Inbox()
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "second", inbox[0].Body)
	assert.Equal(t, domain.MailUnread, inbox[0].Status)

	msg, err := s.Read(id1)
	require.NoError(t, err)
	assert.Equal(t, "first", msg.Body)
	assert.Equal(t, domain.MailRead, msg.Status)

	// The read mark persists.
	inbox, err = s.Inbox()
	require.NoError(t, err)
	for _, m := range inbox {
		if m.ID == id1 {
			assert.Equal(t, domain.MailRead, m.Status)
		}
	}

	_, err = s.Read(999)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestStore_Rigs(t *testing.T) {
	s := newTestStore(t)
	rigs := s.Rigs()

	require.NoError(t, rigs.Put(domain.Rig{Name: "backend", Path: "/srv/backend", Repo: "git@example.com:backend.git", Status: "active"}))
	require.NoError(t, rigs.Put(domain.Rig{Name: "api", Path: "/srv/api", Status: "active"}))

	rig, err := rigs.Get("backend")
	require.NoError(t, err)
	require.NotNil(t, rig)
	assert.Equal(t, "git@example.com:backend.git", rig.Repo)

	missing, err := rigs.Get("ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := rigs.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "api", list[0].Name)
	assert.Equal(t, "backend", list[1].Name)
}

func TestStore_Costs(t *testing.T) {
	s := newTestStore(t)
	costs := s.Costs()

	require.NoError(t, costs.Add(domain.CostEntry{TaskID: "t1", Agent: "alice", Model: "opus", CostUSD: 0.5}))
	require.NoError(t, costs.Add(domain.CostEntry{TaskID: "t2", Agent: "bob", Model: "sonnet", CostUSD: 0.1}))

	entries, err := costs.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "t2", entries[0].TaskID)
	assert.Equal(t, "t1", entries[1].TaskID)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := New(path)
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Save(&domain.Task{ID: "t1", Title: "persisted", Status: domain.StatusOpen}))

	reopened := New(path)
	task, err := reopened.Get("t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "persisted", task.Title)
}
