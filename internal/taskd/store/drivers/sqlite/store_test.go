package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdhq/taskd/internal/taskd/domain"
	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "taskd-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func newTask(t *testing.T, s *Store, ownerID, title, description string, status domain.TaskStatus) domain.Task {
	t.Helper()

	now := time.Now().UTC()
	task := domain.Task{
		ID:          idx.New().String(),
		Title:       title,
		Description: description,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, s.Tasks().CreateTask(context.Background(), task))
	return task
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestUsersCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s, "alice")

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)

	byName, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)
}

func TestUsersLookupIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	newUser(t, s, "alice")

	_, err := s.Users().GetUserByUsername(ctx, "Alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersDuplicateUsernameConflicts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	newUser(t, s, "alice")

	dup := domain.User{
		ID:           idx.New().String(),
		Username:     "alice",
		PasswordHash: "other-hash",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestTasksGetScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")
	task := newTask(t, s, alice.ID, "buy milk", "", domain.TaskStatusOpen)

	got, err := s.Tasks().GetTaskForOwner(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, got.ID)

	// Another owner's task is indistinguishable from a missing one.
	_, err = s.Tasks().GetTaskForOwner(ctx, task.ID, bob.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Tasks().GetTaskForOwner(ctx, "no-such-id", alice.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTasksListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")

	t1 := newTask(t, s, alice.ID, "buy milk", "from the corner shop", domain.TaskStatusOpen)
	t2 := newTask(t, s, alice.ID, "buy bread", "sourdough", domain.TaskStatusDone)
	newTask(t, s, bob.ID, "buy cheese", "", domain.TaskStatusOpen)

	all, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{t1.ID, t2.ID}, taskIDs(all))

	open := domain.TaskStatusOpen
	byStatus, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID, Status: &open})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{t1.ID}, taskIDs(byStatus))

	bySearch, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID, Search: "BUY"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{t1.ID, t2.ID}, taskIDs(bySearch))

	// Search also matches descriptions.
	byDesc, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID, Search: "sourdough"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{t2.ID}, taskIDs(byDesc))

	// Filters are conjunctive.
	both, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID, Status: &open, Search: "bread"})
	require.NoError(t, err)
	require.Empty(t, both)
}

func TestTasksListOrderIsStable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newUser(t, s, "alice")
	t1 := newTask(t, s, alice.ID, "first", "", domain.TaskStatusOpen)
	t2 := newTask(t, s, alice.ID, "second", "", domain.TaskStatusOpen)
	t3 := newTask(t, s, alice.ID, "third", "", domain.TaskStatusOpen)

	for range 3 {
		got, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID})
		require.NoError(t, err)
		require.Equal(t, []string{t1.ID, t2.ID, t3.ID}, taskIDs(got))
	}
}

func TestTasksUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newUser(t, s, "alice")
	task := newTask(t, s, alice.ID, "buy milk", "", domain.TaskStatusOpen)

	task.Status = domain.TaskStatusDone
	task.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.Tasks().UpdateTask(ctx, task))

	got, err := s.Tasks().GetTaskForOwner(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusDone, got.Status)

	gone := task
	gone.ID = "no-such-id"
	require.ErrorIs(t, s.Tasks().UpdateTask(ctx, gone), store.ErrNotFound)
}

func TestTasksDeleteScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")
	task := newTask(t, s, alice.ID, "buy milk", "", domain.TaskStatusOpen)

	require.ErrorIs(t, s.Tasks().DeleteTaskForOwner(ctx, task.ID, bob.ID), store.ErrNotFound)

	require.NoError(t, s.Tasks().DeleteTaskForOwner(ctx, task.ID, alice.ID))
	require.ErrorIs(t, s.Tasks().DeleteTaskForOwner(ctx, task.ID, alice.ID), store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newUser(t, s, "alice")

	sentinel := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now().UTC()
		task := domain.Task{
			ID:        idx.New().String(),
			Title:     "should not survive",
			Status:    domain.TaskStatusOpen,
			OwnerID:   alice.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Tasks().CreateTask(ctx, task); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	tasks, err := s.Tasks().ListTasks(ctx, store.TaskFilter{OwnerID: alice.ID})
	require.NoError(t, err)
	require.Empty(t, tasks)
}
