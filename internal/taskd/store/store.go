package store

import (
	"context"
	"errors"

	"github.com/taskdhq/taskd/internal/taskd/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// TaskFilter narrows a task listing. OwnerID is mandatory: every task query
// is conjoined with the owner so a forgotten check can never leak another
// user's rows. Status and Search are optional and conjunctive.
type TaskFilter struct {
	OwnerID string
	Status  *domain.TaskStatus // exact match when set
	Search  string             // case-insensitive substring over title or description
}

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is a case-sensitive exact-match lookup used during
	// signin and the signup pre-check.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// The username UNIQUE constraint is the final arbiter for concurrent
	// registrations: violations surface as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

type Tasks interface {
	// CreateTask inserts a new task (id and initial status set by the caller).
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskForOwner returns the task with id owned by ownerID. A task owned
	// by someone else is indistinguishable from a missing one: ErrNotFound.
	GetTaskForOwner(ctx context.Context, id, ownerID string) (domain.Task, error)

	// ListTasks returns tasks matching the filter in creation order.
	ListTasks(ctx context.Context, f TaskFilter) ([]domain.Task, error)

	// UpdateTask persists the full current state of an existing task.
	// Returns ErrNotFound if the row no longer exists.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTaskForOwner removes the task with id owned by ownerID.
	// Returns ErrNotFound when no owned row matches.
	DeleteTaskForOwner(ctx context.Context, id, ownerID string) error
}
