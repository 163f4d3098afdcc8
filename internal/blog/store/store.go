package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/quill/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this and expose sub-repositories to keep concerns tidy.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during email login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns it with the assigned id and
	// timestamps. A taken email or nickname yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
}
