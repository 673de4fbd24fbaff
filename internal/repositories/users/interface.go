package users

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

// Repository persists user identities. Email uniqueness is
// enforced by the storage itself (unique index), never by a
// pre-check, so concurrent duplicate registrations cannot race.
type Repository interface {
	// Insert stores a new user. It returns ErrEmailTaken if a
	// user with the same email already exists.
	Insert(ctx context.Context, user *models.User) error

	// SelectByEmail returns the user with the given email
	// or ErrNotFound.
	SelectByEmail(ctx context.Context, email string) (*models.User, error)

	// SelectByID returns the user with the given id or ErrNotFound.
	SelectByID(ctx context.Context, id string) (*models.User, error)
}
