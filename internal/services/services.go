package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrTaskNotFound         = errors.New("task not found")
	ErrEmptyTaskText        = errors.New("empty task text")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
)

type AuthService interface {
	// Register creates a user with the given name, email and password.
	//
	// The password is hashed with a per-user random salt before it is
	// stored; the plaintext is never persisted. A token for the new
	// user is issued as part of the result.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password and issues
	// a fresh token.
	//
	// It returns ErrUserNotFound if no user with the given email
	// exists, or ErrUserPasswordMismatch if the password does not
	// match the stored hash.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// GetUserByID resolves a user by id, or ErrUserNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TokenService issues and verifies stateless signed identity tokens.
// There is no server-side session table: the token itself carries the
// subject user id and the expiry, and its signature is the only proof.
type TokenService interface {
	// Issue produces a signed token embedding the given user id,
	// valid until the returned expiry instant.
	Issue(userID string) (token string, expiresAt time.Time, err error)

	// Verify checks the token's signature and expiry and returns the
	// embedded user id. No claim is trusted before the signature is
	// validated. It returns ErrTokenExpired for an expired token and
	// ErrTokenInvalid for anything malformed or tampered with.
	Verify(token string) (userID string, err error)
}

type TaskService interface {
	// CreateTask stores a new task owned by userID. It returns
	// ErrEmptyTaskText if the text is empty after trimming.
	CreateTask(ctx context.Context, userID, text string) (*models.Task, error)

	// GetTasksByUserID returns every task owned by the given user,
	// oldest first. No tasks is an empty slice, not an error.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask replaces the text of the caller's task. A task that
	// does not exist or belongs to another user is ErrTaskNotFound
	// either way.
	UpdateTask(ctx context.Context, userID, taskID, text string) (*models.Task, error)

	// DeleteTask removes the caller's task, with the same not-found
	// semantics as UpdateTask.
	DeleteTask(ctx context.Context, userID, taskID string) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User           *models.User
	Token          string
	TokenExpiresAt time.Time
}
