package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var ErrNotFound = errors.New("task not found")

// Repository persists tasks. Update and Delete are scoped by the
// owning user id at the query level, so a task belonging to another
// user is indistinguishable from a missing one: both are ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, task *models.Task) error

	// SelectByUserID returns every task owned by the given user,
	// oldest first. An empty result is not an error.
	SelectByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// Update replaces the text of the task with the given id, but
	// only if it is owned by userID. Returns the updated task or
	// ErrNotFound.
	Update(ctx context.Context, userID, taskID, text string, updatedAt time.Time) (*models.Task, error)

	// Delete removes the task with the given id, but only if it is
	// owned by userID. Returns ErrNotFound otherwise.
	Delete(ctx context.Context, userID, taskID string) error
}
