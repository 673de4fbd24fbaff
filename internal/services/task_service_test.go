package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/repositories/tasks"
)

// fakeTaskRepo implements tasks.Repository in memory with the same
// ownership semantics as the scoped SQL: a task owned by someone else
// is indistinguishable from a missing one.
type fakeTaskRepo struct {
	items []*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{}
}

func (r *fakeTaskRepo) Insert(_ context.Context, task *models.Task) error {
	clone := *task
	r.items = append(r.items, &clone)
	return nil
}

func (r *fakeTaskRepo) SelectByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	result := make([]*models.Task, 0)
	for _, task := range r.items {
		if task.UserID == userID {
			clone := *task
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, userID, taskID, text string, updatedAt time.Time) (*models.Task, error) {
	for _, task := range r.items {
		if task.ID == taskID && task.UserID == userID {
			task.Text = text
			task.UpdatedAt = updatedAt
			clone := *task
			return &clone, nil
		}
	}
	return nil, tasks.ErrNotFound
}

func (r *fakeTaskRepo) Delete(_ context.Context, userID, taskID string) error {
	for i, task := range r.items {
		if task.ID == taskID && task.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return tasks.ErrNotFound
}

func newTestTaskService(repo tasks.Repository) TaskService {
	return NewTaskService(zerolog.Nop(), repo)
}

func TestTaskService_CreateTask(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)

	task, err := svc.CreateTask(context.Background(), "user-a", "  buy milk  ")
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, "user-a", task.UserID)
	require.Equal(t, "buy milk", task.Text, "text is stored trimmed")
	require.Len(t, repo.items, 1)
}

func TestTaskService_CreateTaskEmptyText(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateTask(ctx, "user-a", text)
		require.ErrorIs(t, err, ErrEmptyTaskText, "text %q", text)
	}
	require.Empty(t, repo.items, "nothing may be persisted")
}

func TestTaskService_GetTasksByUserIDScoping(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	first, err := svc.CreateTask(ctx, "user-a", "task one")
	require.NoError(t, err)
	second, err := svc.CreateTask(ctx, "user-a", "task two")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, "user-b", "not yours")
	require.NoError(t, err)

	list, err := svc.GetTasksByUserID(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID, "insertion order")
	require.Equal(t, second.ID, list[1].ID)

	list, err = svc.GetTasksByUserID(ctx, "user-c")
	require.NoError(t, err)
	require.Empty(t, list, "no tasks is an empty list, not an error")
}

func TestTaskService_UpdateTask(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "user-a", "before")
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, "user-a", task.ID, "after")
	require.NoError(t, err)
	require.Equal(t, "after", updated.Text)
	require.Equal(t, task.ID, updated.ID)

	_, err = svc.UpdateTask(ctx, "user-a", task.ID, "   ")
	require.ErrorIs(t, err, ErrEmptyTaskText)

	_, err = svc.UpdateTask(ctx, "user-a", "missing-id", "whatever")
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_UpdateTaskOfAnotherUser(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "user-a", "owned by a")
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, "user-b", task.ID, "stolen")
	require.ErrorIs(t, err, ErrTaskNotFound)

	list, err := svc.GetTasksByUserID(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "owned by a", list[0].Text, "task must be unchanged")
}

func TestTaskService_DeleteTask(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "user-a", "to delete")
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, "user-b", task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound, "foreign delete must fail")
	require.Len(t, repo.items, 1, "task must still exist")

	err = svc.DeleteTask(ctx, "user-a", task.ID)
	require.NoError(t, err)
	require.Empty(t, repo.items)

	err = svc.DeleteTask(ctx, "user-a", task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}
