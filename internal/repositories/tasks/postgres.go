package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type PostgresRepository struct {
	pgPool *pgxpool.Pool
}

func NewPostgresRepository(pgPool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pgPool: pgPool}
}

func (r *PostgresRepository) Insert(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   text,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Text,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       text,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := r.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks by user id: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Text,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, taskID, text string, updatedAt time.Time) (*models.Task, error) {
	task := &models.Task{
		ID:        taskID,
		UserID:    userID,
		Text:      text,
		UpdatedAt: updatedAt,
	}

	const updateTaskQuery = `
UPDATE tasks
SET text = $1,
    updated_at = $2
WHERE id = $3 AND user_id = $4
RETURNING created_at
`
	err := r.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		task.Text,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	).Scan(&task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, taskID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := r.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
