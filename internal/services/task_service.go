package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/repositories/tasks"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  tasks.Repository
}

func NewTaskService(
	logger zerolog.Logger,
	taskRepo tasks.Repository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  taskRepo,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, userID, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Error().
			Str("user_id", userID).
			Msg("empty task text")
		return nil, ErrEmptyTaskText
	}

	now := time.Now()
	task := &models.Task{
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, fmt.Errorf("failed to generate task uuid: %w", err)
	}
	task.ID = taskUUID.String()

	err = s.tasks.Insert(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", userID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	taskList, err := s.tasks.SelectByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(taskList)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return taskList, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Error().
			Str("task_id", taskID).
			Msg("empty task text")
		return nil, ErrEmptyTaskText
	}

	task, err := s.tasks.Update(ctx, userID, taskID, text, time.Now())
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			s.logger.Error().
				Str("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", userID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	err := s.tasks.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			s.logger.Error().
				Str("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}
