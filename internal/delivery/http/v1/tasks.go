package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type taskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Text:      task.Text,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

type taskRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	user, ok := currentUserFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgEmptyTaskText))
		return
	}

	task, err := h.tasks.CreateTask(c, user.ID, req.Text)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	user, ok := currentUserFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	taskList, err := h.tasks.GetTasksByUserID(c, user.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abortServiceError(c, err)
		return
	}

	response := make([]taskResponse, len(taskList))
	for i, task := range taskList {
		response[i] = newTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	user, ok := currentUserFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(msgTaskNotFound))
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgEmptyTaskText))
		return
	}

	task, err := h.tasks.UpdateTask(c, user.ID, taskID, req.Text)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	user, ok := currentUserFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(msgTaskNotFound))
		return
	}

	err := h.tasks.DeleteTask(c, user.ID, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abortServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
