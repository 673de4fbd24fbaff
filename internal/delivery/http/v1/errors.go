package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

const (
	msgMissingFields   = "Please add all fields"
	msgUserExists      = "User already exists"
	msgNoAccount       = "No account found with this email. Please register to get started."
	msgInvalidPassword = "Invalid password. Please try again."
	msgEmptyTaskText   = "Please add a text value"
	msgTaskNotFound    = "Task not found"
	msgNotAuthorized   = "Not authorized"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"message": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// abortServiceError maps every service failure to exactly one HTTP
// status. Anything it does not recognize becomes a generic 500 with
// no internal detail.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyTaskText):
		abort(c, newBadRequestError(msgEmptyTaskText))
	case errors.Is(err, services.ErrUserAlreadyExists):
		abort(c, newBadRequestError(msgUserExists))
	case errors.Is(err, services.ErrUserPasswordMismatch):
		abort(c, newBadRequestError(msgInvalidPassword))
	case errors.Is(err, services.ErrUserNotFound):
		abort(c, newNotFoundError(msgNoAccount))
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(msgTaskNotFound))
	case errors.Is(err, services.ErrTokenInvalid), errors.Is(err, services.ErrTokenExpired):
		abort(c, newUnauthorizedError(msgNotAuthorized))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
