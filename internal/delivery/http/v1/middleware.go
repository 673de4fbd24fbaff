package v1

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

const currentUserCtxKey = "current_user"

// HandleAuthMiddleware is the sole authorization gate. It extracts the
// bearer token, verifies its signature and expiry, resolves the subject
// user and stores it in the request context. No protected handler runs
// without a resolved identity.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	userID, err := h.tokens.Verify(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to verify token")
		abort(c, newUnauthorizedError(msgNotAuthorized))
		return
	}

	user, err := h.auth.GetUserByID(c, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.logger.Error().
				Str("user_id", userID).
				Msg("token subject no longer exists")
			abort(c, newUnauthorizedError(msgNotAuthorized))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to resolve user")
		abortServiceError(c, err)
		return
	}

	c.Set(currentUserCtxKey, user)
	c.Next()
}

func currentUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserCtxKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
