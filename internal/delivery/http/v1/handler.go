package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleGetMe(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	tokens services.TokenService
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	tokenService services.TokenService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		tokens: tokenService,
		tasks:  taskService,
	}
}

// RegisterRoutes wires every route of the API onto the given router.
// Task routes and /users/me sit behind the auth middleware; nothing
// else re-implements token parsing.
func RegisterRoutes(router gin.IRouter, h Handler) {
	usersRouter := router.Group("/users")
	usersRouter.POST("", h.HandleRegister)
	usersRouter.POST("/login", h.HandleLogin)
	usersRouter.GET("/me", h.HandleAuthMiddleware, h.HandleGetMe)

	tasksRouter := router.Group("/tasks")
	tasksRouter.Use(h.HandleAuthMiddleware)
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
