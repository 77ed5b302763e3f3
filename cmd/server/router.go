package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/avoronova/taskflow/internal/handlers"
	"github.com/avoronova/taskflow/internal/middleware"
	"github.com/avoronova/taskflow/pkg/auth"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Project      *handlers.ProjectHandler
	Task         *handlers.TaskHandler
	Message      *handlers.MessageHandler
	Notification *handlers.NotificationHandler
	WebSocket    *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, h *Handlers, jwtMgr *auth.JWTManager, rdb *redis.Client) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "name": "TaskFlow API"})
	})

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// API endpoints
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users", h.User.ListUsers)
		api.GET("/users/me", h.User.GetMe)

		api.GET("/projects", h.Project.GetMyProjects)
		api.POST("/projects", h.Project.CreateProject)
		api.GET("/projects/:id", h.Project.GetProject)
		api.DELETE("/projects/:id", h.Project.DeleteProject)
		api.POST("/projects/:id/members", h.Project.AddMember)
		api.DELETE("/projects/:id/members/:userId", h.Project.RemoveMember)

		api.GET("/tasks", h.Task.ListTasks)
		api.POST("/tasks", h.Task.CreateTask)
		api.PATCH("/tasks/:id", h.Task.UpdateTask)
		api.DELETE("/tasks/:id", h.Task.DeleteTask)

		api.GET("/messages/:projectId", h.Message.GetProjectMessages)

		api.GET("/notifications", h.Notification.GetNotifications)
		api.POST("/notifications/read", h.Notification.MarkRead)
	}

	// Идентичность и комнаты объявляются событиями после подключения
	r.GET("/ws", h.WebSocket.HandleWebSocket)
}
