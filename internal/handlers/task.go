package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronova/taskflow/internal/database"
	"github.com/avoronova/taskflow/internal/handlers/dto"
	"github.com/avoronova/taskflow/internal/middleware"
	"github.com/avoronova/taskflow/internal/models"
	"github.com/avoronova/taskflow/internal/services"
)

type TaskHandler struct {
	db       *database.Database
	notifier *services.NotificationService
}

func NewTaskHandler(db *database.Database, notifier *services.NotificationService) *TaskHandler {
	return &TaskHandler{db: db, notifier: notifier}
}

// ListTasks возвращает задачи проекта (?project_id=) либо задачи,
// назначенные текущему пользователю
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var tasks []models.Task
	var err error

	if raw := c.Query("project_id"); raw != "" {
		projectID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
			return
		}
		tasks, err = h.db.ListProjectTasks(projectID)
	} else {
		tasks, err = h.db.ListAssignedTasks(userID)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get tasks"})
		return
	}

	result := make([]gin.H, len(tasks))
	for i := range tasks {
		result[i] = formatTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, gin.H{"tasks": result})
}

// CreateTask создает задачу; исполнителю уходит task_assigned.
// Сбой уведомления никогда не роняет сам запрос.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Priority:    priority,
		Status:      status,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.db.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	h.notifier.TaskCreated(task)

	c.JSON(http.StatusCreated, formatTaskResponse(task))
}

// UpdateTask частично обновляет задачу; при любом изменении задачи с
// исполнителем ему уходит task_updated
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.db.GetTask(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == uuid.Nil {
			task.AssigneeID = nil
		} else {
			task.AssigneeID = req.AssigneeID
		}
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now()

	if err := h.db.UpdateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	h.notifier.TaskUpdated(task)

	c.JSON(http.StatusOK, formatTaskResponse(task))
}

// DeleteTask удаляет задачу
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.db.DeleteTask(taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// formatTaskResponse форматирует ответ для задачи
func formatTaskResponse(task *models.Task) gin.H {
	response := gin.H{
		"id":          task.ID,
		"title":       task.Title,
		"description": task.Description,
		"project_id":  task.ProjectID,
		"priority":    task.Priority,
		"status":      task.Status,
		"created_by":  task.CreatedBy,
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}

	if task.AssigneeID != nil {
		response["assignee_id"] = task.AssigneeID
	}
	if task.DueDate != nil {
		response["due_date"] = task.DueDate
	}

	return response
}
