package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronova/taskflow/internal/database"
	"github.com/avoronova/taskflow/internal/middleware"
	"github.com/avoronova/taskflow/internal/models"
)

type ProjectHandler struct {
	db *database.Database
}

func NewProjectHandler(db *database.Database) *ProjectHandler {
	return &ProjectHandler{db: db}
}

// CreateProject создает новый проект
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		MemberIDs   []string `json:"member_ids"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateProject(project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	// Добавляем создателя и переданных участников
	if err := h.db.AddProjectMember(project.ID.String(), userID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add creator to project"})
		return
	}

	for _, memberID := range req.MemberIDs {
		if memberID != userID.String() {
			h.db.AddProjectMember(project.ID.String(), memberID)
		}
	}

	fullProject, _ := h.db.GetProject(project.ID.String())

	c.JSON(http.StatusCreated, formatProjectResponse(fullProject))
}

// GetMyProjects получает проекты, где пользователь создатель или участник
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	projects, err := h.db.ListUserProjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get projects"})
		return
	}

	result := make([]gin.H, len(projects))
	for i, project := range projects {
		result[i] = gin.H{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
			"created_by":  project.CreatedBy,
			"created_at":  project.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"projects": result})
}

// GetProject получает информацию о конкретном проекте
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID := c.Param("id")

	project, err := h.db.GetProject(projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, formatProjectResponse(project))
}

// AddMember добавляет участника в проект
func (h *ProjectHandler) AddMember(c *gin.Context) {
	projectID := c.Param("id")

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.GetProject(projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	if err := h.db.AddProjectMember(projectID, req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// RemoveMember удаляет участника из проекта. Идемпотентно: повторное
// удаление тоже отвечает ok.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	projectID := c.Param("id")
	userID := c.Param("userId")

	h.db.RemoveProjectMember(projectID, userID)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteProject удаляет проект вместе с задачами и сообщениями
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID := c.Param("id")

	if err := h.db.DeleteProject(projectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// formatProjectResponse форматирует ответ для проекта
func formatProjectResponse(project *models.Project) gin.H {
	members := make([]gin.H, len(project.Members))
	for i, member := range project.Members {
		members[i] = gin.H{
			"id":    member.ID,
			"name":  member.Name,
			"email": member.Email,
		}
	}

	return gin.H{
		"id":          project.ID,
		"name":        project.Name,
		"description": project.Description,
		"created_by":  project.CreatedBy,
		"created_at":  project.CreatedAt,
		"members":     members,
	}
}
