package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronova/taskflow/internal/services"
)

type MessageHandler struct {
	pipeline *services.MessagePipeline
}

func NewMessageHandler(pipeline *services.MessagePipeline) *MessageHandler {
	return &MessageHandler{pipeline: pipeline}
}

// GetProjectMessages возвращает историю чата проекта от старых к новым.
// Клиент забирает историю целиком при входе и дальше живёт на рассылке.
func (h *MessageHandler) GetProjectMessages(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	messages, err := h.pipeline.History(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
