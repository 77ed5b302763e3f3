package database

import (
	"github.com/avoronova/taskflow/internal/models"
	"github.com/google/uuid"
)

func (d *Database) CreateMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// ListProjectMessages возвращает всю историю проекта от старых к новым.
// Клиент при входе в проект забирает историю целиком, дозагрузки дельты нет.
func (d *Database) ListProjectMessages(projectID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Preload("Sender").
		Find(&messages).Error

	return messages, err
}
