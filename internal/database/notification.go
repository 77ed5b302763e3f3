package database

import (
	"time"

	"github.com/avoronova/taskflow/internal/models"
	"github.com/google/uuid"
)

func (d *Database) CreateNotification(notification *models.Notification) error {
	return d.db.Create(notification).Error
}

// ListUserNotifications возвращает последние limit уведомлений, новые первыми.
func (d *Database) ListUserNotifications(userID uuid.UUID, limit int) ([]models.Notification, error) {
	var notifications []models.Notification

	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error

	return notifications, err
}

// MarkNotificationsRead проставляет read_at только своим непрочитанным
// уведомлениям: чужие id из списка молча игнорируются, повторный вызов
// не трогает уже выставленный read_at.
func (d *Database) MarkNotificationsRead(userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return d.db.Model(&models.Notification{}).
		Where("id IN ? AND user_id = ? AND read_at IS NULL", ids, userID).
		Update("read_at", time.Now()).Error
}
