package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Типы уведомлений.
const (
	NotificationTaskAssigned = "task_assigned"
	NotificationTaskUpdated  = "task_updated"
)

// Notification отдаётся клиенту как есть (по websocket и в списке),
// поэтому в отличие от остальных моделей несёт json-теги.
type Notification struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"not null;index" json:"user_id"`
	Type      string          `gorm:"not null" json:"type"`
	Payload   json.RawMessage `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ReadAt    *time.Time      `json:"read_at"`
}
