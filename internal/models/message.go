package models

import (
	"github.com/google/uuid"
	"time"
)

// Message после записи не изменяется и не удаляется.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID `gorm:"not null;index"`
	SenderID  uuid.UUID `gorm:"not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time

	// Связи
	Sender  User    `gorm:"foreignKey:SenderID"`
	Project Project `gorm:"foreignKey:ProjectID"`
}
