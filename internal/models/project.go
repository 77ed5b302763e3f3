package models

import (
	"github.com/google/uuid"
	"time"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time

	// Связи
	Members  []User    `gorm:"many2many:project_members"`
	Tasks    []Task    `gorm:"foreignKey:ProjectID"`
	Messages []Message `gorm:"foreignKey:ProjectID"`
}
