package models

import (
	"github.com/google/uuid"
	"time"
)

// Статусы задач. "pending" в сводке — всё, что не completed.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusBlocked    = "blocked"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	ProjectID   uuid.UUID  `gorm:"not null;index"`
	AssigneeID  *uuid.UUID `gorm:"index"`
	Priority    string     `gorm:"default:'medium';check:priority IN ('low','medium','high')"`
	Status      string     `gorm:"default:'todo';check:status IN ('todo','in_progress','completed','blocked')"`
	DueDate     *time.Time
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Связи
	Project  Project `gorm:"foreignKey:ProjectID"`
	Assignee *User   `gorm:"foreignKey:AssigneeID"`
}
