package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   uuid.UUID  `json:"project_id" binding:"required"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress completed blocked"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest — частичное обновление: nil-поле не трогается.
// Снять исполнителя можно, передав в assignee_id нулевой uuid.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress completed blocked"`
	DueDate     *time.Time `json:"due_date"`
}
