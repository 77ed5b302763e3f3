package database

import (
	"github.com/avoronova/taskflow/internal/models"
	"github.com/google/uuid"
)

func (d *Database) CreateTask(task *models.Task) error {
	return d.db.Create(task).Error
}

func (d *Database) GetTask(id string) (*models.Task, error) {
	var task models.Task
	if err := d.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (d *Database) UpdateTask(task *models.Task) error {
	return d.db.Save(task).Error
}

func (d *Database) DeleteTask(id string) error {
	return d.db.Delete(&models.Task{}, "id = ?", id).Error
}

func (d *Database) ListProjectTasks(projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task

	err := d.db.
		Where("project_id = ?", projectID).
		Order("status ASC").
		Order("priority DESC").
		Order("due_date ASC").
		Find(&tasks).Error

	return tasks, err
}

func (d *Database) ListAssignedTasks(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task

	err := d.db.
		Where("assignee_id = ?", userID).
		Order("updated_at DESC").
		Find(&tasks).Error

	return tasks, err
}
