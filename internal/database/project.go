package database

import (
	"github.com/avoronova/taskflow/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (d *Database) CreateProject(project *models.Project) error {
	return d.db.Create(project).Error
}

func (d *Database) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := d.db.Preload("Members").First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects возвращает все проекты (используется дневной сводкой).
func (d *Database) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := d.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ListUserProjects возвращает проекты, где пользователь создатель или участник.
func (d *Database) ListUserProjects(userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project

	err := d.db.
		Distinct("projects.*").
		Joins("LEFT JOIN project_members pm ON pm.project_id = projects.id").
		Where("projects.created_by = ? OR pm.user_id = ?", userID, userID).
		Order("projects.created_at DESC").
		Find(&projects).Error

	return projects, err
}

func (d *Database) ListProjectMembers(projectID uuid.UUID) ([]models.User, error) {
	var project models.Project
	if err := d.db.Preload("Members").First(&project, "id = ?", projectID).Error; err != nil {
		return nil, err
	}
	return project.Members, nil
}

func (d *Database) AddProjectMember(projectID, userID string) error {
	var project models.Project
	var user models.User

	if err := d.db.First(&project, "id = ?", projectID).Error; err != nil {
		return err
	}

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return d.db.Model(&project).Association("Members").Append(&user)
}

func (d *Database) RemoveProjectMember(projectID, userID string) error {
	var project models.Project
	var user models.User

	if err := d.db.First(&project, "id = ?", projectID).Error; err != nil {
		return err
	}

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return d.db.Model(&project).Association("Members").Delete(&user)
}

// DeleteProject каскадно удаляет сообщения, задачи и участников проекта.
func (d *Database) DeleteProject(id string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Message{}, "project_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Task{}, "project_id = ?", id).Error; err != nil {
			return err
		}

		var project models.Project
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&project).Association("Members").Clear(); err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})
}
