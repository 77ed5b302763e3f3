package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/avoronova/taskflow/internal/models"
	ws "github.com/avoronova/taskflow/internal/websocket"
	"github.com/google/uuid"
)

type NotificationStore interface {
	CreateNotification(notification *models.Notification) error
	ListUserNotifications(userID uuid.UUID, limit int) ([]models.Notification, error)
	MarkNotificationsRead(userID uuid.UUID, ids []uuid.UUID) error
}

// TaskPayload — полезная нагрузка уведомления о задаче.
type TaskPayload struct {
	TaskID uuid.UUID `json:"taskId"`
	Title  string    `json:"title"`
	Status string    `json:"status,omitempty"`
}

// NotificationService создаёт уведомления и пытается доставить их в
// комнату user:<id>. Адресат офлайн — уведомление ждёт опроса списка.
type NotificationService struct {
	store NotificationStore
	hub   Broadcaster
}

func NewNotificationService(store NotificationStore, hub Broadcaster) *NotificationService {
	return &NotificationService{store: store, hub: hub}
}

// Notify сохраняет уведомление и рассылает его владельцу. Ошибки только
// логируются: сбой уведомления не должен ронять породивший его запрос.
func (s *NotificationService) Notify(userID uuid.UUID, notificationType string, payload TaskPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal notification payload: %v", err)
		return
	}

	notification := &models.Notification{
		UserID:    userID,
		Type:      notificationType,
		Payload:   data,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateNotification(notification); err != nil {
		log.Printf("Failed to save notification: %v", err)
		return
	}

	s.hub.Broadcast(ws.UserRoom(userID), ws.TypeNotification, notification)
}

// TaskCreated шлёт task_assigned, если у созданной задачи есть исполнитель.
func (s *NotificationService) TaskCreated(task *models.Task) {
	if task.AssigneeID == nil {
		return
	}

	s.Notify(*task.AssigneeID, models.NotificationTaskAssigned, TaskPayload{
		TaskID: task.ID,
		Title:  task.Title,
	})
}

// TaskUpdated шлёт task_updated исполнителю при любом изменении задачи
// с исполнителем, не только при смене статуса.
func (s *NotificationService) TaskUpdated(task *models.Task) {
	if task.AssigneeID == nil {
		return
	}

	s.Notify(*task.AssigneeID, models.NotificationTaskUpdated, TaskPayload{
		TaskID: task.ID,
		Title:  task.Title,
		Status: task.Status,
	})
}

// List возвращает последние 50 уведомлений пользователя, новые первыми.
func (s *NotificationService) List(userID uuid.UUID) ([]models.Notification, error) {
	return s.store.ListUserNotifications(userID, 50)
}

// MarkRead помечает прочитанными свои уведомления из ids. Чужие id молча
// игнорируются, повторный вызов ничего не меняет.
func (s *NotificationService) MarkRead(userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.store.MarkNotificationsRead(userID, ids)
}
