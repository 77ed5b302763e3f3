package services

import (
	"log"
	"strings"
	"time"

	"github.com/avoronova/taskflow/internal/models"
	ws "github.com/avoronova/taskflow/internal/websocket"
	"github.com/google/uuid"
)

// Broadcaster — срез Hub, нужный сервисам: односторонняя рассылка
// без подтверждения доставки.
type Broadcaster interface {
	Broadcast(room ws.Room, eventType ws.EventType, payload interface{})
}

type MessageStore interface {
	CreateMessage(message *models.Message) error
	ListProjectMessages(projectID uuid.UUID) ([]models.Message, error)
	GetUser(id string) (*models.User, error)
}

// EnrichedMessage — сохранённое сообщение, дополненное именем отправителя.
// Имя вычисляется при чтении/рассылке и никогда не хранится.
type EnrichedMessage struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	SenderName *string   `json:"sender_name"`
}

// MessagePipeline сохраняет сообщения чата и раздаёт их в комнату проекта.
// Рассылка — побочный эффект после записи; источник правды всегда база.
type MessagePipeline struct {
	store MessageStore
	hub   Broadcaster
}

func NewMessagePipeline(store MessageStore, hub Broadcaster) *MessagePipeline {
	return &MessagePipeline{store: store, hub: hub}
}

// Submit сохраняет сообщение и рассылает его в project:<id>.
// Транспорт чата best-effort: невалидный ввод молча отбрасывается,
// ошибка записи логируется и рассылка не выполняется, ретраев нет.
func (p *MessagePipeline) Submit(projectID, senderID uuid.UUID, content string) {
	content = strings.TrimSpace(content)
	if projectID == uuid.Nil || senderID == uuid.Nil || content == "" {
		return
	}

	message := &models.Message{
		ProjectID: projectID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := p.store.CreateMessage(message); err != nil {
		log.Printf("Failed to save message: %v", err)
		return
	}

	p.hub.Broadcast(ws.ProjectRoom(projectID), ws.TypeMessage, p.enrich(message))
}

// History возвращает всю историю проекта от старых к новым, с sender_name.
func (p *MessagePipeline) History(projectID uuid.UUID) ([]EnrichedMessage, error) {
	messages, err := p.store.ListProjectMessages(projectID)
	if err != nil {
		return nil, err
	}

	result := make([]EnrichedMessage, len(messages))
	for i := range messages {
		enriched := toEnriched(&messages[i])
		if messages[i].Sender.ID != uuid.Nil {
			name := messages[i].Sender.Name
			enriched.SenderName = &name
		}
		result[i] = enriched
	}

	return result, nil
}

func (p *MessagePipeline) enrich(message *models.Message) EnrichedMessage {
	enriched := toEnriched(message)

	sender, err := p.store.GetUser(message.SenderID.String())
	if err != nil {
		// Сообщение уже сохранено — рассылаем без имени.
		log.Printf("Failed to get sender %s: %v", message.SenderID, err)
		return enriched
	}

	enriched.SenderName = &sender.Name
	return enriched
}

func toEnriched(message *models.Message) EnrichedMessage {
	return EnrichedMessage{
		ID:        message.ID,
		ProjectID: message.ProjectID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}
