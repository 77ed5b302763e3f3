package handlers

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/avoronova/taskflow/internal/services"
	ws "github.com/avoronova/taskflow/internal/websocket"
)

// EventHandler разбирает прикладные события websocket-клиента.
// Отправитель берётся из payload: авторизация — забота HTTP-слоя,
// комнаты присоединяются по голому запросу.
type EventHandler struct {
	pipeline *services.MessagePipeline
}

func NewEventHandler(pipeline *services.MessagePipeline) *EventHandler {
	return &EventHandler{pipeline: pipeline}
}

type messagePayload struct {
	ProjectID uuid.UUID `json:"project_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
}

func (h *EventHandler) HandleEvent(client *ws.Client, event *ws.Event) error {
	switch event.Type {
	case ws.TypeMessage:
		var payload messagePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return ws.ErrInvalidEvent
		}

		// Fire-and-forget: невалидный payload и сбой записи глотаются
		// внутри пайплайна, error-событие клиенту не шлётся.
		h.pipeline.Submit(payload.ProjectID, payload.SenderID, payload.Content)
		return nil

	default:
		return nil
	}
}
