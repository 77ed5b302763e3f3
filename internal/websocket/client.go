package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 512 * 1024 // 512KB
)

// ClientEventHandler обрабатывает прикладные события (chat message и т.п.).
type ClientEventHandler interface {
	HandleEvent(client *Client, event *Event) error
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.New(),
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Rooms: make(map[Room]bool),
		Hub:   hub,
	}
}

// registerPayload и joinPayload — данные служебных событий клиента.
// Невалидные значения молча отбрасываются, error-событие не шлётся.
type registerPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

type joinPayload struct {
	ProjectID uuid.UUID `json:"project_id"`
}

// ReadPump читает события от клиента
func (c *Client) ReadPump(handler ClientEventHandler) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var event Event
		err := c.Conn.ReadJSON(&event)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch event.Type {
		case TypePong:
			continue

		case TypeRegister:
			var payload registerPayload
			if err := json.Unmarshal(event.Data, &payload); err != nil {
				continue
			}
			c.Hub.RegisterIdentity(c, payload.UserID)
			continue

		case TypeJoinProject:
			var payload joinPayload
			if err := json.Unmarshal(event.Data, &payload); err != nil {
				continue
			}
			c.Hub.JoinProject(c, payload.ProjectID)
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &event); err != nil {
				log.Printf("Error handling event: %v", err)
			}
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) IsInRoom(room Room) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rooms[room]
}

func (c *Client) GetRooms() []Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]Room, 0, len(c.Rooms))
	for room := range c.Rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
