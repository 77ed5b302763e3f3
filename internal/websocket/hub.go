package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// EventType определяет типы событий
type EventType string

const (
	// Системные типы
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// Клиент -> сервер
	TypeRegister    EventType = "register"
	TypeJoinProject EventType = "join_project"

	// Сервер -> клиент (message идёт в обе стороны)
	TypeMessage      EventType = "message"
	TypeNotification EventType = "notification"
)

// Event — конверт для всех событий на проводе.
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID // uuid.Nil до события register
	Conn   *websocket.Conn
	Send   chan []byte
	Rooms  map[Room]bool
	Hub    *Hub
	mu     sync.RWMutex
}

// Hub — реестр живых соединений и членства в комнатах.
// Единственное разделяемое изменяемое состояние подсистемы: все мутации
// (join, leave, register) атомарны относительно параллельных рассылок.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты в комнатах; комната пользователя заменяет отдельный
	// индекс по UserID — несколько вкладок это несколько членов.
	rooms map[Room]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[Room]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	log.Printf("Client connected: %s", client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		// Удаляем из всех комнат
		client.mu.Lock()
		for room := range client.Rooms {
			h.removeFromRoomUnsafe(client, room)
		}
		client.mu.Unlock()

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client disconnected: %s (User: %s)", client.ID, client.UserID)
	}
}

// RegisterIdentity связывает соединение с пользователем и вводит его в
// комнату user:<id>. Пустой id игнорируется; повторный вызов безопасен,
// при смене id действует последний (last write wins).
func (h *Hub) RegisterIdentity(client *Client, userID uuid.UUID) {
	if userID == uuid.Nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	prev := client.UserID
	client.UserID = userID
	if prev != uuid.Nil && prev != userID {
		h.removeFromRoomUnsafe(client, UserRoom(prev))
	}
	h.addToRoomUnsafe(client, UserRoom(userID))
	client.mu.Unlock()
}

// JoinProject вводит соединение в комнату project:<id>. Авторизация на
// этом уровне не проверяется; комнаты разных проектов накапливаются.
func (h *Hub) JoinProject(client *Client, projectID uuid.UUID) {
	if projectID == uuid.Nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	h.addToRoomUnsafe(client, ProjectRoom(projectID))
	client.mu.Unlock()
}

func (h *Hub) addToRoomUnsafe(client *Client, room Room) {
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[uuid.UUID]*Client)
	}
	h.rooms[room][client.ID] = client
	client.Rooms[room] = true
}

func (h *Hub) removeFromRoomUnsafe(client *Client, room Room) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.Rooms, room)
}

// Broadcast отправляет событие всем соединениям комнаты. Подтверждения
// доставки нет: пустая комната — штатный случай, а не ошибка (адресат
// офлайн и заберёт состояние следующим опросом).
func (h *Hub) Broadcast(room Room, eventType EventType, payload interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Broadcast marshal error for %s: %v", room.Key(), err)
			return
		}
		event.Data = data
	}

	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Broadcast marshal error for %s: %v", room.Key(), err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[room] {
		select {
		case client.Send <- msg:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// RoomSize возвращает число соединений в комнате.
func (h *Hub) RoomSize(room Room) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Event{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
