package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		ID:    uuid.New(),
		Send:  make(chan []byte, 16),
		Rooms: make(map[Room]bool),
		Hub:   hub,
	}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case raw := <-c.Send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected an event, send channel is empty")
		return Event{}
	}
}

func TestRegisterIdentityJoinsUserRoom(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.registerClient(client)

	userID := uuid.New()
	hub.RegisterIdentity(client, userID)

	assert.True(t, client.IsInRoom(UserRoom(userID)))
	assert.Equal(t, 1, hub.RoomSize(UserRoom(userID)))

	// Повторная регистрация того же id ничего не меняет
	hub.RegisterIdentity(client, userID)
	assert.Equal(t, 1, hub.RoomSize(UserRoom(userID)))
}

func TestRegisterIdentityIgnoresNilUser(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.registerClient(client)

	hub.RegisterIdentity(client, uuid.Nil)

	assert.Empty(t, client.GetRooms())
}

func TestRegisterIdentityLastWriteWins(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.registerClient(client)

	first := uuid.New()
	second := uuid.New()

	hub.RegisterIdentity(client, first)
	hub.RegisterIdentity(client, second)

	assert.False(t, client.IsInRoom(UserRoom(first)))
	assert.True(t, client.IsInRoom(UserRoom(second)))
	assert.Equal(t, 0, hub.RoomSize(UserRoom(first)))
}

func TestJoinProjectAccumulates(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.registerClient(client)

	projectA := uuid.New()
	projectB := uuid.New()

	hub.JoinProject(client, projectA)
	hub.JoinProject(client, projectB)

	assert.True(t, client.IsInRoom(ProjectRoom(projectA)))
	assert.True(t, client.IsInRoom(ProjectRoom(projectB)))
}

func TestBroadcastDeliversToAllRoomMembers(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	hub.registerClient(a)
	hub.registerClient(b)

	projectID := uuid.New()
	hub.JoinProject(a, projectID)
	hub.JoinProject(b, projectID)

	hub.Broadcast(ProjectRoom(projectID), TypeMessage, map[string]string{"content": "hi"})

	for _, client := range []*Client{a, b} {
		event := receiveEvent(t, client)
		assert.Equal(t, TypeMessage, event.Type)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(event.Data, &payload))
		assert.Equal(t, "hi", payload["content"])
	}
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.registerClient(client)

	// Адресат офлайн: рассылка в пустую комнату — не ошибка
	hub.Broadcast(UserRoom(uuid.New()), TypeNotification, map[string]string{"x": "y"})

	assert.Empty(t, client.Send)
}

func TestBroadcastSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	member := newTestClient(hub)
	outsider := newTestClient(hub)
	hub.registerClient(member)
	hub.registerClient(outsider)

	projectID := uuid.New()
	hub.JoinProject(member, projectID)
	hub.JoinProject(outsider, uuid.New())

	hub.Broadcast(ProjectRoom(projectID), TypeMessage, nil)

	assert.Len(t, member.Send, 1)
	assert.Empty(t, outsider.Send)
}

func TestUnregisterLeavesAllRooms(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	stays := newTestClient(hub)
	hub.registerClient(client)
	hub.registerClient(stays)

	userID := uuid.New()
	projectID := uuid.New()
	hub.RegisterIdentity(client, userID)
	hub.JoinProject(client, projectID)
	hub.JoinProject(stays, projectID)

	hub.unregisterClient(client)

	assert.Equal(t, 0, hub.RoomSize(UserRoom(userID)))
	assert.Equal(t, 1, hub.RoomSize(ProjectRoom(projectID)))

	// Повторная отмена регистрации безопасна
	hub.unregisterClient(client)
}

func TestMultipleConnectionsSameUser(t *testing.T) {
	hub := NewHub()
	tab1 := newTestClient(hub)
	tab2 := newTestClient(hub)
	hub.registerClient(tab1)
	hub.registerClient(tab2)

	userID := uuid.New()
	hub.RegisterIdentity(tab1, userID)
	hub.RegisterIdentity(tab2, userID)

	hub.Broadcast(UserRoom(userID), TypeNotification, nil)

	assert.Len(t, tab1.Send, 1)
	assert.Len(t, tab2.Send, 1)
}
