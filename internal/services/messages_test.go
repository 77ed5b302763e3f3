package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronova/taskflow/internal/models"
	ws "github.com/avoronova/taskflow/internal/websocket"
)

type broadcastCall struct {
	Room    ws.Room
	Type    ws.EventType
	Payload interface{}
}

type fakeBroadcaster struct {
	calls []broadcastCall
}

func (b *fakeBroadcaster) Broadcast(room ws.Room, eventType ws.EventType, payload interface{}) {
	b.calls = append(b.calls, broadcastCall{Room: room, Type: eventType, Payload: payload})
}

type fakeMessageStore struct {
	messages  []models.Message
	users     map[uuid.UUID]models.User
	createErr error
	listErr   error
}

func (s *fakeMessageStore) CreateMessage(message *models.Message) error {
	if s.createErr != nil {
		return s.createErr
	}
	message.ID = uuid.New()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *fakeMessageStore) ListProjectMessages(projectID uuid.UUID) ([]models.Message, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var result []models.Message
	for _, m := range s.messages {
		if m.ProjectID == projectID {
			if sender, ok := s.users[m.SenderID]; ok {
				m.Sender = sender
			}
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *fakeMessageStore) GetUser(id string) (*models.User, error) {
	for _, user := range s.users {
		if user.ID.String() == id {
			u := user
			return &u, nil
		}
	}
	return nil, errors.New("record not found")
}

func newMessageFixture() (*fakeMessageStore, *fakeBroadcaster, *MessagePipeline, models.User) {
	sender := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	store := &fakeMessageStore{users: map[uuid.UUID]models.User{sender.ID: sender}}
	hub := &fakeBroadcaster{}
	return store, hub, NewMessagePipeline(store, hub), sender
}

func TestSubmitPersistsAndBroadcasts(t *testing.T) {
	store, hub, pipeline, sender := newMessageFixture()
	projectID := uuid.New()

	pipeline.Submit(projectID, sender.ID, "hi")

	require.Len(t, store.messages, 1)
	assert.Equal(t, "hi", store.messages[0].Content)
	assert.Equal(t, projectID, store.messages[0].ProjectID)
	assert.Equal(t, sender.ID, store.messages[0].SenderID)
	assert.False(t, store.messages[0].CreatedAt.IsZero())

	require.Len(t, hub.calls, 1)
	assert.Equal(t, ws.ProjectRoom(projectID), hub.calls[0].Room)
	assert.Equal(t, ws.TypeMessage, hub.calls[0].Type)

	enriched, ok := hub.calls[0].Payload.(EnrichedMessage)
	require.True(t, ok)
	assert.Equal(t, store.messages[0].ID, enriched.ID)
	assert.Equal(t, "hi", enriched.Content)
	require.NotNil(t, enriched.SenderName)
	assert.Equal(t, "Alice", *enriched.SenderName)
}

func TestSubmitDropsInvalidInput(t *testing.T) {
	store, hub, pipeline, sender := newMessageFixture()
	projectID := uuid.New()

	pipeline.Submit(projectID, sender.ID, "   \t\n")
	pipeline.Submit(projectID, sender.ID, "")
	pipeline.Submit(uuid.Nil, sender.ID, "hi")
	pipeline.Submit(projectID, uuid.Nil, "hi")

	assert.Empty(t, store.messages)
	assert.Empty(t, hub.calls)
}

func TestSubmitTrimsContent(t *testing.T) {
	store, _, pipeline, sender := newMessageFixture()

	pipeline.Submit(uuid.New(), sender.ID, "  hi  ")

	require.Len(t, store.messages, 1)
	assert.Equal(t, "hi", store.messages[0].Content)
}

func TestSubmitSkipsBroadcastOnPersistError(t *testing.T) {
	store, hub, pipeline, sender := newMessageFixture()
	store.createErr = errors.New("store unavailable")

	pipeline.Submit(uuid.New(), sender.ID, "hi")

	assert.Empty(t, store.messages)
	assert.Empty(t, hub.calls)
}

func TestSubmitBroadcastsWithoutNameWhenSenderLookupFails(t *testing.T) {
	store, hub, pipeline, _ := newMessageFixture()

	// Отправитель не найден: сообщение уже сохранено и всё равно уходит
	unknown := uuid.New()
	pipeline.Submit(uuid.New(), unknown, "hi")

	require.Len(t, store.messages, 1)
	require.Len(t, hub.calls, 1)

	enriched := hub.calls[0].Payload.(EnrichedMessage)
	assert.Nil(t, enriched.SenderName)
}

func TestHistoryReturnsEnrichedMessagesInOrder(t *testing.T) {
	_, hub, pipeline, sender := newMessageFixture()
	projectID := uuid.New()
	otherProject := uuid.New()

	pipeline.Submit(projectID, sender.ID, "first")
	pipeline.Submit(projectID, sender.ID, "second")
	pipeline.Submit(otherProject, sender.ID, "elsewhere")

	history, err := pipeline.History(projectID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)
	require.NotNil(t, history[0].SenderName)
	assert.Equal(t, "Alice", *history[0].SenderName)

	// История и рассылка описывают одно и то же сообщение
	broadcasted := hub.calls[0].Payload.(EnrichedMessage)
	assert.Equal(t, history[0].ID, broadcasted.ID)
	assert.Equal(t, history[0].Content, broadcasted.Content)
}

func TestHistoryPropagatesStoreError(t *testing.T) {
	store, _, pipeline, _ := newMessageFixture()
	store.listErr = errors.New("store unavailable")

	_, err := pipeline.History(uuid.New())
	assert.Error(t, err)
}
