package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoomKey(t *testing.T) {
	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	assert.Equal(t, "user:11111111-2222-3333-4444-555555555555", UserRoom(userID).Key())
	assert.Equal(t, "project:11111111-2222-3333-4444-555555555555", ProjectRoom(userID).Key())

	// Комнаты разных типов с одним id не совпадают
	assert.NotEqual(t, UserRoom(userID), ProjectRoom(userID))
}
