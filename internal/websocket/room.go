package websocket

import "github.com/google/uuid"

// RoomKind различает личные комнаты пользователей и комнаты проектов.
type RoomKind string

const (
	RoomKindUser    RoomKind = "user"
	RoomKindProject RoomKind = "project"
)

// Room — логическая группа рассылки. Комнаты нигде не хранятся:
// членство выводится из живых соединений и теряется при разрыве.
type Room struct {
	Kind RoomKind
	ID   uuid.UUID
}

func UserRoom(userID uuid.UUID) Room {
	return Room{Kind: RoomKindUser, ID: userID}
}

func ProjectRoom(projectID uuid.UUID) Room {
	return Room{Kind: RoomKindProject, ID: projectID}
}

// Key отдаёт каноничный строковый ключ ("user:<id>" / "project:<id>").
// Используется только на нижнем уровне — в логах и на проводе.
func (r Room) Key() string {
	return string(r.Kind) + ":" + r.ID.String()
}
