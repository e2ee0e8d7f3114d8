package domain

import "time"

// PresenceRecord — последняя активность пользователя в комнате.
// На пару (room, user) всегда не больше одной записи.
type PresenceRecord struct {
	RoomID     int64
	UserID     string
	LastActive time.Time
}
