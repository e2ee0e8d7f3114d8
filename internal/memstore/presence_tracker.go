package memstore

import (
	"time"

	"github.com/moidabeast/chattr/internal/domain"
)

// PresenceTracker — последняя активность по (room, user).
// Не потокобезопасен: блокировку держит сервисный слой.
type PresenceTracker struct {
	byRoom map[int64]map[string]time.Time
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{byRoom: make(map[int64]map[string]time.Time)}
}

// Touch заменяет запись пары (room, user), а не добавляет новую —
// повторная активность одного пользователя не раздувает таблицу.
func (t *PresenceTracker) Touch(roomID int64, userID string, now time.Time) {
	room, ok := t.byRoom[roomID]
	if !ok {
		room = make(map[string]time.Time)
		t.byRoom[roomID] = room
	}
	room[userID] = now
}

// LiveCount — число уникальных пользователей комнаты в окне активности.
// Сравнение симметричное, |now - lastActive| <= window: запись «из будущего»
// (перекос часов) тоже считается живой.
func (t *PresenceTracker) LiveCount(roomID int64, now time.Time, window time.Duration) int {
	n := 0
	for _, last := range t.byRoom[roomID] {
		if absDiff(now, last) <= window {
			n++
		}
	}
	return n
}

func (t *PresenceTracker) IsLive(roomID int64, now time.Time, window time.Duration) bool {
	return t.LiveCount(roomID, now, window) > 0
}

// Records — снапшот записей комнаты (для отладочных/сервисных выдач).
func (t *PresenceTracker) Records(roomID int64) []domain.PresenceRecord {
	room := t.byRoom[roomID]
	out := make([]domain.PresenceRecord, 0, len(room))
	for userID, last := range room {
		out = append(out, domain.PresenceRecord{RoomID: roomID, UserID: userID, LastActive: last})
	}
	return out
}

// Sweep удаляет протухшие записи по всем комнатам. Обычный трафик его не
// зовёт — это maintenance-операция.
func (t *PresenceTracker) Sweep(now time.Time, window time.Duration) int {
	removed := 0
	for roomID, room := range t.byRoom {
		for userID, last := range room {
			if absDiff(now, last) > window {
				delete(room, userID)
				removed++
			}
		}
		if len(room) == 0 {
			delete(t.byRoom, roomID)
		}
	}
	return removed
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d
}
