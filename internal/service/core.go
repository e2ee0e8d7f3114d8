package service

import (
	"sync"
	"time"

	"github.com/moidabeast/chattr/internal/memstore"
)

// Core — общее состояние движка: все четыре таблицы плюс одна RW-блокировка.
// Любая мутация берёт полный Lock, поэтому операции применяются в тотальном
// порядке и читатель никогда не видит частично применённую операцию —
// включая ретроактивный rewrite, который держит Lock на весь проход.
// Читатели ходят под RLock и могут работать параллельно друг с другом.
type Core struct {
	mu sync.RWMutex

	rooms     *memstore.RoomStore
	messages  *memstore.MessageStore
	presence  *memstore.PresenceTracker
	reactions *memstore.ReactionSet

	now            func() time.Time
	livenessWindow time.Duration
}

func NewCore() *Core {
	return &Core{
		rooms:          memstore.NewRoomStore(),
		messages:       memstore.NewMessageStore(),
		presence:       memstore.NewPresenceTracker(),
		reactions:      memstore.NewReactionSet(),
		now:            time.Now,
		livenessWindow: 60 * time.Second, // окно «онлайн»
	}
}

func (c *Core) SetLivenessWindow(d time.Duration) {
	if d > 0 {
		c.livenessWindow = d
	}
}

// SetClock подменяет источник времени (тесты окна активности).
func (c *Core) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}
