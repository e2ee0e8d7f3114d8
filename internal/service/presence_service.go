package service

import (
	"context"
	"fmt"

	"github.com/moidabeast/chattr/internal/domain"
)

// AccessGate — внешний коллаборатор: кто администратор.
type AccessGate interface {
	IsAdmin(userID string) bool
}

// AccessGateFunc — адаптер для функций (удобно в тестах).
type AccessGateFunc func(userID string) bool

func (f AccessGateFunc) IsAdmin(userID string) bool { return f(userID) }

type PresenceService struct {
	core   *Core
	access AccessGate
}

func NewPresenceService(core *Core, access AccessGate) *PresenceService {
	return &PresenceService{core: core, access: access}
}

// Touch обновляет отметку активности пользователя в существующей комнате.
func (s *PresenceService) Touch(ctx context.Context, roomID int64, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if _, err := s.core.rooms.Get(roomID); err != nil {
		return err
	}
	s.core.presence.Touch(roomID, userID, s.core.now())
	return nil
}

// CleanupInactive — привилегированный maintenance-sweep протухших записей.
// Возвращает число удалённых записей.
func (s *PresenceService) CleanupInactive(ctx context.Context, callerID string) (int, error) {
	if !s.access.IsAdmin(callerID) {
		return 0, domain.ErrUnauthorized
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.core.presence.Sweep(s.core.now(), s.core.livenessWindow), nil
}
