package service

import (
	"context"
	"fmt"

	"github.com/moidabeast/chattr/internal/domain"
)

type ReactionService struct {
	core *Core
}

func NewReactionService(core *Core) *ReactionService {
	return &ReactionService{core: core}
}

// Add идемпотентен. Существование сообщения не проверяется — реакции
// ключуются независимо от журнала.
func (s *ReactionService) Add(ctx context.Context, messageID int64, emoji, userID string) error {
	if emoji == "" || userID == "" {
		return fmt.Errorf("%w: emoji and user id are required", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.reactions.Add(messageID, emoji, userID)
	return nil
}

// Remove — no-op, если пользователь не реагировал этим эмодзи.
func (s *ReactionService) Remove(ctx context.Context, messageID int64, emoji, userID string) error {
	if emoji == "" || userID == "" {
		return fmt.Errorf("%w: emoji and user id are required", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.reactions.Remove(messageID, emoji, userID)
	return nil
}

// Reactions — снапшот emoji+count; нулевые count не возвращаются.
func (s *ReactionService) Reactions(ctx context.Context, messageID int64) []domain.ReactionGroup {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.core.reactions.List(messageID)
}
