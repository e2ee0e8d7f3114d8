package memstore

import "github.com/moidabeast/chattr/internal/domain"

// ReactionSet — реакции по сообщениям: (messageID, emoji) -> множество
// отреагировавших. Прямая мутация по ключу, O(1) на toggle.
// Ключи не привязаны к существованию сообщения — так ведёт себя и выдача.
// Не потокобезопасен: блокировку держит сервисный слой.
type ReactionSet struct {
	byMessage map[int64]*messageReactions
}

type messageReactions struct {
	order   []string // порядок первого появления эмодзи
	byEmoji map[string]map[string]struct{}
}

func NewReactionSet() *ReactionSet {
	return &ReactionSet{byMessage: make(map[int64]*messageReactions)}
}

// Add идемпотентен: повторная реакция той же пары (emoji, user) — no-op.
// Возвращает true, если состояние изменилось.
func (s *ReactionSet) Add(messageID int64, emoji, userID string) bool {
	mr, ok := s.byMessage[messageID]
	if !ok {
		mr = &messageReactions{byEmoji: make(map[string]map[string]struct{})}
		s.byMessage[messageID] = mr
	}
	users, ok := mr.byEmoji[emoji]
	if !ok {
		users = make(map[string]struct{})
		mr.byEmoji[emoji] = users
		mr.order = append(mr.order, emoji)
	}
	if _, ok := users[userID]; ok {
		return false
	}
	users[userID] = struct{}{}
	return true
}

// Remove убирает пользователя из множества эмодзи; опустевшая запись
// удаляется целиком — нулевой count снаружи не виден никогда.
func (s *ReactionSet) Remove(messageID int64, emoji, userID string) bool {
	mr, ok := s.byMessage[messageID]
	if !ok {
		return false
	}
	users, ok := mr.byEmoji[emoji]
	if !ok {
		return false
	}
	if _, ok := users[userID]; !ok {
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(mr.byEmoji, emoji)
		mr.order = dropString(mr.order, emoji)
	}
	if len(mr.byEmoji) == 0 {
		delete(s.byMessage, messageID)
	}
	return true
}

// List — снапшот в порядке первого появления эмодзи; только непустые записи.
func (s *ReactionSet) List(messageID int64) []domain.ReactionGroup {
	mr, ok := s.byMessage[messageID]
	if !ok {
		return nil
	}
	out := make([]domain.ReactionGroup, 0, len(mr.order))
	for _, emoji := range mr.order {
		if users, ok := mr.byEmoji[emoji]; ok && len(users) > 0 {
			out = append(out, domain.ReactionGroup{Emoji: emoji, Count: len(users)})
		}
	}
	return out
}

func dropString(in []string, v string) []string {
	out := in[:0]
	for _, s := range in {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
