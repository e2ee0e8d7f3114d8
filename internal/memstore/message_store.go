package memstore

import (
	"time"

	"github.com/moidabeast/chattr/internal/domain"
)

const snippetLen = 100

// MessageStore — журналы сообщений по комнатам. Слайс комнаты хранится в
// порядке поступления (append), id глобально монотонны по всем комнатам.
// Не потокобезопасен: блокировку держит сервисный слой.
type MessageStore struct {
	byRoom map[int64][]*domain.Message
	nextID int64
}

func NewMessageStore() *MessageStore {
	return &MessageStore{byRoom: make(map[int64][]*domain.Message)}
}

// Append выделяет id и дописывает сообщение в журнал комнаты.
// Существование комнаты проверяет вызывающий — до Append.
func (s *MessageStore) Append(m *domain.Message, now time.Time) int64 {
	m.ID = s.nextID
	s.nextID++
	m.CreatedAt = now
	s.byRoom[m.RoomID] = append(s.byRoom[m.RoomID], m)
	return m.ID
}

// ListChronological возвращает копии сообщений комнаты от старых к новым.
// Неизвестная комната — пустой результат.
func (s *MessageStore) ListChronological(roomID int64) []domain.Message {
	log := s.byRoom[roomID]
	out := make([]domain.Message, 0, len(log))
	for _, m := range log {
		out = append(out, *m)
	}
	return out
}

// ListReplies — только прямые ответы на parentID внутри комнаты, хронологически.
// Многоуровневые треды транзитивно не раскрываются.
func (s *MessageStore) ListReplies(roomID, parentID int64) []domain.Message {
	var out []domain.Message
	for _, m := range s.byRoom[roomID] {
		if m.ReplyTo != nil && *m.ReplyTo == parentID {
			out = append(out, *m)
		}
	}
	return out
}

// CountReplies — число прямых ответов на parentID.
func (s *MessageStore) CountReplies(roomID, parentID int64) int {
	n := 0
	for _, m := range s.byRoom[roomID] {
		if m.ReplyTo != nil && *m.ReplyTo == parentID {
			n++
		}
	}
	return n
}

// RewriteIdentity патчит отображаемые поля всех сообщений identity во всех
// комнатах: sender == nil — имя не трогаем; setAvatar == false — аватар не
// трогаем (avatar при setAvatar может быть nil, это явный сброс).
// O(все сообщения); атомарность относительно читателей обеспечивает
// write-блокировка сервисного слоя на весь проход.
func (s *MessageStore) RewriteIdentity(userID string, sender *string, setAvatar bool, avatar *string) int {
	n := 0
	for _, log := range s.byRoom {
		for _, m := range log {
			if m.SenderID != userID {
				continue
			}
			if sender != nil {
				m.Sender = *sender
			}
			if setAvatar {
				m.AvatarURL = avatar
			}
			n++
		}
	}
	return n
}

// ReplyPreview — сводка сообщения для контекста ответа; nil, если сообщения
// нет в этой комнате.
func (s *MessageStore) ReplyPreview(roomID, messageID int64) *domain.ReplyPreview {
	for _, m := range s.byRoom[roomID] {
		if m.ID == messageID {
			return &domain.ReplyPreview{
				Sender:         m.Sender,
				Snippet:        snippet(m.Content),
				MediaThumbnail: m.MediaURL,
			}
		}
	}
	return nil
}

// snippet — первые 100 символов без многоточия.
func snippet(content string) string {
	r := []rune(content)
	if len(r) > snippetLen {
		r = r[:snippetLen]
	}
	return string(r)
}
