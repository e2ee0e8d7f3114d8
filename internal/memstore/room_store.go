package memstore

import (
	"strings"
	"time"

	"github.com/moidabeast/chattr/internal/domain"
)

// RoomStore — таблица комнат в памяти. Сам по себе не потокобезопасен:
// блокировку держит сервисный слой, чтобы мутации нескольких таблиц
// применялись как одна операция.
type RoomStore struct {
	rooms  map[int64]*domain.Chatroom
	order  []int64 // порядок создания
	nextID int64
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[int64]*domain.Chatroom)}
}

// Create выделяет следующий id (монотонно, без переиспользования).
func (s *RoomStore) Create(topic, description, mediaURL, mediaType, category string, now time.Time) *domain.Chatroom {
	room := &domain.Chatroom{
		ID:          s.nextID,
		Topic:       topic,
		Description: description,
		MediaURL:    mediaURL,
		MediaType:   mediaType,
		Category:    category,
		CreatedAt:   now,
	}
	s.nextID++
	s.rooms[room.ID] = room
	s.order = append(s.order, room.ID)
	return room
}

func (s *RoomStore) Get(id int64) (*domain.Chatroom, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

func (s *RoomStore) List() []*domain.Chatroom {
	out := make([]*domain.Chatroom, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rooms[id])
	}
	return out
}

// Search — регистронезависимый substring-поиск по topic/description/category (OR).
func (s *RoomStore) Search(term string) []*domain.Chatroom {
	term = strings.ToLower(term)
	var out []*domain.Chatroom
	for _, id := range s.order {
		room := s.rooms[id]
		if strings.Contains(strings.ToLower(room.Topic), term) ||
			strings.Contains(strings.ToLower(room.Description), term) ||
			strings.Contains(strings.ToLower(room.Category), term) {
			out = append(out, room)
		}
	}
	return out
}

// FilterByCategory — регистронезависимое точное совпадение категории.
func (s *RoomStore) FilterByCategory(category string) []*domain.Chatroom {
	var out []*domain.Chatroom
	for _, id := range s.order {
		room := s.rooms[id]
		if strings.EqualFold(room.Category, category) {
			out = append(out, room)
		}
	}
	return out
}

func (s *RoomStore) IncrementViews(id int64) error {
	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.ViewCount++
	return nil
}

func (s *RoomStore) IncrementMessages(id int64) error {
	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.MessageCount++
	return nil
}

// Pin не проверяет принадлежность messageID комнате — это дисциплина вызывающего.
func (s *RoomStore) Pin(id, messageID int64) error {
	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.PinnedMessageID = &messageID
	return nil
}

func (s *RoomStore) Unpin(id int64) error {
	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.PinnedMessageID = nil
	return nil
}
