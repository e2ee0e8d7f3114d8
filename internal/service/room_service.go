package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/moidabeast/chattr/internal/domain"
)

// MediaValidator — внешний коллаборатор: проверка формата медиа-ссылки.
type MediaValidator interface {
	Validate(mediaURL, mediaType string) bool
}

// MediaValidatorFunc — адаптер для функций (удобно в тестах).
type MediaValidatorFunc func(mediaURL, mediaType string) bool

func (f MediaValidatorFunc) Validate(mediaURL, mediaType string) bool { return f(mediaURL, mediaType) }

const seedSender = "Creator"

type RoomService struct {
	core  *Core
	media MediaValidator
}

func NewRoomService(core *Core, media MediaValidator) *RoomService {
	return &RoomService{core: core, media: media}
}

// CreateRoom создаёт комнату и сид-сообщение с её медиа от синтетического
// «Creator». messageCount стартует с 1 (сид), viewCount — с 0.
func (s *RoomService) CreateRoom(ctx context.Context, topic, description, mediaURL, mediaType, category string) (*domain.Chatroom, error) {
	topic = strings.TrimSpace(topic)
	description = strings.TrimSpace(description)
	mediaURL = strings.TrimSpace(mediaURL)
	category = strings.TrimSpace(category)

	switch {
	case topic == "":
		return nil, fmt.Errorf("%w: topic is required", domain.ErrInvalidInput)
	case description == "":
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	case mediaURL == "":
		return nil, fmt.Errorf("%w: media url is required", domain.ErrInvalidInput)
	case category == "":
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if !s.media.Validate(mediaURL, mediaType) {
		return nil, fmt.Errorf("%w: unsupported media reference", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	now := s.core.now()
	room := s.core.rooms.Create(topic, description, mediaURL, mediaType, category, now)

	// сид-identity привязан к комнате, чтобы ретроактивный rewrite
	// пользователей никогда не перекрашивал сид-сообщения
	seedMediaURL := mediaURL
	seedMediaType := mediaType
	seed := &domain.Message{
		RoomID:    room.ID,
		Content:   topic,
		Sender:    seedSender,
		SenderID:  fmt.Sprintf("creator-%d", room.ID),
		MediaURL:  &seedMediaURL,
		MediaType: &seedMediaType,
	}
	s.core.messages.Append(seed, now)
	room.MessageCount = 1

	out := *room
	return &out, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*domain.ChatroomView, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	room, err := s.core.rooms.Get(id)
	if err != nil {
		return nil, err
	}
	v := s.viewLocked(room)
	return &v, nil
}

func (s *RoomService) ListRooms(ctx context.Context) []domain.ChatroomView {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.viewsLocked(s.core.rooms.List())
}

func (s *RoomService) SearchRooms(ctx context.Context, term string) []domain.ChatroomView {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.viewsLocked(s.core.rooms.Search(term))
}

func (s *RoomService) FilterByCategory(ctx context.Context, category string) []domain.ChatroomView {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.viewsLocked(s.core.rooms.FilterByCategory(category))
}

// RecordView — просмотр комнаты: счётчик + отметка активности зрителя.
func (s *RoomService) RecordView(ctx context.Context, id int64, userID string) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if err := s.core.rooms.IncrementViews(id); err != nil {
		return err
	}
	s.core.presence.Touch(id, userID, s.core.now())
	return nil
}

func (s *RoomService) PinMessage(ctx context.Context, id, messageID int64) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.core.rooms.Pin(id, messageID)
}

func (s *RoomService) UnpinMessage(ctx context.Context, id int64) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.core.rooms.Unpin(id)
}

func (s *RoomService) PinnedMessage(ctx context.Context, id int64) (*int64, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	room, err := s.core.rooms.Get(id)
	if err != nil {
		return nil, err
	}
	if room.PinnedMessageID == nil {
		return nil, nil
	}
	pinned := *room.PinnedMessageID
	return &pinned, nil
}

func (s *RoomService) viewLocked(room *domain.Chatroom) domain.ChatroomView {
	n := s.core.presence.LiveCount(room.ID, s.core.now(), s.core.livenessWindow)
	return domain.ChatroomView{Chatroom: *room, IsLive: n > 0, ActiveUserCount: n}
}

func (s *RoomService) viewsLocked(rooms []*domain.Chatroom) []domain.ChatroomView {
	out := make([]domain.ChatroomView, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, s.viewLocked(room))
	}
	return out
}
