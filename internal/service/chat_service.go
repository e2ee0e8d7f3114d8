package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/moidabeast/chattr/internal/domain"
)

// todo: вынести в конфиг
const maxMessageLen = 4000

type ChatService struct {
	core *Core
}

func NewChatService(core *Core) *ChatService {
	return &ChatService{core: core}
}

// OutgoingMessage — входные данные sendMessage.
type OutgoingMessage struct {
	RoomID    int64
	Content   string
	Sender    string
	SenderID  string
	MediaURL  *string
	MediaType *string
	AvatarURL *string
	ReplyTo   *int64
}

// Send применяет три эффекта как одну операцию под общим Lock:
// append в журнал, messageCount комнаты, отметка активности отправителя.
// ReplyTo намеренно не валидируется (ни существование родителя, ни комната).
func (s *ChatService) Send(ctx context.Context, in OutgoingMessage) (*domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}
	if len([]rune(content)) > maxMessageLen {
		return nil, fmt.Errorf("%w: message too long", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if _, err := s.core.rooms.Get(in.RoomID); err != nil {
		return nil, err
	}

	now := s.core.now()
	msg := &domain.Message{
		RoomID:    in.RoomID,
		Content:   content,
		Sender:    in.Sender,
		SenderID:  in.SenderID,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
		AvatarURL: in.AvatarURL,
		ReplyTo:   in.ReplyTo,
	}
	s.core.messages.Append(msg, now)
	if err := s.core.rooms.IncrementMessages(in.RoomID); err != nil {
		return nil, err
	}
	s.core.presence.Touch(in.RoomID, in.SenderID, now)

	out := *msg
	return &out, nil
}

// Messages — хронология комнаты; неизвестная комната отдаёт пустой список.
func (s *ChatService) Messages(ctx context.Context, roomID int64) []domain.Message {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.core.messages.ListChronological(roomID)
}

// MessagesWithReactions — хронология со снапшотом реакций и числом прямых
// ответов на каждое сообщение; снапшот собирается на каждый вызов.
func (s *ChatService) MessagesWithReactions(ctx context.Context, roomID int64) []domain.MessageView {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	msgs := s.core.messages.ListChronological(roomID)
	out := make([]domain.MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, domain.MessageView{
			Message:    m,
			Reactions:  s.core.reactions.List(m.ID),
			ReplyCount: s.core.messages.CountReplies(roomID, m.ID),
		})
	}
	return out
}

func (s *ChatService) Replies(ctx context.Context, roomID, parentID int64) []domain.Message {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.core.messages.ListReplies(roomID, parentID)
}

func (s *ChatService) ReplyPreview(ctx context.Context, roomID, messageID int64) *domain.ReplyPreview {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.core.messages.ReplyPreview(roomID, messageID)
}

// UpdateUsername ретроактивно переписывает sender всех сообщений identity
// во всех комнатах. Возвращает число переписанных сообщений.
func (s *ChatService) UpdateUsername(ctx context.Context, userID, username string) (int, error) {
	username = strings.TrimSpace(username)
	if userID == "" || username == "" {
		return 0, fmt.Errorf("%w: user id and username are required", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.core.messages.RewriteIdentity(userID, &username, false, nil), nil
}

// UpdateAvatar — тот же scan-and-patch; avatarURL == nil явно сбрасывает аватар.
func (s *ChatService) UpdateAvatar(ctx context.Context, userID string, avatarURL *string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	return s.core.messages.RewriteIdentity(userID, nil, true, avatarURL), nil
}
