package http

import (
	"time"

	"github.com/moidabeast/chattr/internal/domain"
)

type CreateRoomRequest struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url"`
	MediaType   string `json:"media_type"`
	Category    string `json:"category"`
}

type RoomItem struct {
	ID              int64     `json:"id"`
	Topic           string    `json:"topic"`
	Description     string    `json:"description"`
	MediaURL        string    `json:"media_url"`
	MediaType       string    `json:"media_type"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	MessageCount    int64     `json:"message_count"`
	ViewCount       int64     `json:"view_count"`
	PinnedMessageID *int64    `json:"pinned_message_id,omitempty"`
	IsLive          bool      `json:"is_live"`
	ActiveUserCount int       `json:"active_user_count"`
}

type RoomsListResponse struct {
	Items []RoomItem `json:"items"`
}

type SendMessageRequest struct {
	Content   string  `json:"content"`
	Sender    string  `json:"sender"`
	MediaURL  *string `json:"media_url,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	ReplyTo   *int64  `json:"reply_to,omitempty"`
}

type MessageItem struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	SenderID  string    `json:"sender_id"`
	MediaURL  *string   `json:"media_url,omitempty"`
	MediaType *string   `json:"media_type,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	ReplyTo   *int64    `json:"reply_to,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MessagesResponse struct {
	Items []MessageItem `json:"items"`
}

type FeedItem struct {
	MessageItem
	Reactions  []ReactionItem `json:"reactions"`
	ReplyCount int            `json:"reply_count"`
}

type FeedResponse struct {
	Items []FeedItem `json:"items"`
}

type ReactionItem struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type ReactionsResponse struct {
	Items []ReactionItem `json:"items"`
}

type AddReactionRequest struct {
	Emoji string `json:"emoji"`
}

type PinRequest struct {
	MessageID int64 `json:"message_id"`
}

type PinnedResponse struct {
	MessageID *int64 `json:"message_id,omitempty"`
}

type ReplyPreviewResponse struct {
	Sender         string  `json:"sender"`
	Snippet        string  `json:"snippet"`
	MediaThumbnail *string `json:"media_thumbnail,omitempty"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

type UpdateAvatarRequest struct {
	AvatarURL *string `json:"avatar_url"`
}

type RewriteResponse struct {
	Rewritten int `json:"rewritten"`
}

type CleanupResponse struct {
	Removed int `json:"removed"`
}

func toMessageItem(m domain.Message) MessageItem {
	return MessageItem{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Content:   m.Content,
		Sender:    m.Sender,
		SenderID:  m.SenderID,
		MediaURL:  m.MediaURL,
		MediaType: m.MediaType,
		AvatarURL: m.AvatarURL,
		ReplyTo:   m.ReplyTo,
		CreatedAt: m.CreatedAt.Truncate(time.Millisecond),
	}
}

func toRoomItem(v domain.ChatroomView) RoomItem {
	return RoomItem{
		ID:              v.ID,
		Topic:           v.Topic,
		Description:     v.Description,
		MediaURL:        v.MediaURL,
		MediaType:       v.MediaType,
		Category:        v.Category,
		CreatedAt:       v.CreatedAt,
		MessageCount:    v.MessageCount,
		ViewCount:       v.ViewCount,
		PinnedMessageID: v.PinnedMessageID,
		IsLive:          v.IsLive,
		ActiveUserCount: v.ActiveUserCount,
	}
}

func toReactionItems(groups []domain.ReactionGroup) []ReactionItem {
	out := make([]ReactionItem, 0, len(groups))
	for _, g := range groups {
		out = append(out, ReactionItem{Emoji: g.Emoji, Count: g.Count})
	}
	return out
}
