package domain

import "time"

type Message struct {
	ID        int64
	RoomID    int64
	Content   string
	Sender    string
	SenderID  string
	MediaURL  *string
	MediaType *string
	AvatarURL *string
	ReplyTo   *int64
	CreatedAt time.Time
}

// MessageView — сообщение со снапшотом реакций и числом прямых ответов.
type MessageView struct {
	Message
	Reactions  []ReactionGroup
	ReplyCount int
}

// ReplyPreview — краткая сводка сообщения для контекста ответа.
type ReplyPreview struct {
	Sender         string
	Snippet        string
	MediaThumbnail *string
}
