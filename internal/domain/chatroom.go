package domain

import "time"

type Chatroom struct {
	ID              int64
	Topic           string
	Description     string
	MediaURL        string
	MediaType       string
	Category        string
	CreatedAt       time.Time
	MessageCount    int64
	ViewCount       int64
	PinnedMessageID *int64
}

// ChatroomView — комната плюс liveness, вычисленный на момент запроса.
// Никогда не кешируется.
type ChatroomView struct {
	Chatroom
	IsLive          bool
	ActiveUserCount int
}
