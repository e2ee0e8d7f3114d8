package ws

// Типы событий живой ленты комнаты
const (
	TypeState    = "state"    // снапшот комнаты при подключении
	TypeChat     = "chat"     // новое сообщение
	TypeChatAck  = "chat_ack" // подтверждение отправки (НЕ сообщение)
	TypeReaction = "reaction" // свежий снапшот реакций сообщения
	TypePinned   = "pinned"   // закреп/откреп сообщения в комнате
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatePayload struct {
	RoomID          int64  `json:"room_id"`
	Topic           string `json:"topic"`
	IsLive          bool   `json:"is_live"`
	ActiveUserCount int    `json:"active_user_count"`
	MessageCount    int64  `json:"message_count"`
	ViewCount       int64  `json:"view_count"`
	PinnedMessageID *int64 `json:"pinned_message_id,omitempty"`
}

type ChatPayload struct {
	RoomID    int64   `json:"room_id"`
	UserID    string  `json:"user_id"`
	Sender    string  `json:"sender"`
	Content   string  `json:"content"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	MediaURL  *string `json:"media_url,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
	ReplyTo   *int64  `json:"reply_to,omitempty"`

	MsgID  int64 `json:"msg_id,omitempty"`
	TSUnix int64 `json:"ts_unix,omitempty"`
}

// для клиента: снятие pending и дедупликация
type ChatAckPayload struct {
	MsgID int64 `json:"msg_id"`
}

type ReactionPayload struct {
	MessageID int64          `json:"message_id"`
	Reactions []ReactionItem `json:"reactions"`
}

type ReactionItem struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type PinnedPayload struct {
	RoomID    int64  `json:"room_id"`
	MessageID *int64 `json:"message_id,omitempty"`
}
