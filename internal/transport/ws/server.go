package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/moidabeast/chattr/internal/domain"
	"github.com/moidabeast/chattr/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RoomSvc interface {
	GetRoom(ctx context.Context, id int64) (*domain.ChatroomView, error)
}

type ChatSvc interface {
	Send(ctx context.Context, in service.OutgoingMessage) (*domain.Message, error)
}

type PresenceSvc interface {
	Touch(ctx context.Context, roomID int64, userID string) error
}

type Server struct {
	upgrader    websocket.Upgrader
	hub         *Hub
	roomSvc     RoomSvc
	chatSvc     ChatSvc
	presenceSvc PresenceSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, room RoomSvc, chat ChatSvc, presence PresenceSvc) *Server {
	return &Server{
		hub:         hub,
		roomSvc:     room,
		chatSvc:     chat,
		presenceSvc: presence,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/rooms/{id}?access_token=...&user_id=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if strings.TrimSpace(q.Get("access_token")) == "" {
		http.Error(w, "missing access_token", http.StatusUnauthorized)
		return
	}
	userID := strings.TrimSpace(q.Get("user_id"))
	if userID == "" {
		http.Error(w, "missing user_id", http.StatusUnauthorized)
		return
	}
	roomID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid room id", http.StatusBadRequest)
		return
	}
	if _, err := s.roomSvc.GetRoom(r.Context(), roomID); err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, roomID, userID)
	s.hub.Add(c)

	if err := s.sendState(r.Context(), c); err != nil {
		slog.Warn("ws send initial state failed", "room", roomID, "user", userID, "err", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "room", roomID, "user", userID, "err", err)
	}
}

func (s *Server) sendState(ctx context.Context, c *wsConn) error {
	view, err := s.roomSvc.GetRoom(ctx, c.roomID)
	if err != nil {
		return err
	}

	return c.Send(Message{
		Type: TypeState,
		Payload: StatePayload{
			RoomID:          view.ID,
			Topic:           view.Topic,
			IsLive:          view.IsLive,
			ActiveUserCount: view.ActiveUserCount,
			MessageCount:    view.MessageCount,
			ViewCount:       view.ViewCount,
			PinnedMessageID: view.PinnedMessageID,
		},
	})
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	_ = s.presenceSvc.Touch(ctx, c.roomID, c.userID)

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		_ = s.presenceSvc.Touch(ctx, c.roomID, c.userID)
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeChat:
			var p ChatPayload
			if decode(msg.Payload, &p) != nil {
				continue
			}
			saved, err := s.chatSvc.Send(ctx, service.OutgoingMessage{
				RoomID:    c.roomID,
				Content:   p.Content,
				Sender:    p.Sender,
				SenderID:  c.userID,
				MediaURL:  p.MediaURL,
				MediaType: p.MediaType,
				AvatarURL: p.AvatarURL,
				ReplyTo:   p.ReplyTo,
			})
			if err != nil {
				slog.Warn("ws chat save failed", "room", c.roomID, "user", c.userID, "err", err)
				continue
			}

			// ЕДИНЫЙ broadcast всем, включая отправителя
			s.hub.Broadcast(c.roomID, Message{Type: TypeChat, Payload: ChatPayload{
				RoomID:    saved.RoomID,
				UserID:    saved.SenderID,
				Sender:    saved.Sender,
				Content:   saved.Content,
				AvatarURL: saved.AvatarURL,
				MediaURL:  saved.MediaURL,
				MediaType: saved.MediaType,
				ReplyTo:   saved.ReplyTo,
				MsgID:     saved.ID,
				TSUnix:    saved.CreatedAt.Unix(),
			}})

			// лёгкий ACK только отправителю, чтобы снять pending
			_ = c.Send(Message{Type: TypeChatAck, Payload: ChatAckPayload{MsgID: saved.ID}})
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn   *websocket.Conn
	roomID int64
	userID string
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, roomID int64, userID string) *wsConn {
	return &wsConn{
		conn:   c,
		roomID: roomID,
		userID: userID,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) UserID() string { return c.userID }
func (c *wsConn) RoomID() int64  { return c.roomID }
