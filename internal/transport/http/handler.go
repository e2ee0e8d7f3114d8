package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/moidabeast/chattr/internal/domain"
	"github.com/moidabeast/chattr/internal/service"
	httpmw "github.com/moidabeast/chattr/internal/transport/http/middleware"
	"github.com/moidabeast/chattr/internal/transport/ws"
	"github.com/moidabeast/chattr/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	roomSvc     *service.RoomService
	chatSvc     *service.ChatService
	reactionSvc *service.ReactionService
	presenceSvc *service.PresenceService
	hub         *ws.Hub // может быть nil — тогда события не рассылаются
}

func NewHandler(room *service.RoomService, chat *service.ChatService, reaction *service.ReactionService, presence *service.PresenceService, hub *ws.Hub) *Handler {
	return &Handler{
		roomSvc:     room,
		chatSvc:     chat,
		reactionSvc: reaction,
		presenceSvc: presence,
		hub:         hub,
	}
}

// единая раскладка доменных ошибок по статусам
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		httputil.Error(w, http.StatusNotFound, "room not found")
	case errors.Is(err, domain.ErrEmptyContent):
		httputil.Error(w, http.StatusBadRequest, "empty message content")
	case errors.Is(err, domain.ErrInvalidInput):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.Error(w, http.StatusForbidden, "admin only")
	default:
		slog.Error("handler: unexpected error", slog.Any("err", err))
		httputil.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func roomIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func messageIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
}

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	room, err := h.roomSvc.CreateRoom(r.Context(), req.Topic, req.Description, req.MediaURL, req.MediaType, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, toRoomItem(domain.ChatroomView{Chatroom: *room}))
}

// GET /rooms?q=&category=
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	var views []domain.ChatroomView
	switch {
	case r.URL.Query().Get("q") != "":
		views = h.roomSvc.SearchRooms(r.Context(), r.URL.Query().Get("q"))
	case r.URL.Query().Get("category") != "":
		views = h.roomSvc.FilterByCategory(r.Context(), r.URL.Query().Get("category"))
	default:
		views = h.roomSvc.ListRooms(r.Context())
	}

	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(views))}
	for _, v := range views {
		resp.Items = append(resp.Items, toRoomItem(v))
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	view, err := h.roomSvc.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, toRoomItem(*view))
}

// POST /rooms/{id}/view
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := h.roomSvc.RecordView(r.Context(), id, httpmw.UserIDFromCtx(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /rooms/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	msg, err := h.chatSvc.Send(r.Context(), service.OutgoingMessage{
		RoomID:    id,
		Content:   req.Content,
		Sender:    req.Sender,
		SenderID:  httpmw.UserIDFromCtx(r.Context()),
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		AvatarURL: req.AvatarURL,
		ReplyTo:   req.ReplyTo,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(id, ws.Message{Type: ws.TypeChat, Payload: ws.ChatPayload{
			RoomID:    msg.RoomID,
			UserID:    msg.SenderID,
			Sender:    msg.Sender,
			Content:   msg.Content,
			AvatarURL: msg.AvatarURL,
			MediaURL:  msg.MediaURL,
			MediaType: msg.MediaType,
			ReplyTo:   msg.ReplyTo,
			MsgID:     msg.ID,
			TSUnix:    msg.CreatedAt.Unix(),
		}})
	}
	httputil.JSON(w, http.StatusCreated, toMessageItem(*msg))
}

// GET /rooms/{id}/messages
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	msgs := h.chatSvc.Messages(r.Context(), id)
	resp := MessagesResponse{Items: make([]MessageItem, 0, len(msgs))}
	for _, m := range msgs {
		resp.Items = append(resp.Items, toMessageItem(m))
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}/feed — сообщения с реакциями и числом ответов
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	views := h.chatSvc.MessagesWithReactions(r.Context(), id)
	resp := FeedResponse{Items: make([]FeedItem, 0, len(views))}
	for _, v := range views {
		resp.Items = append(resp.Items, FeedItem{
			MessageItem: toMessageItem(v.Message),
			Reactions:   toReactionItems(v.Reactions),
			ReplyCount:  v.ReplyCount,
		})
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}/messages/{messageID}/replies
func (h *Handler) GetReplies(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	parentID, err := messageIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid message id")
		return
	}
	msgs := h.chatSvc.Replies(r.Context(), id, parentID)
	resp := MessagesResponse{Items: make([]MessageItem, 0, len(msgs))}
	for _, m := range msgs {
		resp.Items = append(resp.Items, toMessageItem(m))
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}/messages/{messageID}/preview
func (h *Handler) GetReplyPreview(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	messageID, err := messageIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid message id")
		return
	}
	preview := h.chatSvc.ReplyPreview(r.Context(), id, messageID)
	if preview == nil {
		httputil.Error(w, http.StatusNotFound, "message not found")
		return
	}
	httputil.JSON(w, http.StatusOK, ReplyPreviewResponse{
		Sender:         preview.Sender,
		Snippet:        preview.Snippet,
		MediaThumbnail: preview.MediaThumbnail,
	})
}

// POST /rooms/{id}/pin
func (h *Handler) PinMessage(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	var req PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.roomSvc.PinMessage(r.Context(), id, req.MessageID); err != nil {
		writeError(w, err)
		return
	}
	if h.hub != nil {
		h.hub.Broadcast(id, ws.Message{Type: ws.TypePinned, Payload: ws.PinnedPayload{RoomID: id, MessageID: &req.MessageID}})
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "pinned"})
}

// DELETE /rooms/{id}/pin
func (h *Handler) UnpinMessage(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := h.roomSvc.UnpinMessage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if h.hub != nil {
		h.hub.Broadcast(id, ws.Message{Type: ws.TypePinned, Payload: ws.PinnedPayload{RoomID: id}})
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "unpinned"})
}

// GET /rooms/{id}/pin
func (h *Handler) GetPinnedMessage(w http.ResponseWriter, r *http.Request) {
	id, err := roomIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id")
		return
	}
	pinned, err := h.roomSvc.PinnedMessage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, PinnedResponse{MessageID: pinned})
}

// POST /rooms/{id}/messages/{messageID}/reactions
func (h *Handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	messageID, err := messageIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid message id")
		return
	}
	var req AddReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.reactionSvc.Add(r.Context(), messageID, req.Emoji, httpmw.UserIDFromCtx(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	h.broadcastReactions(r, messageID)
	httputil.JSON(w, http.StatusOK, ReactionsResponse{Items: toReactionItems(h.reactionSvc.Reactions(r.Context(), messageID))})
}

// DELETE /rooms/{id}/messages/{messageID}/reactions/{emoji}
func (h *Handler) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	messageID, err := messageIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid message id")
		return
	}
	emoji := chi.URLParam(r, "emoji")
	if err := h.reactionSvc.Remove(r.Context(), messageID, emoji, httpmw.UserIDFromCtx(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	h.broadcastReactions(r, messageID)
	httputil.JSON(w, http.StatusOK, ReactionsResponse{Items: toReactionItems(h.reactionSvc.Reactions(r.Context(), messageID))})
}

// GET /rooms/{id}/messages/{messageID}/reactions
func (h *Handler) GetReactions(w http.ResponseWriter, r *http.Request) {
	messageID, err := messageIDParam(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid message id")
		return
	}
	httputil.JSON(w, http.StatusOK, ReactionsResponse{Items: toReactionItems(h.reactionSvc.Reactions(r.Context(), messageID))})
}

// POST /identity/username — ретроактивная смена имени вызывающего identity
func (h *Handler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req UpdateUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	n, err := h.chatSvc.UpdateUsername(r.Context(), httpmw.UserIDFromCtx(r.Context()), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, RewriteResponse{Rewritten: n})
}

// POST /identity/avatar — ретроактивная смена (или сброс) аватара
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req UpdateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	n, err := h.chatSvc.UpdateAvatar(r.Context(), httpmw.UserIDFromCtx(r.Context()), req.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, RewriteResponse{Rewritten: n})
}

// POST /admin/presence/cleanup
func (h *Handler) CleanupPresence(w http.ResponseWriter, r *http.Request) {
	removed, err := h.presenceSvc.CleanupInactive(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, CleanupResponse{Removed: removed})
}

func (h *Handler) broadcastReactions(r *http.Request, messageID int64) {
	if h.hub == nil {
		return
	}
	items := make([]ws.ReactionItem, 0)
	for _, g := range h.reactionSvc.Reactions(r.Context(), messageID) {
		items = append(items, ws.ReactionItem{Emoji: g.Emoji, Count: g.Count})
	}
	// комната берётся из пути; сам движок ключует реакции без неё
	if roomID, err := roomIDParam(r); err == nil {
		h.hub.Broadcast(roomID, ws.Message{Type: ws.TypeReaction, Payload: ws.ReactionPayload{MessageID: messageID, Reactions: items}})
	}
}
