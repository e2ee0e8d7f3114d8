package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/moidabeast/chattr/internal/domain"
	"github.com/moidabeast/chattr/internal/service"
)

type env struct {
	core     *service.Core
	rooms    *service.RoomService
	chat     *service.ChatService
	reaction *service.ReactionService
	presence *service.PresenceService
	now      time.Time
}

// фиксированные часы: env.now двигается тестом вручную
func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	e.core = service.NewCore()
	e.core.SetClock(func() time.Time { return e.now })

	allowAll := service.MediaValidatorFunc(func(string, string) bool { return true })
	adminOnly := service.AccessGateFunc(func(userID string) bool { return userID == "admin" })

	e.rooms = service.NewRoomService(e.core, allowAll)
	e.chat = service.NewChatService(e.core)
	e.reaction = service.NewReactionService(e.core)
	e.presence = service.NewPresenceService(e.core, adminOnly)
	return e
}

func (e *env) mustCreateRoom(t *testing.T, topic string) *domain.Chatroom {
	t.Helper()
	room, err := e.rooms.CreateRoom(context.Background(), topic, "desc", "https://cdn.example/a.png", "image", "misc")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	return room
}

func (e *env) mustSend(t *testing.T, roomID int64, content, sender, senderID string, replyTo *int64) *domain.Message {
	t.Helper()
	msg, err := e.chat.Send(context.Background(), service.OutgoingMessage{
		RoomID:   roomID,
		Content:  content,
		Sender:   sender,
		SenderID: senderID,
		ReplyTo:  replyTo,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	return msg
}

func TestEndToEndScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room := e.mustCreateRoom(t, "Movie Night")
	if room.ID != 0 {
		t.Fatalf("first room id = %d, want 0", room.ID)
	}
	if room.MessageCount != 1 {
		t.Fatalf("seed must set messageCount to 1, got %d", room.MessageCount)
	}

	hi := e.mustSend(t, 0, "hi", "Alice", "u1", nil)

	msgs := e.chat.Messages(ctx, 0)
	if len(msgs) != 2 {
		t.Fatalf("expected seed + hi, got %d messages", len(msgs))
	}
	if msgs[0].Sender != "Creator" || msgs[1].Content != "hi" {
		t.Fatalf("chronological order broken: %q then %q", msgs[0].Sender, msgs[1].Content)
	}

	view, err := e.rooms.GetRoom(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.MessageCount != 2 {
		t.Fatalf("messageCount = %d, want 2", view.MessageCount)
	}

	if err := e.reaction.Add(ctx, hi.ID, "👍", "u2"); err != nil {
		t.Fatal(err)
	}
	groups := e.reaction.Reactions(ctx, hi.ID)
	if len(groups) != 1 || groups[0].Emoji != "👍" || groups[0].Count != 1 {
		t.Fatalf("unexpected reactions: %v", groups)
	}

	if err := e.rooms.RecordView(ctx, 0, "u3"); err != nil {
		t.Fatal(err)
	}

	view, err = e.rooms.GetRoom(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.ViewCount != 1 {
		t.Fatalf("viewCount = %d, want 1", view.ViewCount)
	}
	// u1 писал, u3 смотрел; оба в 60-секундном окне
	if !view.IsLive || view.ActiveUserCount != 2 {
		t.Fatalf("liveness: isLive=%v active=%d, want true/2", view.IsLive, view.ActiveUserCount)
	}

	// за границей окна комната гаснет
	e.now = e.now.Add(61 * time.Second)
	view, err = e.rooms.GetRoom(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.IsLive || view.ActiveUserCount != 0 {
		t.Fatalf("liveness past the window: isLive=%v active=%d", view.IsLive, view.ActiveUserCount)
	}
}

func TestSend_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "Test")

	_, err := e.chat.Send(ctx, service.OutgoingMessage{RoomID: 0, Content: "   ", SenderID: "u1"})
	if !errors.Is(err, domain.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}

	_, err = e.chat.Send(ctx, service.OutgoingMessage{RoomID: 9, Content: "hi", SenderID: "u1"})
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}

	_, err = e.chat.Send(ctx, service.OutgoingMessage{RoomID: 0, Content: strings.Repeat("x", 4001), SenderID: "u1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateUsername_Retroactive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")
	e.mustCreateRoom(t, "Two")

	e.mustSend(t, 0, "a", "OldName", "bob-id", nil)
	e.mustSend(t, 1, "b", "OldName", "bob-id", nil)
	e.mustSend(t, 0, "c", "Eve", "eve-id", nil)

	n, err := e.chat.UpdateUsername(ctx, "bob-id", "Bob")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("rewritten = %d, want 2", n)
	}

	for _, roomID := range []int64{0, 1} {
		for _, m := range e.chat.Messages(ctx, roomID) {
			switch m.SenderID {
			case "bob-id":
				if m.Sender != "Bob" {
					t.Fatalf("room %d: sender = %q, want Bob", roomID, m.Sender)
				}
			case "eve-id":
				if m.Sender != "Eve" {
					t.Fatalf("foreign identity touched: %q", m.Sender)
				}
			}
		}
	}

	// сид-сообщения под rewrite пользователей не попадают
	seed := e.chat.Messages(ctx, 0)[0]
	if seed.Sender != "Creator" {
		t.Fatalf("seed sender rewritten: %q", seed.Sender)
	}

	if _, err := e.chat.UpdateUsername(ctx, "bob-id", " "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty username must be rejected, got %v", err)
	}
}

func TestUpdateAvatar_SetAndReset(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")
	e.mustSend(t, 0, "a", "Bob", "bob-id", nil)

	avatar := "https://cdn.example/new.png"
	if _, err := e.chat.UpdateAvatar(ctx, "bob-id", &avatar); err != nil {
		t.Fatal(err)
	}
	m := e.chat.Messages(ctx, 0)[1]
	if m.AvatarURL == nil || *m.AvatarURL != avatar {
		t.Fatalf("avatar not set: %v", m.AvatarURL)
	}

	if _, err := e.chat.UpdateAvatar(ctx, "bob-id", nil); err != nil {
		t.Fatal(err)
	}
	m = e.chat.Messages(ctx, 0)[1]
	if m.AvatarURL != nil {
		t.Fatalf("avatar not reset: %v", *m.AvatarURL)
	}
}

func TestMessagesWithReactions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")

	parent := e.mustSend(t, 0, "parent", "Alice", "u1", nil)
	e.mustSend(t, 0, "reply", "Bob", "u2", &parent.ID)
	e.reaction.Add(ctx, parent.ID, "🔥", "u2")
	e.reaction.Add(ctx, parent.ID, "🔥", "u3")

	views := e.chat.MessagesWithReactions(ctx, 0)
	if len(views) != 3 { // seed + parent + reply
		t.Fatalf("expected 3 views, got %d", len(views))
	}

	var parentView *domain.MessageView
	for i := range views {
		if views[i].ID == parent.ID {
			parentView = &views[i]
		}
	}
	if parentView == nil {
		t.Fatal("parent view missing")
	}
	if parentView.ReplyCount != 1 {
		t.Fatalf("replyCount = %d, want 1", parentView.ReplyCount)
	}
	if len(parentView.Reactions) != 1 || parentView.Reactions[0].Count != 2 {
		t.Fatalf("reactions snapshot: %v", parentView.Reactions)
	}
}

func TestReplies_Chronological(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")

	parent := e.mustSend(t, 0, "parent", "Alice", "u1", nil)
	e.now = e.now.Add(time.Second)
	e.mustSend(t, 0, "first reply", "Bob", "u2", &parent.ID)
	e.now = e.now.Add(time.Second)
	e.mustSend(t, 0, "second reply", "Eve", "u3", &parent.ID)

	got := e.chat.Replies(ctx, 0, parent.ID)
	if len(got) != 2 || got[0].Content != "first reply" || got[1].Content != "second reply" {
		t.Fatalf("replies out of order: %v", got)
	}
}

func TestReplyPreview_Service(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")
	m := e.mustSend(t, 0, "short message", "Alice", "u1", nil)

	p := e.chat.ReplyPreview(ctx, 0, m.ID)
	if p == nil || p.Snippet != "short message" {
		t.Fatalf("unexpected preview: %+v", p)
	}
	if e.chat.ReplyPreview(ctx, 0, 999) != nil {
		t.Fatal("missing message must yield nil preview")
	}
}
