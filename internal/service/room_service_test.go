package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moidabeast/chattr/internal/domain"
	"github.com/moidabeast/chattr/internal/service"
)

func TestCreateRoom_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name                             string
		topic, desc, mediaURL, category string
	}{
		{"empty topic", " ", "d", "https://x/a.png", "misc"},
		{"empty description", "t", "", "https://x/a.png", "misc"},
		{"empty media url", "t", "d", "  ", "misc"},
		{"empty category", "t", "d", "https://x/a.png", " "},
	}
	for _, tc := range cases {
		_, err := e.rooms.CreateRoom(ctx, tc.topic, tc.desc, tc.mediaURL, "image", tc.category)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreateRoom_MediaRejected(t *testing.T) {
	core := service.NewCore()
	reject := service.MediaValidatorFunc(func(string, string) bool { return false })
	rooms := service.NewRoomService(core, reject)

	_, err := rooms.CreateRoom(context.Background(), "t", "d", "ftp://bad", "image", "misc")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput from media validator, got %v", err)
	}
}

func TestCreateRoom_SeedMessage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.CreateRoom(ctx, "Topic", "Description", "https://cdn/x.png", "image", "misc")
	if err != nil {
		t.Fatal(err)
	}

	msgs := e.chat.Messages(ctx, room.ID)
	if len(msgs) != 1 {
		t.Fatalf("expected one seed message, got %d", len(msgs))
	}
	seed := msgs[0]
	if seed.Sender != "Creator" || seed.Content != "Topic" {
		t.Fatalf("seed = %q/%q", seed.Sender, seed.Content)
	}
	if seed.MediaURL == nil || *seed.MediaURL != "https://cdn/x.png" {
		t.Fatalf("seed media not copied: %v", seed.MediaURL)
	}
}

func TestSearchAndFilter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.mustCreateRoom(t, "Movie Night")
	room, err := e.rooms.CreateRoom(ctx, "Quiz", "about GoLang", "https://x/a.png", "image", "Tech")
	if err != nil {
		t.Fatal(err)
	}

	// поиск по description, без учёта регистра
	found := e.rooms.SearchRooms(ctx, "golang")
	if len(found) != 1 || found[0].ID != room.ID {
		t.Fatalf("search: %v", found)
	}

	byCat := e.rooms.FilterByCategory(ctx, "tech")
	if len(byCat) != 1 || byCat[0].ID != room.ID {
		t.Fatalf("filter: %v", byCat)
	}
	if got := e.rooms.FilterByCategory(ctx, "none"); len(got) != 0 {
		t.Fatalf("unknown category must yield empty list, got %v", got)
	}
}

func TestRecordView(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")

	if err := e.rooms.RecordView(ctx, 0, "u1"); err != nil {
		t.Fatal(err)
	}
	if err := e.rooms.RecordView(ctx, 0, "u1"); err != nil {
		t.Fatal(err)
	}

	view, err := e.rooms.GetRoom(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	// счётчик просмотров растёт на каждый вызов, активный пользователь один
	if view.ViewCount != 2 || view.ActiveUserCount != 1 {
		t.Fatalf("views=%d active=%d", view.ViewCount, view.ActiveUserCount)
	}

	if err := e.rooms.RecordView(ctx, 9, "u1"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestPinUnpin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")
	msg := e.mustSend(t, 0, "pin me", "Alice", "u1", nil)

	if err := e.rooms.PinMessage(ctx, 0, msg.ID); err != nil {
		t.Fatal(err)
	}
	pinned, err := e.rooms.PinnedMessage(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pinned == nil || *pinned != msg.ID {
		t.Fatalf("pinned = %v, want %d", pinned, msg.ID)
	}

	if err := e.rooms.UnpinMessage(ctx, 0); err != nil {
		t.Fatal(err)
	}
	pinned, err = e.rooms.PinnedMessage(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pinned != nil {
		t.Fatalf("expected nil after unpin, got %v", *pinned)
	}

	if err := e.rooms.PinMessage(ctx, 9, 1); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestCleanupInactive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustCreateRoom(t, "One")

	if _, err := e.presence.CleanupInactive(ctx, "u1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-admin must be rejected, got %v", err)
	}

	if err := e.presence.Touch(ctx, 0, "stale"); err != nil {
		t.Fatal(err)
	}
	e.now = e.now.Add(2 * time.Minute)
	if err := e.presence.Touch(ctx, 0, "fresh"); err != nil {
		t.Fatal(err)
	}

	removed, err := e.presence.CleanupInactive(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	view, err := e.rooms.GetRoom(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.ActiveUserCount != 1 {
		t.Fatalf("active after cleanup = %d, want 1", view.ActiveUserCount)
	}
}
