package memstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/moidabeast/chattr/internal/domain"
	"github.com/moidabeast/chattr/internal/memstore"
)

func TestCreate_MonotonicIDs(t *testing.T) {
	s := memstore.NewRoomStore()
	now := time.Now()

	a := s.Create("Movie Night", "films", "https://cdn.example/a.png", "image", "movies", now)
	b := s.Create("Speedruns", "fast games", "https://cdn.example/b.png", "image", "games", now)

	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("ids must be 0 and 1, got %d and %d", a.ID, b.ID)
	}
	if len(s.List()) != 2 {
		t.Fatalf("List must return both rooms")
	}
}

func TestGet_Unknown(t *testing.T) {
	s := memstore.NewRoomStore()
	if _, err := s.Get(7); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestSearch_CaseInsensitiveOverThreeFields(t *testing.T) {
	s := memstore.NewRoomStore()
	now := time.Now()
	s.Create("Movie Night", "weekly FILMS", "u", "image", "cinema", now)
	s.Create("Cooking", "recipes", "u", "image", "food", now)

	if got := s.Search("movie"); len(got) != 1 {
		t.Fatalf("topic match: got %d rooms", len(got))
	}
	if got := s.Search("films"); len(got) != 1 {
		t.Fatalf("description match: got %d rooms", len(got))
	}
	if got := s.Search("CINEMA"); len(got) != 1 {
		t.Fatalf("category match: got %d rooms", len(got))
	}
	if got := s.Search("nothing"); len(got) != 0 {
		t.Fatalf("no match expected, got %d", len(got))
	}
}

func TestFilterByCategory_ExactCaseInsensitive(t *testing.T) {
	s := memstore.NewRoomStore()
	now := time.Now()
	s.Create("A", "a", "u", "image", "Games", now)
	s.Create("B", "b", "u", "image", "games-retro", now)

	got := s.FilterByCategory("games")
	if len(got) != 1 || got[0].Topic != "A" {
		t.Fatalf("exact match expected, got %v", got)
	}
}

func TestCountersAndPin(t *testing.T) {
	s := memstore.NewRoomStore()
	room := s.Create("A", "a", "u", "image", "c", time.Now())

	if err := s.IncrementViews(room.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.IncrementMessages(room.ID); err != nil {
		t.Fatal(err)
	}
	if room.ViewCount != 1 || room.MessageCount != 1 {
		t.Fatalf("counters: views=%d messages=%d", room.ViewCount, room.MessageCount)
	}

	if err := s.Pin(room.ID, 42); err != nil {
		t.Fatal(err)
	}
	if room.PinnedMessageID == nil || *room.PinnedMessageID != 42 {
		t.Fatalf("pin not applied: %v", room.PinnedMessageID)
	}
	if err := s.Unpin(room.ID); err != nil {
		t.Fatal(err)
	}
	if room.PinnedMessageID != nil {
		t.Fatal("unpin not applied")
	}

	if err := s.Pin(99, 1); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
