package memstore_test

import (
	"testing"

	"github.com/moidabeast/chattr/internal/domain"
	"github.com/moidabeast/chattr/internal/memstore"
)

func asMap(groups []domain.ReactionGroup) map[string]int {
	out := make(map[string]int, len(groups))
	for _, g := range groups {
		out[g.Emoji] = g.Count
	}
	return out
}

func TestAdd_Idempotent(t *testing.T) {
	s := memstore.NewReactionSet()

	if !s.Add(1, "🔥", "u1") {
		t.Fatal("first add must change state")
	}
	if s.Add(1, "🔥", "u1") {
		t.Fatal("repeated add must be a no-op")
	}

	got := asMap(s.List(1))
	if got["🔥"] != 1 {
		t.Fatalf("count = %d, want 1", got["🔥"])
	}
}

func TestAddRemove_RoundTrip(t *testing.T) {
	s := memstore.NewReactionSet()
	s.Add(1, "👍", "u1")
	if !s.Remove(1, "👍", "u1") {
		t.Fatal("remove of an existing reaction must change state")
	}

	// опустевший эмодзи уходит целиком: нулевой count не виден
	if got := s.List(1); len(got) != 0 {
		t.Fatalf("expected no reactions, got %v", got)
	}
}

func TestRemove_Noop(t *testing.T) {
	s := memstore.NewReactionSet()
	if s.Remove(1, "👍", "u1") {
		t.Fatal("remove on an empty message must be a no-op")
	}
	s.Add(1, "👍", "u1")
	if s.Remove(1, "👍", "u2") {
		t.Fatal("remove by a non-reacting user must be a no-op")
	}
	if got := asMap(s.List(1)); got["👍"] != 1 {
		t.Fatalf("count changed by a no-op: %v", got)
	}
}

func TestList_CountsDistinctUsersPerEmoji(t *testing.T) {
	s := memstore.NewReactionSet()
	s.Add(1, "👍", "u1")
	s.Add(1, "👍", "u2")
	s.Add(1, "😂", "u1")
	s.Add(2, "👍", "u3") // другое сообщение

	got := asMap(s.List(1))
	if got["👍"] != 2 || got["😂"] != 1 {
		t.Fatalf("unexpected snapshot: %v", got)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 emoji entries, got %d", len(got))
	}

	if s.List(99) != nil {
		t.Fatal("message without reactions must yield empty snapshot")
	}
}
