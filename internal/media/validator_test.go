package media_test

import (
	"testing"

	"github.com/moidabeast/chattr/internal/media"
)

func TestValidate(t *testing.T) {
	v := media.NewValidator()

	cases := []struct {
		url, typ string
		want     bool
	}{
		{"https://cdn.example/pic.png", "image", true},
		{"https://cdn.example/pic.jpeg", "image", true},
		{"https://cdn.example/pic.webp?w=300", "image", true},
		{"https://cdn.example/pic.bmp", "image", false},
		{"ftp://cdn.example/pic.png", "image", false},

		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "youtube", true},
		{"https://youtu.be/dQw4w9WgXcQ", "youtube", true},
		{"https://youtube.com/watch?v=x", "youtube", false},

		{"https://www.twitch.tv/somechannel", "twitch", true},
		{"https://twitch.tv/", "twitch", false},

		{"https://twitter.com/user/status/123456", "twitter", true},
		{"https://x.com/user/status/123456", "twitter", true},
		{"https://twitter.com/user", "twitter", false},

		// неизвестный тип всегда отклоняем
		{"https://cdn.example/pic.png", "pdf", false},
		{"https://cdn.example/pic.png", "", false},
	}
	for _, tc := range cases {
		if got := v.Validate(tc.url, tc.typ); got != tc.want {
			t.Fatalf("Validate(%q, %q) = %v, want %v", tc.url, tc.typ, got, tc.want)
		}
	}

	// тип нормализуется по регистру
	if !v.Validate("https://cdn.example/pic.png", "  IMAGE ") {
		t.Fatal("media type must be trimmed and lowercased")
	}
}
