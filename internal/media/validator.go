package media

import (
	"regexp"
	"strings"
)

// Validator — дефолтная проверка медиа-ссылок по типу.
// Движку важен только bool; формат проверяем грубо, по форме URL.
var (
	imageRe   = regexp.MustCompile(`(?i)^https?://\S+\.(png|jpe?g|gif|webp)(\?\S*)?$`)
	youtubeRe = regexp.MustCompile(`(?i)^https?://(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]{6,}`)
	twitchRe  = regexp.MustCompile(`(?i)^https?://(www\.)?twitch\.tv/\S+`)
	twitterRe = regexp.MustCompile(`(?i)^https?://(www\.)?(twitter\.com|x\.com)/\w+/status/\d+`)
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(mediaURL, mediaType string) bool {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "image":
		return imageRe.MatchString(mediaURL)
	case "youtube":
		return youtubeRe.MatchString(mediaURL)
	case "twitch":
		return twitchRe.MatchString(mediaURL)
	case "twitter":
		return twitterRe.MatchString(mediaURL)
	default:
		return false
	}
}
