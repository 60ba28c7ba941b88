package youtube

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidVideo is returned when no video ID can be read from the
// input.
var ErrInvalidVideo = errors.New("youtube: not a video URL or ID")

var (
	watchPattern  = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`)
	shortPattern  = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`)
	embedPattern  = regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`)
	shortsPattern = regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`)
	bareIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ParseVideoID extracts the 11-character video ID from a watch URL,
// youtu.be short link, embed URL, shorts URL, or a bare ID.
func ParseVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalidVideo
	}
	for _, pattern := range []*regexp.Regexp{watchPattern, shortPattern, embedPattern, shortsPattern} {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	if bareIDPattern.MatchString(input) {
		return input, nil
	}
	return "", ErrInvalidVideo
}

// IsVideoURL reports whether the text looks like a YouTube link at all.
// Used by batch runs to separate invalid entries from failed ones.
func IsVideoURL(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be")
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
