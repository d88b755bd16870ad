package web

import (
	"net/url"
	"strings"

	"reposter/internal/domain"
)

// ParseInput classifies a user input as an Instagram post, reel, IGTV video,
// or profile. Accepted forms: full URLs, www-prefixed URLs, bare shortcodes
// at the end of a post path, and bare usernames.
// Returns domain.ErrInvalidInput when nothing matches.
func ParseInput(s string) (domain.InputKind, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", domain.ErrInvalidInput
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "www.") {
		// Bare username
		return domain.KindProfile, s, nil
	}

	raw := s
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", domain.ErrInvalidInput
	}

	var parts []string
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", "", domain.ErrInvalidInput
	}

	if len(parts) >= 2 {
		switch parts[0] {
		case "p":
			return domain.KindPost, parts[1], nil
		case "reel":
			return domain.KindReel, parts[1], nil
		case "tv":
			return domain.KindTV, parts[1], nil
		}
	}

	if len(parts) == 1 {
		return domain.KindProfile, parts[0], nil
	}

	// Deep link ending in a shortcode
	last := parts[len(parts)-1]
	if len(last) >= 6 && isAlphanumeric(last) {
		return domain.KindPost, last, nil
	}

	return "", "", domain.ErrInvalidInput
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return s != ""
}
