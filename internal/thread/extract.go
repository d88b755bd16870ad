package thread

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractURLs removes URLs from the text, returning the remainder and the
// URLs in order of appearance. It must run before ExtractHashtags so a URL
// carrying a #fragment is not misread as a hashtag.
func ExtractURLs(text string) (string, []string) {
	urls := urlPattern.FindAllString(text, -1)
	remainder := strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
	return remainder, urls
}

// ExtractHashtags removes hashtags from the text, returning the remainder and
// the tags in order of appearance.
func ExtractHashtags(text string) (string, []string) {
	hashtags := hashtagPattern.FindAllString(text, -1)
	remainder := strings.TrimSpace(hashtagPattern.ReplaceAllString(text, ""))
	return remainder, hashtags
}
