package thread

import (
	"strings"
	"unicode/utf8"
)

// connectors are conjunction phrases used as a lower-priority break point
// when no sentence terminator fits. The split lands before the connector, so
// the connector opens the next part.
var connectors = []string{
	" sehingga ",
	" karena ",
	" dengan ",
	" pada ",
	" dalam ",
	" untuk ",
	" yang ",
}

var sentenceEndings = []string{".", "?", "!"}

// FindSplit returns the best byte offset to cut text so the first part holds
// at most maxLen runes. Candidates are tried in a fixed priority order:
//
//  1. last newline (kept with the preceding part)
//  2. last sentence-ending punctuation (kept with the preceding part)
//  3. last connector phrase (opens the next part)
//  4. last plain space
//  5. hard cut at maxLen runes
//
// The hard cut should be unreachable for normal prose but guarantees the
// caller's loop always advances. Returned offsets land on rune boundaries.
func FindSplit(text string, maxLen int) int {
	if utf8.RuneCountInString(text) <= maxLen {
		return len(text)
	}

	chunk := truncateRunes(text, maxLen)

	if pos := strings.LastIndexByte(chunk, '\n'); pos > 0 {
		return pos + 1
	}

	lastEnding := -1
	for _, ending := range sentenceEndings {
		if pos := strings.LastIndex(chunk, ending); pos > lastEnding {
			lastEnding = pos
		}
	}
	if lastEnding > 0 {
		return lastEnding + 1
	}

	bestConnector := -1
	for _, connector := range connectors {
		if pos := strings.LastIndex(chunk, connector); pos > bestConnector {
			bestConnector = pos
		}
	}
	if bestConnector > 0 {
		return bestConnector
	}

	if pos := strings.LastIndexByte(chunk, ' '); pos > 0 {
		return pos
	}

	return len(chunk)
}

// truncateRunes returns the prefix of s holding at most n runes.
func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
