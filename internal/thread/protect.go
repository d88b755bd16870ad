// Package thread splits free text into Twitter/X thread parts, each within
// the 280 character limit, without breaking mentions, emails, URLs, or
// balanced quotes across part boundaries.
package thread

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_.]+`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
)

// tokenPair maps a placeholder back to the original substring it stands for.
type tokenPair struct {
	placeholder string
	original    string
}

// TokenMap records placeholder substitutions in insertion order. It is built
// once by Protect and never mutated afterwards.
type TokenMap struct {
	pairs []tokenPair
}

// Len returns the number of protected tokens.
func (m *TokenMap) Len() int {
	return len(m.pairs)
}

func (m *TokenMap) add(placeholder, original string) {
	m.pairs = append(m.pairs, tokenPair{placeholder: placeholder, original: original})
}

// markerFor returns a placeholder prefix guaranteed absent from the input,
// so a placeholder can never collide with user content.
func markerFor(text string) string {
	marker := "__TOK"
	for strings.Contains(text, marker) {
		marker += "X"
	}
	return marker
}

// Protect replaces emails, mentions, and URLs with opaque placeholders so the
// split-point selector cannot cut through them. Emails are handled before
// mentions because an email contains an @; mentions before URLs so a handle
// with internal dots (like @agency.department) is never mistaken for a
// sentence end. Each match replaces only the first remaining occurrence of
// its literal, keeping a 1:1 correspondence when tokens repeat.
func Protect(text string) (string, *TokenMap) {
	tokens := &TokenMap{}
	marker := markerFor(text)
	protected := text
	counter := 0

	for _, email := range emailPattern.FindAllString(text, -1) {
		placeholder := fmt.Sprintf("%s_EMAIL_%d__", marker, counter)
		tokens.add(placeholder, email)
		protected = strings.Replace(protected, email, placeholder, 1)
		counter++
	}

	for _, mention := range mentionPattern.FindAllString(protected, -1) {
		placeholder := fmt.Sprintf("%s_MENTION_%d__", marker, counter)
		tokens.add(placeholder, mention)
		protected = strings.Replace(protected, mention, placeholder, 1)
		counter++
	}

	for _, url := range urlPattern.FindAllString(protected, -1) {
		placeholder := fmt.Sprintf("%s_URL_%d__", marker, counter)
		tokens.add(placeholder, url)
		protected = strings.Replace(protected, url, placeholder, 1)
		counter++
	}

	return protected, tokens
}

// Restore replaces every placeholder with its original substring. It is the
// exact inverse of Protect and a no-op when no placeholders remain.
func Restore(text string, tokens *TokenMap) string {
	restored := text
	for _, p := range tokens.pairs {
		restored = strings.ReplaceAll(restored, p.placeholder, p.original)
	}
	return restored
}

// realLength returns the rune count a chunk would have after restoration.
// Placeholders are generally shorter than what they stand for, so the raw
// length underestimates the true tweet length.
func realLength(text string, tokens *TokenMap) int {
	return utf8.RuneCountInString(Restore(text, tokens))
}
