package thread

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"reposter/internal/domain"
)

// budgetStep and budgetFloor bound the shrinking raw-length budget used when
// a chunk under 280 raw characters still overflows once placeholders expand.
// The floor keeps the loop terminating on pathological inputs like one giant
// unbreakable token.
const (
	budgetStep  = 20
	budgetFloor = 50
)

// SplitToThreads splits long text into parts of at most 280 characters each.
// Special tokens are protected up front, URLs and hashtags are pulled into
// side lists, and the remaining body is consumed left to right via FindSplit.
// Hashtags are re-attached to the tail afterwards.
func SplitToThreads(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	protected, tokens := Protect(text)
	withoutURLs, _ := ExtractURLs(protected)
	body, hashtags := ExtractHashtags(withoutURLs)

	var threads []string
	remaining := strings.TrimSpace(body)

	for remaining != "" {
		if realLength(remaining, tokens) <= domain.MaxTweetLength {
			threads = append(threads, remaining)
			break
		}

		// Shrink the raw budget until the restored chunk fits.
		maxSafe := domain.MaxTweetLength
		split := FindSplit(remaining, maxSafe)
		chunk := strings.TrimSpace(remaining[:split])
		for realLength(chunk, tokens) > domain.MaxTweetLength && split > 0 {
			maxSafe -= budgetStep
			if maxSafe < budgetFloor {
				break
			}
			split = FindSplit(remaining, maxSafe)
			chunk = strings.TrimSpace(remaining[:split])
		}

		if !balancedQuotes(chunk) {
			split = extendPastQuote(remaining, split)
			chunk = strings.TrimSpace(remaining[:split])
		}

		chunk = strings.Trim(chunk, " ,")
		if chunk != "" {
			threads = append(threads, chunk)
		}

		remaining = strings.TrimSpace(remaining[split:])
	}

	for i, t := range threads {
		threads[i] = Restore(t, tokens)
	}

	if len(hashtags) > 0 {
		threads = appendHashtags(threads, hashtags)
	}

	return threads
}

// balancedQuotes reports whether the chunk closes every quote it opens:
// straight double quotes must come in pairs and smart quotes must match.
func balancedQuotes(text string) bool {
	if strings.Count(text, `"`)%2 != 0 {
		return false
	}
	return strings.Count(text, "“") == strings.Count(text, "”")
}

// extendPastQuote pushes the split offset just past the next quote character
// found within the next 280 runes of the remainder. If no closing quote is in
// that window the original offset stands and the chunk goes out unbalanced;
// the repair only ever looks forward.
func extendPastQuote(remaining string, split int) int {
	window := truncateRunes(remaining[split:], domain.MaxTweetLength)
	if pos := strings.Index(window, `"`); pos >= 0 {
		return split + pos + 1
	}
	if pos := strings.Index(window, "”"); pos >= 0 {
		return split + pos + len("”")
	}
	return split
}

// appendHashtags re-attaches the extracted hashtags: onto the last part when
// the combination still fits, otherwise as a final part of their own.
func appendHashtags(threads []string, hashtags []string) []string {
	tagLine := strings.Join(hashtags, " ")

	if len(threads) == 0 {
		return []string{tagLine}
	}

	last := threads[len(threads)-1]
	combined := last + "\n\n" + tagLine
	if utf8.RuneCountInString(combined) <= domain.MaxTweetLength {
		threads[len(threads)-1] = combined
		return threads
	}

	return append(threads, tagLine)
}

// ValidateThreads checks every part against the output contract: at most 280
// characters, no leading or trailing space or comma, non-empty after trim.
// It returns true and no messages when every part passes.
func ValidateThreads(threads []string) (bool, []string) {
	var errs []string

	for i, t := range threads {
		if n := utf8.RuneCountInString(t); n > domain.MaxTweetLength {
			errs = append(errs, fmt.Sprintf("thread %d: exceeds %d chars (%d chars)", i+1, domain.MaxTweetLength, n))
		}
		if t != strings.Trim(t, " ,") {
			errs = append(errs, fmt.Sprintf("thread %d: has leading/trailing spaces or commas", i+1))
		}
		if strings.TrimSpace(t) == "" {
			errs = append(errs, fmt.Sprintf("thread %d: empty thread", i+1))
		}
	}

	return len(errs) == 0, errs
}

// Adjust splits text into thread parts and validates the result. It never
// panics: any internal failure is converted into a failed ThreadResult.
func Adjust(text string) (result domain.ThreadResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.ThreadResult{
				Success: false,
				Threads: []string{},
				Count:   0,
				Errors:  []string{fmt.Sprintf("internal failure: %v", r)},
			}
		}
	}()

	threads := SplitToThreads(text)
	valid, errs := ValidateThreads(threads)

	if threads == nil {
		threads = []string{}
	}
	if errs == nil {
		errs = []string{}
	}

	return domain.ThreadResult{
		Success: valid,
		Threads: threads,
		Count:   len(threads),
		Errors:  errs,
	}
}
