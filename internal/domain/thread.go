package domain

// MaxTweetLength is the hard per-tweet character limit, counted in runes
// after placeholder restoration.
const MaxTweetLength = 280

// ThreadResult is the outcome of adjusting free text into thread parts.
type ThreadResult struct {
	Success bool     `json:"success"`
	Threads []string `json:"threads"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors"`
}
