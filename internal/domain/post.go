// Package domain contains the core business entities and rules.
package domain

// Post represents a single Instagram post, reel, or IGTV video.
type Post struct {
	Shortcode string
	Owner     string // Username of the post author
	Caption   string
	Likes     int
	Comments  int
	IsVideo   bool
}

// Preview is the lightweight post summary shown before downloading.
// Caption is truncated to 300 characters.
type Preview struct {
	ThumbnailURL string
	Caption      string
	Owner        string
	Likes        int
	Comments     int
	IsVideo      bool
}

// InputKind classifies what a parsed user input refers to.
type InputKind string

const (
	KindPost    InputKind = "post"
	KindReel    InputKind = "reel"
	KindTV      InputKind = "tv"
	KindProfile InputKind = "profile"
)

// IsPost reports whether the kind refers to a single post-like item
// rather than a whole profile.
func (k InputKind) IsPost() bool {
	return k == KindPost || k == KindReel || k == KindTV
}

// DownloadResult is the outcome of a completed download.
type DownloadResult struct {
	Folder        string
	Files         []string
	RepostCaption string
	Message       string
}

// TaskStatus tracks the lifecycle of a background download task.
type TaskStatus string

const (
	TaskPending     TaskStatus = "pending"
	TaskDownloading TaskStatus = "downloading"
	TaskCompleted   TaskStatus = "completed"
	TaskFailed      TaskStatus = "failed"
)
