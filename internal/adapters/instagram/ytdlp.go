package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reposter/internal/domain"
	"reposter/pkg/log"
)

// Client wraps the yt-dlp binary for Instagram posts and profiles.
type Client struct {
	bin      string
	sessions *SessionStore
	delay    time.Duration
}

// NewClient creates a Client that shells out to bin. The session store is
// optional; without it all requests are anonymous. A positive delay is
// passed down as yt-dlp's sleep interval to pace multi-item downloads.
func NewClient(bin string, sessions *SessionStore, delay time.Duration) *Client {
	return &Client{bin: bin, sessions: sessions, delay: delay}
}

func postURL(shortcode string) string {
	return "https://www.instagram.com/p/" + shortcode + "/"
}

func profileURL(username string) string {
	return "https://www.instagram.com/" + username + "/"
}

// Preview fetches post metadata without downloading media.
func (c *Client) Preview(ctx context.Context, shortcode string) (*domain.Preview, error) {
	out, err := c.run(ctx, "-J", "--no-warnings", postURL(shortcode))
	if err != nil {
		return nil, err
	}
	return parsePreview(out)
}

// FetchPost downloads a post's media into destDir and returns the post
// metadata used for the repost caption.
func (c *Client) FetchPost(ctx context.Context, shortcode, destDir string) (*domain.Post, error) {
	out, err := c.run(ctx, "-J", "--no-warnings", postURL(shortcode))
	if err != nil {
		return nil, err
	}
	meta, err := parseMetadata(out)
	if err != nil {
		return nil, err
	}

	if err := c.download(ctx, destDir, postURL(shortcode)); err != nil {
		return nil, err
	}

	return &domain.Post{
		Shortcode: shortcode,
		Owner:     meta.owner(),
		Caption:   meta.Description,
		Likes:     meta.LikeCount,
		Comments:  meta.CommentCount,
		IsVideo:   meta.isVideo(),
	}, nil
}

// FetchProfile downloads every post of a profile into destDir.
func (c *Client) FetchProfile(ctx context.Context, username, destDir string) error {
	return c.download(ctx, destDir, profileURL(username))
}

func (c *Client) download(ctx context.Context, destDir, url string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	args := []string{
		"-o", filepath.Join(destDir, "%(autonumber)02d.%(ext)s"),
		"--no-warnings",
		"--write-description",
	}
	if c.delay > 0 {
		args = append(args, "--sleep-interval", strconv.Itoa(int(c.delay.Seconds())))
	}
	args = append(args, url)
	_, err := c.run(ctx, args...)
	return err
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.sessions != nil && c.sessions.Exists() {
		args = append([]string{"--cookies", c.sessions.CookiePath()}, args...)
	}

	cmd := exec.CommandContext(ctx, c.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.GlobalDebugCtx(ctx, "running yt-dlp", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyError(stderr.String(), err)
	}

	return stdout.Bytes(), nil
}

// classifyError maps yt-dlp stderr output to domain errors so callers can
// decide between retrying and aborting.
func classifyError(stderr string, err error) error {
	lowered := strings.ToLower(stderr)

	switch {
	case strings.Contains(lowered, "login required"),
		strings.Contains(lowered, "requested content is not available"),
		strings.Contains(lowered, "cookies"):
		return fmt.Errorf("%w: %s", domain.ErrLoginRequired, firstErrorLine(stderr))
	case strings.Contains(lowered, "rate-limit"),
		strings.Contains(lowered, "rate limit"),
		strings.Contains(lowered, "429"),
		strings.Contains(lowered, "too many requests"):
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, firstErrorLine(stderr))
	case strings.Contains(lowered, "404"),
		strings.Contains(lowered, "not found"),
		strings.Contains(lowered, "no video"),
		strings.Contains(lowered, "unavailable"):
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, firstErrorLine(stderr))
	case strings.Contains(lowered, "unable to download"),
		strings.Contains(lowered, "timed out"),
		strings.Contains(lowered, "connection"),
		strings.Contains(lowered, "temporary failure"):
		return fmt.Errorf("%w: %s", domain.ErrConnection, firstErrorLine(stderr))
	}

	return fmt.Errorf("yt-dlp failed: %s: %w", firstErrorLine(stderr), err)
}

// firstErrorLine picks the first ERROR line from stderr, or the first
// non-empty line when yt-dlp did not tag one.
func firstErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(line)
		}
	}
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "no error output"
}

// metadata mirrors the subset of yt-dlp's -J output the service uses.
// Carousel posts come back as a playlist whose entries carry the
// per-item fields.
type metadata struct {
	Type         string     `json:"_type"`
	Uploader     string     `json:"uploader"`
	UploaderID   string     `json:"uploader_id"`
	Description  string     `json:"description"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	Thumbnail    string     `json:"thumbnail"`
	VCodec       string     `json:"vcodec"`
	Entries      []metadata `json:"entries"`
}

func (m *metadata) owner() string {
	if m.Uploader != "" {
		return m.Uploader
	}
	return m.UploaderID
}

func (m *metadata) isVideo() bool {
	if m.Type == "playlist" && len(m.Entries) > 0 {
		return m.Entries[0].isVideo()
	}
	return m.VCodec != "" && m.VCodec != "none"
}

func (m *metadata) thumbnail() string {
	if m.Thumbnail == "" && m.Type == "playlist" && len(m.Entries) > 0 {
		return m.Entries[0].Thumbnail
	}
	return m.Thumbnail
}

func parseMetadata(data []byte) (*metadata, error) {
	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	return &meta, nil
}

func parsePreview(data []byte) (*domain.Preview, error) {
	meta, err := parseMetadata(data)
	if err != nil {
		return nil, err
	}
	return &domain.Preview{
		ThumbnailURL: meta.thumbnail(),
		Caption:      meta.Description,
		Owner:        meta.owner(),
		Likes:        meta.LikeCount,
		Comments:     meta.CommentCount,
		IsVideo:      meta.isVideo(),
	}, nil
}
