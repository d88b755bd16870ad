// Package instagram fetches posts and profiles through the yt-dlp binary.
package instagram

import (
	"fmt"
	"os"
	"path/filepath"
)

// SessionStore keeps the Netscape cookie file used for authenticated
// downloads. Private posts and some rate-limited endpoints require it.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a store rooted at dir, creating it if needed.
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &SessionStore{dir: dir}, nil
}

// CookiePath returns the location of the cookie file.
func (s *SessionStore) CookiePath() string {
	return filepath.Join(s.dir, "cookies.txt")
}

// Exists reports whether a session cookie file is present.
func (s *SessionStore) Exists() bool {
	info, err := os.Stat(s.CookiePath())
	return err == nil && !info.IsDir()
}

// Save writes the cookie file. Cookies carry credentials, so the file is
// owner-readable only.
func (s *SessionStore) Save(cookies []byte) error {
	if err := os.WriteFile(s.CookiePath(), cookies, 0o600); err != nil {
		return fmt.Errorf("save session cookies: %w", err)
	}
	return nil
}

// Delete removes the cookie file. Deleting a missing session is not an
// error.
func (s *SessionStore) Delete() error {
	err := os.Remove(s.CookiePath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session cookies: %w", err)
	}
	return nil
}
