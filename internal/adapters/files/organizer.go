// Package files flattens and renames downloaded media folders.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"reposter/pkg/log"
)

// Organizer renames downloaded media into a flat, numbered layout.
type Organizer struct {
	imageExts []string
	videoExts []string
}

// DefaultImageExts and DefaultVideoExts mirror the upload formats Instagram
// serves.
var (
	DefaultImageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".heic"}
	DefaultVideoExts = []string{".mp4", ".mov", ".mkv", ".webm", ".avi"}
)

// NewOrganizer creates an organizer recognizing the given media extensions.
func NewOrganizer(imageExts, videoExts []string) *Organizer {
	return &Organizer{imageExts: imageExts, videoExts: videoExts}
}

// TimestampedTarget returns a folder name of the form 20240102_150405_<name>.
func (o *Organizer) TimestampedTarget(name string) string {
	return time.Now().Format("20060102_150405") + "_" + name
}

// collect walks the folder recursively and returns every regular file,
// skipping dotfiles.
func (o *Organizer) collect(folder string) ([]string, error) {
	var collected []string
	err := filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		collected = append(collected, path)
		return nil
	})
	return collected, err
}

// Normalize moves every file in the folder tree to the folder root and
// renames media files to a numbered 01.ext, 02.ext sequence. Media files are
// numbered before any sidecar files. Name collisions fall back to 01-1.ext,
// 01-2.ext and so on. A file that cannot be moved is skipped, not fatal.
func (o *Organizer) Normalize(folder string) error {
	items, err := o.collect(folder)
	if err != nil {
		return fmt.Errorf("collect files in %s: %w", folder, err)
	}
	sort.Strings(items)

	var media, other []string
	for _, f := range items {
		if o.isMedia(f) {
			media = append(media, f)
		} else {
			other = append(other, f)
		}
	}
	ordered := append(media, other...)

	idx := 1
	for _, src := range ordered {
		ext := strings.ToLower(filepath.Ext(src))
		if ext == "" {
			ext = ".jpg"
		}
		dst := filepath.Join(folder, fmt.Sprintf("%02d%s", idx, ext))

		if sameFile(src, dst) {
			idx++
			continue
		}
		if _, err := os.Stat(dst); err == nil {
			dst = o.collisionName(folder, idx, ext)
		}
		if err := os.Rename(src, dst); err != nil {
			log.GlobalWarn("failed to move file", "src", src, "dst", dst, "error", err)
			continue
		}
		idx++
	}

	return nil
}

// collisionName finds the first free NN-j.ext slot.
func (o *Organizer) collisionName(folder string, idx int, ext string) string {
	for j := 1; ; j++ {
		candidate := filepath.Join(folder, fmt.Sprintf("%02d-%d%s", idx, j, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// FirstMedia returns the first media file in the folder root, in sorted
// order, skipping dotfiles.
func (o *Organizer) FirstMedia(folder string) (string, bool) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", false
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if o.isMedia(name) {
			return filepath.Join(folder, name), true
		}
	}
	return "", false
}

// List returns the visible file names in the folder root, sorted.
func (o *Organizer) List(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// SaveCaption writes the repost caption next to the media as caption.txt.
func (o *Organizer) SaveCaption(folder, caption string) error {
	path := filepath.Join(folder, "caption.txt")
	if err := os.WriteFile(path, []byte(caption), 0o644); err != nil {
		return fmt.Errorf("write caption file: %w", err)
	}
	return nil
}

func (o *Organizer) isMedia(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range o.imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	for _, ext := range o.videoExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsImage reports whether the file name has a recognized image extension.
func (o *Organizer) IsImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range o.imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
