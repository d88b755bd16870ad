package usecases

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"

	"reposter/internal/domain"
	"reposter/pkg/log"
)

// PostFetcher downloads post or profile media into a destination folder.
type PostFetcher interface {
	FetchPost(ctx context.Context, shortcode, destDir string) (*domain.Post, error)
	FetchProfile(ctx context.Context, username, destDir string) error
}

// MediaOrganizer flattens and renames downloaded media files.
type MediaOrganizer interface {
	Normalize(folder string) error
	FirstMedia(folder string) (string, bool)
	List(folder string) ([]string, error)
	SaveCaption(folder, caption string) error
	TimestampedTarget(name string) string
}

// CoverComposer overlays the first media file onto the cover template.
// Implementations return an empty path without error when the source is not
// an image.
type CoverComposer interface {
	Compose(srcPath string) (coverPath string, err error)
}

// ProgressFunc reports download progress as a percentage plus a message.
type ProgressFunc func(progress int, message string)

// DownloadOptions control cover creation and caption templating.
// A nil CustomCaption selects the default repost header; an empty string
// keeps only the original caption.
type DownloadOptions struct {
	AddCover      bool
	CustomCaption *string
}

// DownloadPostUseCase orchestrates a full download: fetch with retry,
// organize files, compose the cover, and write the repost caption.
type DownloadPostUseCase struct {
	fetcher       PostFetcher
	organizer     MediaOrganizer
	composer      CoverComposer
	downloadsRoot string
	maxRetries    int
}

// NewDownloadPostUseCase creates a new DownloadPostUseCase.
func NewDownloadPostUseCase(fetcher PostFetcher, organizer MediaOrganizer, composer CoverComposer, downloadsRoot string, maxRetries int) *DownloadPostUseCase {
	return &DownloadPostUseCase{
		fetcher:       fetcher,
		organizer:     organizer,
		composer:      composer,
		downloadsRoot: downloadsRoot,
		maxRetries:    maxRetries,
	}
}

// Execute downloads a single post. Only transient connection failures are
// retried, with exponential backoff; everything else aborts immediately.
func (uc *DownloadPostUseCase) Execute(ctx context.Context, shortcode string, opts DownloadOptions, progress ProgressFunc) (*domain.DownloadResult, error) {
	report(progress, 10, "Fetching post data...")

	target := uc.organizer.TimestampedTarget(shortcode)
	destDir := filepath.Join(uc.downloadsRoot, target)

	var post *domain.Post
	operation := func() error {
		report(progress, 30, "Downloading media files...")
		p, err := uc.fetcher.FetchPost(ctx, shortcode, destDir)
		if err != nil {
			if errors.Is(err, domain.ErrConnection) {
				log.GlobalWarnCtx(ctx, "connection issue, backing off", "shortcode", shortcode)
				return err
			}
			return backoff.Permanent(err)
		}
		post = p
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(uc.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	report(progress, 60, "Organizing files...")
	if err := uc.organizer.Normalize(destDir); err != nil {
		return nil, fmt.Errorf("organize downloaded files: %w", err)
	}

	if opts.AddCover {
		report(progress, 80, "Creating cover image...")
		uc.composeCover(ctx, destDir)
	} else {
		report(progress, 80, "Finalizing...")
	}

	caption := BuildRepostCaption(post.Owner, post.Caption, opts.CustomCaption)
	if err := uc.organizer.SaveCaption(destDir, caption); err != nil {
		log.GlobalWarnCtx(ctx, "saving caption failed", "folder", destDir, "error", err)
	}

	files, err := uc.organizer.List(destDir)
	if err != nil {
		return nil, fmt.Errorf("list downloaded files: %w", err)
	}

	report(progress, 100, "Download completed!")

	return &domain.DownloadResult{
		Folder:        destDir,
		Files:         files,
		RepostCaption: caption,
		Message:       fmt.Sprintf("Successfully downloaded %d file(s)", len(files)),
	}, nil
}

// ExecuteProfile downloads all posts of a profile. No cover or caption is
// produced for profile downloads.
func (uc *DownloadPostUseCase) ExecuteProfile(ctx context.Context, username string, progress ProgressFunc) (*domain.DownloadResult, error) {
	report(progress, 10, "Connecting...")

	target := uc.organizer.TimestampedTarget("profile_" + username)
	destDir := filepath.Join(uc.downloadsRoot, target)

	operation := func() error {
		report(progress, 30, fmt.Sprintf("Downloading profile @%s...", username))
		err := uc.fetcher.FetchProfile(ctx, username, destDir)
		if err != nil && !errors.Is(err, domain.ErrConnection) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(uc.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	report(progress, 80, "Organizing files...")
	if err := uc.organizer.Normalize(destDir); err != nil {
		return nil, fmt.Errorf("organize downloaded files: %w", err)
	}

	files, err := uc.organizer.List(destDir)
	if err != nil {
		return nil, fmt.Errorf("list downloaded files: %w", err)
	}

	report(progress, 100, "Profile download completed!")

	return &domain.DownloadResult{
		Folder:  destDir,
		Files:   files,
		Message: fmt.Sprintf("Successfully downloaded profile with %d file(s)", len(files)),
	}, nil
}

// composeCover creates the cover as a separate file. Compose failures never
// fail the download; they are logged and skipped.
func (uc *DownloadPostUseCase) composeCover(ctx context.Context, folder string) {
	first, ok := uc.organizer.FirstMedia(folder)
	if !ok {
		log.GlobalInfoCtx(ctx, "no media found to compose", "folder", folder)
		return
	}

	coverPath, err := uc.composer.Compose(first)
	if err != nil {
		log.GlobalWarnCtx(ctx, "cover composition failed", "source", first, "error", err)
		return
	}
	if coverPath == "" {
		log.GlobalInfoCtx(ctx, "first media is not an image, skipping cover", "source", first)
		return
	}

	log.GlobalInfoCtx(ctx, "cover created", "cover", filepath.Base(coverPath))
}

func report(progress ProgressFunc, pct int, message string) {
	if progress != nil {
		progress(pct, message)
	}
}
