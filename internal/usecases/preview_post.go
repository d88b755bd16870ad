package usecases

import (
	"context"
	"unicode/utf8"

	"reposter/internal/domain"
	"reposter/pkg/log"
)

// previewCaptionLimit bounds the caption length shown in previews.
const previewCaptionLimit = 300

// PostPreviewer fetches lightweight post metadata.
type PostPreviewer interface {
	Preview(ctx context.Context, shortcode string) (*domain.Preview, error)
}

// PreviewCache caches previews by shortcode.
type PreviewCache interface {
	Get(shortcode string) (*domain.Preview, bool)
	Set(shortcode string, preview *domain.Preview)
}

// PreviewPostUseCase retrieves post previews with a cache-first strategy.
type PreviewPostUseCase struct {
	cache     PreviewCache
	previewer PostPreviewer
}

// NewPreviewPostUseCase creates a new PreviewPostUseCase.
func NewPreviewPostUseCase(cache PreviewCache, previewer PostPreviewer) *PreviewPostUseCase {
	return &PreviewPostUseCase{
		cache:     cache,
		previewer: previewer,
	}
}

// Execute returns the preview for a shortcode, checking cache first.
// Captions are truncated to 300 characters with an ellipsis.
func (uc *PreviewPostUseCase) Execute(ctx context.Context, shortcode string) (*domain.Preview, error) {
	if preview, found := uc.cache.Get(shortcode); found {
		log.GlobalDebugCtx(ctx, "preview cache hit", "shortcode", shortcode)
		return preview, nil
	}

	log.GlobalDebugCtx(ctx, "preview cache miss, fetching", "shortcode", shortcode)

	preview, err := uc.previewer.Preview(ctx, shortcode)
	if err != nil {
		return nil, err
	}

	preview.Caption = truncateCaption(preview.Caption)

	uc.cache.Set(shortcode, preview)

	return preview, nil
}

func truncateCaption(caption string) string {
	if utf8.RuneCountInString(caption) <= previewCaptionLimit {
		return caption
	}
	runes := []rune(caption)
	return string(runes[:previewCaptionLimit]) + "..."
}
