package usecases

import (
	"context"

	"reposter/internal/domain"
	"reposter/internal/thread"
	"reposter/pkg/log"
)

// AdjustThreadUseCase splits free text into validated thread parts.
type AdjustThreadUseCase struct{}

// NewAdjustThreadUseCase creates a new AdjustThreadUseCase.
func NewAdjustThreadUseCase() *AdjustThreadUseCase {
	return &AdjustThreadUseCase{}
}

// Execute runs the segmentation engine over the given text. The engine is
// pure and reentrant; concurrent calls need no coordination.
func (uc *AdjustThreadUseCase) Execute(ctx context.Context, text string) domain.ThreadResult {
	result := thread.Adjust(text)

	if !result.Success {
		log.GlobalWarnCtx(ctx, "thread adjustment failed validation",
			"count", result.Count, "violations", len(result.Errors))
		return result
	}

	log.GlobalDebugCtx(ctx, "thread adjusted", "count", result.Count)
	return result
}
