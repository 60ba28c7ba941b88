package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// TranscriptOption configures a TranscriptStrategy.
type TranscriptOption func(*TranscriptStrategy)

// WithTranscriptLogger sets a custom logger.
func WithTranscriptLogger(logger *slog.Logger) TranscriptOption {
	return func(s *TranscriptStrategy) {
		s.logger = logger
	}
}

// TranscriptStrategy is tier 3, the floor: the model extracts a recipe
// from the transcript and description. There is no tier below it, so
// its failure is a hard error and becomes the extraction's failure
// reason.
type TranscriptStrategy struct {
	extractor  RecipeExtractor
	normalizer Normalizer
	logger     *slog.Logger
}

// NewTranscriptStrategy creates the AI extraction tier.
func NewTranscriptStrategy(extractor RecipeExtractor, normalizer Normalizer, opts ...TranscriptOption) *TranscriptStrategy {
	s := &TranscriptStrategy{
		extractor:  extractor,
		normalizer: normalizer,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Strategy.
func (s *TranscriptStrategy) Name() string { return "ai" }

// Source implements Strategy.
func (s *TranscriptStrategy) Source() model.SourceKind { return model.SourceAIExtraction }

// Extract implements Strategy.
func (s *TranscriptStrategy) Extract(ctx context.Context, video model.VideoMetadata) Result {
	extraction, err := s.extractor.ExtractRecipe(ctx, video.Title, video.Channel, video.Description, video.Transcript)
	if err != nil {
		return Failed(fmt.Errorf("transcript extraction: %w", err))
	}
	return Succeeded(recipeFromExtraction(ctx, extraction, video, s.normalizer, s.logger))
}
