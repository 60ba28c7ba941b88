package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/llm"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// Description heuristics. A description "contains a recipe" when it has
// an Ingredients header plus either a method header or enough quantity
// lines to be a real ingredient list rather than nutrition info.
const minQuantityLines = 3

var (
	ingredientsHeader = regexp.MustCompile(`(?m)^(?:\*{1,2})?ingredients(?:\*{1,2})?(?:\s*:)?\s*$`)
	methodHeader      = regexp.MustCompile(`(?m)^(?:\*{1,2})?(?:method|instructions|directions)(?:\*{1,2})?(?:\s*:)?\s*$`)
	quantityLine      = regexp.MustCompile(`\d+\s*(?:cup|tbsp|tsp|oz|lb|g|kg|ml|clove|bunch|head)\b`)

	// referencePatterns catch descriptions that point at the recipe
	// elsewhere ("ingredients in pinned comment") instead of containing
	// one.
	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`ingredients.*(?:in|see|check|find).*(?:pinned|comment|video|link|below|description)`),
		regexp.MustCompile(`(?:pinned|comment).*ingredients`),
		regexp.MustCompile(`ingredients.*you'll need.*(?:pinned|comment)`),
	}
)

// HasRecipe reports whether a description appears to contain a written
// recipe worth sending to the model.
func HasRecipe(description string) bool {
	if description == "" {
		return false
	}
	lower := strings.ToLower(description)

	for _, pattern := range referencePatterns {
		if pattern.MatchString(lower) {
			return false
		}
	}

	if !ingredientsHeader.MatchString(lower) {
		return false
	}
	if methodHeader.MatchString(lower) {
		return true
	}
	return len(quantityLine.FindAllString(lower, -1)) >= minQuantityLines
}

// RecipeExtractor is the model-backed extraction the description and
// transcript tiers depend on. Implemented by llm.Extractor.
type RecipeExtractor interface {
	ExtractFromDescription(ctx context.Context, title, channel, description string) (*llm.Extraction, error)
	ExtractRecipe(ctx context.Context, title, channel, description, transcript string) (*llm.Extraction, error)
}

// DescriptionOption configures a DescriptionStrategy.
type DescriptionOption func(*DescriptionStrategy)

// WithDescriptionLogger sets a custom logger.
func WithDescriptionLogger(logger *slog.Logger) DescriptionOption {
	return func(s *DescriptionStrategy) {
		s.logger = logger
	}
}

// DescriptionStrategy is tier 2: the description itself contains a
// written recipe, which the model transcribes into structure. Any
// failure is a skip.
type DescriptionStrategy struct {
	extractor  RecipeExtractor
	normalizer Normalizer
	logger     *slog.Logger
}

// NewDescriptionStrategy creates the description tier.
func NewDescriptionStrategy(extractor RecipeExtractor, normalizer Normalizer, opts ...DescriptionOption) *DescriptionStrategy {
	s := &DescriptionStrategy{
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
func (s *DescriptionStrategy) Name() string { return "description" }

// Source implements Strategy.
func (s *DescriptionStrategy) Source() model.SourceKind { return model.SourceDescription }

// Extract implements Strategy.
func (s *DescriptionStrategy) Extract(ctx context.Context, video model.VideoMetadata) Result {
	if !HasRecipe(video.Description) {
		return Skipped(errors.New("description does not contain a recipe"))
	}

	extraction, err := s.extractor.ExtractFromDescription(ctx, video.Title, video.Channel, video.Description)
	if err != nil {
		return Skipped(fmt.Errorf("description extraction: %w", err))
	}

	return Succeeded(recipeFromExtraction(ctx, extraction, video, s.normalizer, s.logger))
}
