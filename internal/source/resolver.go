package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// ErrNoSource is returned when every strategy skipped and none failed
// hard. With the AI tier configured this cannot happen; it exists for
// resolvers assembled without it.
var ErrNoSource = errors.New("source: no strategy produced a recipe")

// Outcome classifies one strategy attempt.
type Outcome int

const (
	// OutcomeSuccess means the strategy produced a recipe.
	OutcomeSuccess Outcome = iota

	// OutcomeSkip means the strategy does not apply or failed
	// recoverably; the resolver advances to the next tier.
	OutcomeSkip

	// OutcomeHardError means the failure is the extraction's failure and
	// no further tier runs.
	OutcomeHardError
)

// Result is the outcome of one strategy attempt. Recipe is set only on
// success; Err carries the skip reason or the hard failure.
type Result struct {
	Outcome Outcome
	Recipe  *model.Recipe
	Err     error
}

// Succeeded wraps a produced recipe.
func Succeeded(recipe *model.Recipe) Result {
	return Result{Outcome: OutcomeSuccess, Recipe: recipe}
}

// Skipped records a recoverable miss with its reason.
func Skipped(err error) Result {
	return Result{Outcome: OutcomeSkip, Err: err}
}

// Failed records a hard failure.
func Failed(err error) Result {
	return Result{Outcome: OutcomeHardError, Err: err}
}

// Strategy is one recipe source tier.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Source is the provenance recorded on recipes this strategy
	// produces.
	Source() model.SourceKind

	// Extract attempts to produce a recipe for the video.
	Extract(ctx context.Context, video model.VideoMetadata) Result
}

// TipsMiner extracts cooking tips from a transcript. Implemented by
// llm.Extractor.
type TipsMiner interface {
	Tips(ctx context.Context, recipeName, transcript string) ([]string, error)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTips enables tips enrichment after a tier 1 or 2 success.
func WithTips(miner TipsMiner) ResolverOption {
	return func(r *Resolver) {
		r.tips = miner
	}
}

// WithResolverLogger sets a custom logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolver runs the strategies in order and returns the first recipe.
type Resolver struct {
	strategies []Strategy
	tips       TipsMiner
	logger     *slog.Logger
}

// NewResolver creates a resolver over the given strategies. Order is
// priority order.
func NewResolver(strategies []Strategy, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		strategies: strategies,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds a recipe for the video. A skip advances to the next
// strategy; a hard error stops resolution and becomes the extraction's
// failure reason. Later strategies never run once an earlier one
// succeeds or fails hard.
func (r *Resolver) Resolve(ctx context.Context, video model.VideoMetadata) (model.SourceResult, error) {
	for _, strategy := range r.strategies {
		result := strategy.Extract(ctx, video)
		switch result.Outcome {
		case OutcomeSuccess:
			r.logger.Info("recipe source selected",
				"strategy", strategy.Name(),
				"video", video.ID,
			)
			recipe := result.Recipe
			recipe.Source = strategy.Source()
			r.enrichTips(ctx, recipe, strategy.Source(), video)
			return model.SourceResult{Source: strategy.Source(), Recipe: recipe}, nil
		case OutcomeSkip:
			r.logger.Debug("source strategy skipped",
				"strategy", strategy.Name(),
				"video", video.ID,
				"reason", result.Err,
			)
		case OutcomeHardError:
			return model.SourceResult{}, fmt.Errorf("source: %s: %w", strategy.Name(), result.Err)
		}
	}
	return model.SourceResult{}, ErrNoSource
}

// enrichTips attaches transcript tips to a scraped or description
// recipe. The AI tier already had the transcript, so it is excluded.
// Failure only logs; the recipe stands without tips.
func (r *Resolver) enrichTips(ctx context.Context, recipe *model.Recipe, source model.SourceKind, video model.VideoMetadata) {
	if r.tips == nil || source == model.SourceAIExtraction || video.Transcript == "" {
		return
	}
	tips, err := r.tips.Tips(ctx, recipe.Name, video.Transcript)
	if err != nil {
		r.logger.Warn("tips extraction failed", "video", video.ID, "error", err)
		return
	}
	recipe.Tips = tips
}
