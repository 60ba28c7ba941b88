package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/database"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/report"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/youtube"
)

// VideoFetcher retrieves video metadata and transcript.
// youtube.Client satisfies this.
type VideoFetcher interface {
	Fetch(ctx context.Context, videoID string) (model.VideoMetadata, error)
}

// RecipeResolver resolves a video into a recipe through the source
// tiers. source.Resolver satisfies this.
type RecipeResolver interface {
	Resolve(ctx context.Context, video model.VideoMetadata) (model.SourceResult, error)
}

// RecipeStore is the storage surface the pipeline needs.
// database.RecipeDB satisfies this.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, recipe *model.Recipe) error
	RecipeByVideoURL(ctx context.Context, videoURL string) (*model.Recipe, error)
}

// ValidateURLStep parses the raw input into a video ID.
// Anything that is not a usable YouTube URL marks the extraction
// invalid before any network traffic happens.
type ValidateURLStep struct{}

// NewValidateURLStep creates a URL validation step.
func NewValidateURLStep() *ValidateURLStep {
	return &ValidateURLStep{}
}

// Name returns the step name.
func (s *ValidateURLStep) Name() string {
	return "validate_url"
}

// Do parses the video ID and records the canonical watch URL.
func (s *ValidateURLStep) Do(_ context.Context, ext *Extraction) error {
	id, err := youtube.ParseVideoID(ext.RawURL)
	if err != nil {
		ext.Status = StatusInvalid
		return fmt.Errorf("pipeline: %w", err)
	}
	ext.VideoID = id
	ext.Video.ID = id
	ext.Video.URL = youtube.WatchURL(id)
	return nil
}

// DuplicateCheckStep skips videos whose recipe is already stored.
// It runs before the fetch step because the canonical watch URL is
// known from the video ID alone, so a duplicate costs no network
// traffic at all.
type DuplicateCheckStep struct {
	// store is the recipe store, nil disables the check.
	store RecipeStore

	// logger for structured logging.
	logger *slog.Logger
}

// DuplicateCheckStepOption configures a DuplicateCheckStep.
type DuplicateCheckStepOption func(*DuplicateCheckStep)

// WithDuplicateCheckLogger sets a custom logger for the step.
func WithDuplicateCheckLogger(logger *slog.Logger) DuplicateCheckStepOption {
	return func(s *DuplicateCheckStep) {
		s.logger = logger
	}
}

// NewDuplicateCheckStep creates a duplicate check step.
// A nil store turns the step into a no-op.
func NewDuplicateCheckStep(store RecipeStore, opts ...DuplicateCheckStepOption) *DuplicateCheckStep {
	s := &DuplicateCheckStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DuplicateCheckStep) Name() string {
	return "duplicate_check"
}

// Do looks up the canonical watch URL in the store.
func (s *DuplicateCheckStep) Do(ctx context.Context, ext *Extraction) error {
	if s.store == nil {
		return nil
	}

	existing, err := s.store.RecipeByVideoURL(ctx, ext.Video.URL)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return nil
		}
		return fmt.Errorf("pipeline: duplicate check: %w", err)
	}

	s.logger.Info("recipe already extracted, skipping",
		"url", ext.Video.URL,
		"recipe", existing.Name,
	)
	ext.Status = StatusSkipped
	ext.Reason = fmt.Sprintf("already extracted as %q", existing.Name)
	ext.Recipe = existing
	return ErrAlreadyExtracted
}

// FetchVideoStep retrieves metadata, description, and transcript.
type FetchVideoStep struct {
	// fetcher is the YouTube client.
	fetcher VideoFetcher

	// logger for structured logging.
	logger *slog.Logger
}

// FetchVideoStepOption configures a FetchVideoStep.
type FetchVideoStepOption func(*FetchVideoStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchVideoStepOption {
	return func(s *FetchVideoStep) {
		s.logger = logger
	}
}

// NewFetchVideoStep creates a video fetch step.
func NewFetchVideoStep(fetcher VideoFetcher, opts ...FetchVideoStepOption) *FetchVideoStep {
	s := &FetchVideoStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchVideoStep) Name() string {
	return "fetch_video"
}

// Do fetches the video and stores its metadata on the extraction.
func (s *FetchVideoStep) Do(ctx context.Context, ext *Extraction) error {
	video, err := s.fetcher.Fetch(ctx, ext.VideoID)
	if err != nil {
		return fmt.Errorf("pipeline: fetch video: %w", err)
	}

	s.logger.Debug("fetched video",
		"title", video.Title,
		"channel", video.Channel,
		"has_transcript", video.Transcript != "",
	)
	ext.Video = video
	return nil
}

// ResolveRecipeStep runs the source tiers until one produces a recipe.
type ResolveRecipeStep struct {
	// resolver walks the source strategies in priority order.
	resolver RecipeResolver
}

// NewResolveRecipeStep creates a recipe resolution step.
func NewResolveRecipeStep(resolver RecipeResolver) *ResolveRecipeStep {
	return &ResolveRecipeStep{resolver: resolver}
}

// Name returns the step name.
func (s *ResolveRecipeStep) Name() string {
	return "resolve_recipe"
}

// Do resolves the recipe and stores the result on the extraction.
func (s *ResolveRecipeStep) Do(ctx context.Context, ext *Extraction) error {
	result, err := s.resolver.Resolve(ctx, ext.Video)
	if err != nil {
		return fmt.Errorf("pipeline: resolve recipe: %w", err)
	}

	ext.Result = &result
	ext.Recipe = result.Recipe
	return nil
}

// SaveRecipeStep persists the extracted recipe.
type SaveRecipeStep struct {
	// store is the recipe store, nil disables persistence.
	store RecipeStore
}

// NewSaveRecipeStep creates a save step.
// A nil store turns the step into a no-op.
func NewSaveRecipeStep(store RecipeStore) *SaveRecipeStep {
	return &SaveRecipeStep{store: store}
}

// Name returns the step name.
func (s *SaveRecipeStep) Name() string {
	return "save_recipe"
}

// Do saves the recipe to the store.
func (s *SaveRecipeStep) Do(ctx context.Context, ext *Extraction) error {
	if s.store == nil || ext.Recipe == nil {
		return nil
	}

	if err := s.store.SaveRecipe(ctx, ext.Recipe); err != nil {
		return fmt.Errorf("pipeline: save recipe: %w", err)
	}
	return nil
}

// WriteReportStep renders the extracted recipe through a report writer.
type WriteReportStep struct {
	// writer receives the recipe, nil disables reporting.
	writer report.Writer
}

// NewWriteReportStep creates a report step.
// A nil writer turns the step into a no-op.
func NewWriteReportStep(writer report.Writer) *WriteReportStep {
	return &WriteReportStep{writer: writer}
}

// Name returns the step name.
func (s *WriteReportStep) Name() string {
	return "write_report"
}

// Do writes the recipe report.
func (s *WriteReportStep) Do(_ context.Context, ext *Extraction) error {
	if s.writer == nil || ext.Recipe == nil {
		return nil
	}

	if _, err := s.writer.WriteRecipe(ext.Recipe); err != nil {
		return fmt.Errorf("pipeline: write report: %w", err)
	}
	return nil
}
