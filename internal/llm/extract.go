package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Schema gate thresholds. A "recipe" with one ingredient or one step is
// almost always a hallucinated fragment, so extraction retries once and
// then fails rather than saving it.
const (
	minIngredients = 2
	minSteps       = 2
	maxTips        = 5
)

// ErrIncompleteRecipe is returned when the model's output fails the
// schema gate after the retry.
var ErrIncompleteRecipe = errors.New("llm: extracted recipe is incomplete")

// Generator is the model call the extractor depends on. *Client
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RawIngredient is one ingredient as the model emits it. Amount is kept
// loose (number or string) and the whole triple is structurally
// unreliable; RepairIngredients cleans it up before the record enters
// the pipeline.
type RawIngredient struct {
	Amount   any    `json:"amount"`
	Unit     string `json:"unit"`
	Item     string `json:"item"`
	Inferred bool   `json:"inferred"`
}

// AmountText renders the loose amount field as text.
func (r RawIngredient) AmountText() string {
	switch v := r.Amount.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// RawStep is one instruction step as the model emits it.
type RawStep struct {
	Step int    `json:"step"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// Extraction is the model's recipe payload.
type Extraction struct {
	RecipeName   string          `json:"recipe_name"`
	Description  string          `json:"description"`
	PrepTime     string          `json:"prep_time"`
	CookTime     string          `json:"cook_time"`
	TotalTime    string          `json:"total_time"`
	Servings     float64         `json:"servings"`
	Cuisine      string          `json:"cuisine"`
	DishType     string          `json:"dish_type"`
	Dietary      []string        `json:"dietary"`
	Ingredients  []RawIngredient `json:"ingredients"`
	Instructions []RawStep       `json:"instructions"`
	NeedsReview  bool            `json:"needs_review"`
}

// validate applies the schema gate.
func (e *Extraction) validate() error {
	if strings.TrimSpace(e.RecipeName) == "" {
		return fmt.Errorf("%w: missing recipe name", ErrIncompleteRecipe)
	}
	if len(e.Ingredients) < minIngredients {
		return fmt.Errorf("%w: %d ingredients, need at least %d",
			ErrIncompleteRecipe, len(e.Ingredients), minIngredients)
	}
	if len(e.Instructions) < minSteps {
		return fmt.Errorf("%w: %d instruction steps, need at least %d",
			ErrIncompleteRecipe, len(e.Instructions), minSteps)
	}
	return nil
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger sets a custom logger.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// Extractor runs the recipe prompts against a model.
type Extractor struct {
	gen    Generator
	logger *slog.Logger
}

// NewExtractor creates an extractor over the given model client.
func NewExtractor(gen Generator, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		gen:    gen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractRecipe extracts a full recipe from the video's transcript and
// description. Output failing the schema gate triggers exactly one
// retry; a second failure is returned to the caller as the extraction's
// failure reason.
func (e *Extractor) ExtractRecipe(ctx context.Context, title, channel, description, transcript string) (*Extraction, error) {
	prompt := buildExtractionPrompt(title, channel, description, transcript)
	return e.extract(ctx, prompt)
}

// ExtractFromDescription extracts a recipe from a description that
// already contains one. Same schema gate and retry as ExtractRecipe.
func (e *Extractor) ExtractFromDescription(ctx context.Context, title, channel, description string) (*Extraction, error) {
	prompt := buildDescriptionPrompt(title, channel, description)
	return e.extract(ctx, prompt)
}

func (e *Extractor) extract(ctx context.Context, prompt string) (*Extraction, error) {
	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		extraction, err := e.generateExtraction(ctx, prompt)
		if err == nil {
			return extraction, nil
		}
		lastErr = err
		if attempt == 1 {
			e.logger.Warn("extraction failed, retrying once", "error", err)
		}
	}
	return nil, lastErr
}

func (e *Extractor) generateExtraction(ctx context.Context, prompt string) (*Extraction, error) {
	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var extraction Extraction
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return nil, fmt.Errorf("llm: unmarshal extraction: %w", err)
	}
	if err := extraction.validate(); err != nil {
		return nil, err
	}
	return &extraction, nil
}

// Tips mines up to five cooking tips from the transcript. An empty
// transcript yields no tips without a model call.
func (e *Extractor) Tips(ctx context.Context, recipeName, transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, nil
	}
	raw, err := e.gen.Generate(ctx, buildTipsPrompt(recipeName, transcript))
	if err != nil {
		return nil, err
	}

	// The model is asked for a bare array but sometimes wraps it in an
	// object with a "tips" key.
	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		var wrapped struct {
			Tips []any `json:"tips"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil, fmt.Errorf("llm: unmarshal tips: %w", err)
		}
		entries = wrapped.Tips
	}

	tips := make([]string, 0, len(entries))
	for _, entry := range entries {
		tip, ok := entry.(string)
		if !ok {
			continue
		}
		tip = strings.TrimSpace(tip)
		if tip == "" {
			continue
		}
		tips = append(tips, tip)
		if len(tips) == maxTips {
			break
		}
	}
	return tips, nil
}
