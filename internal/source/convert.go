package source

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/llm"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// recipeFromExtraction converts a model extraction into a recipe. The
// model's ingredient triples are repaired into text lines and re-enter
// the normal gate path, so AI output gets the same validation as
// scraped lines.
func recipeFromExtraction(ctx context.Context, extraction *llm.Extraction, video model.VideoMetadata, normalizer Normalizer, logger *slog.Logger) *model.Recipe {
	recipe := &model.Recipe{
		Name:        strings.TrimSpace(extraction.RecipeName),
		Description: strings.TrimSpace(extraction.Description),
		PrepTime:    extraction.PrepTime,
		CookTime:    extraction.CookTime,
		TotalTime:   extraction.TotalTime,
		Servings:    int(extraction.Servings),
		Cuisine:     extraction.Cuisine,
		DishType:    extraction.DishType,
		Dietary:     extraction.Dietary,
		VideoURL:    video.URL,
		Channel:     video.Channel,
		NeedsReview: extraction.NeedsReview,
	}

	for _, line := range llm.RepairIngredients(extraction.Ingredients, logger) {
		recipe.Ingredients = append(recipe.Ingredients, normalizer.Normalize(ctx, line))
	}
	recipe.MarkReview()

	for i, step := range extraction.Instructions {
		text := strings.TrimSpace(step.Text)
		if text == "" {
			continue
		}
		recipe.Instructions = append(recipe.Instructions, model.InstructionStep{
			Step: i + 1,
			Text: text,
			Time: step.Time,
		})
	}
	return recipe
}
