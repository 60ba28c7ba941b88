package source

import (
	"context"
	"log/slog"
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/llm"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// stubNormalizer returns one fixed record per line, optionally flagged
// for review.
type stubNormalizer struct {
	needsReview bool
}

func (s stubNormalizer) Normalize(_ context.Context, raw string) model.IngredientRecord {
	return model.IngredientRecord{
		Amount:      model.Number(1),
		Unit:        model.UnitWhole,
		Item:        raw,
		Confidence:  0.9,
		NeedsReview: s.needsReview,
	}
}

func TestRecipeFromExtraction(t *testing.T) {
	t.Parallel()

	t.Run("single flagged ingredient flags the recipe", func(t *testing.T) {
		t.Parallel()
		extraction := &llm.Extraction{
			RecipeName:  "Poached Egg",
			Ingredients: []llm.RawIngredient{{Amount: "1", Unit: "", Item: "egg"}},
		}

		recipe := recipeFromExtraction(context.Background(), extraction,
			model.VideoMetadata{}, stubNormalizer{needsReview: true}, slog.Default())

		if len(recipe.Ingredients) != 1 {
			t.Fatalf("ingredients = %d, expected 1", len(recipe.Ingredients))
		}
		if !recipe.NeedsReview {
			t.Error("recipe must be flagged when its only ingredient record needs review")
		}
	})

	t.Run("model review flag survives clean ingredients", func(t *testing.T) {
		t.Parallel()
		extraction := testExtraction()
		extraction.NeedsReview = true

		recipe := recipeFromExtraction(context.Background(), extraction,
			model.VideoMetadata{}, stubNormalizer{}, slog.Default())

		if !recipe.NeedsReview {
			t.Error("the extraction's own review flag must not be cleared")
		}
	})

	t.Run("clean extraction is not flagged", func(t *testing.T) {
		t.Parallel()
		recipe := recipeFromExtraction(context.Background(), testExtraction(),
			model.VideoMetadata{}, stubNormalizer{}, slog.Default())

		if recipe.NeedsReview {
			t.Errorf("recipe flagged for review, records = %+v", recipe.Ingredients)
		}
	})

	t.Run("instructions keep their order and drop blanks", func(t *testing.T) {
		t.Parallel()
		extraction := testExtraction()
		extraction.Instructions = append(extraction.Instructions, llm.RawStep{Step: 3, Text: "   "})

		recipe := recipeFromExtraction(context.Background(), extraction,
			model.VideoMetadata{}, stubNormalizer{}, slog.Default())

		if len(recipe.Instructions) != 2 {
			t.Fatalf("instructions = %d, expected the blank step dropped", len(recipe.Instructions))
		}
		if recipe.Instructions[1].Step != 2 {
			t.Errorf("second step numbered %d, expected 2", recipe.Instructions[1].Step)
		}
	})
}
