package source

import (
	"context"
	"errors"
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/llm"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// fakeExtractor returns canned extractions.
type fakeExtractor struct {
	extraction       *llm.Extraction
	err              error
	descriptionCalls int
	transcriptCalls  int
}

func (f *fakeExtractor) ExtractFromDescription(_ context.Context, _, _, _ string) (*llm.Extraction, error) {
	f.descriptionCalls++
	return f.extraction, f.err
}

func (f *fakeExtractor) ExtractRecipe(_ context.Context, _, _, _, _ string) (*llm.Extraction, error) {
	f.transcriptCalls++
	return f.extraction, f.err
}

func testExtraction() *llm.Extraction {
	return &llm.Extraction{
		RecipeName: "Dal Tadka",
		Servings:   4,
		Ingredients: []llm.RawIngredient{
			{Amount: "1", Unit: "cup", Item: "red lentils"},
			{Amount: "2", Unit: "tbsp", Item: "ghee"},
		},
		Instructions: []llm.RawStep{
			{Step: 1, Text: "Simmer the lentils."},
			{Step: 2, Text: "Temper the spices."},
		},
	}
}

const recipeDescription = `My favorite dal!

Ingredients:
1 cup red lentils
2 tbsp ghee
1 tsp cumin seeds

Method:
Simmer, then temper.`

func TestHasRecipe(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		description string
		want        bool
	}{
		{
			name:        "headers and quantities",
			description: recipeDescription,
			want:        true,
		},
		{
			name:        "ingredients header with three quantity lines",
			description: "Ingredients\n1 cup flour\n2 tbsp sugar\n1 tsp salt",
			want:        true,
		},
		{
			name:        "ingredients header alone without quantities",
			description: "Ingredients\nflour\nsugar",
			want:        false,
		},
		{
			name:        "ingredients mentioned mid-sentence",
			description: "All the ingredients you need for success!\n1 cup flour\n2 tbsp sugar\n1 tsp salt",
			want:        false,
		},
		{
			name:        "reference to pinned comment",
			description: "Ingredients\n1 cup x\n2 tbsp y\n3 tsp z\nfull ingredients list in the pinned comment",
			want:        false,
		},
		{
			name:        "empty",
			description: "",
			want:        false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasRecipe(tc.description); got != tc.want {
				t.Errorf("HasRecipe = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestDescriptionStrategyExtract(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		extractor := &fakeExtractor{extraction: testExtraction()}
		strategy := NewDescriptionStrategy(extractor, testNormalizer())

		result := strategy.Extract(context.Background(), model.VideoMetadata{
			Description: recipeDescription,
			Channel:     "Home Cooking",
			URL:         "https://www.youtube.com/watch?v=abc",
		})
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("outcome = %v (err=%v), expected success", result.Outcome, result.Err)
		}
		if result.Recipe.Name != "Dal Tadka" {
			t.Errorf("name = %q", result.Recipe.Name)
		}
		if len(result.Recipe.Ingredients) != 2 {
			t.Errorf("ingredients = %d, expected 2", len(result.Recipe.Ingredients))
		}
		if result.Recipe.Ingredients[0].Item != "red lentils" {
			t.Errorf("first ingredient = %+v", result.Recipe.Ingredients[0])
		}
	})

	t.Run("no recipe in description skips without a model call", func(t *testing.T) {
		t.Parallel()
		extractor := &fakeExtractor{extraction: testExtraction()}
		strategy := NewDescriptionStrategy(extractor, testNormalizer())

		result := strategy.Extract(context.Background(), model.VideoMetadata{Description: "thanks for watching"})
		if result.Outcome != OutcomeSkip {
			t.Errorf("outcome = %v, expected skip", result.Outcome)
		}
		if extractor.descriptionCalls != 0 {
			t.Error("model must not be called when the heuristics reject the description")
		}
	})

	t.Run("extraction failure is a skip", func(t *testing.T) {
		t.Parallel()
		extractor := &fakeExtractor{err: errors.New("model down")}
		strategy := NewDescriptionStrategy(extractor, testNormalizer())

		result := strategy.Extract(context.Background(), model.VideoMetadata{Description: recipeDescription})
		if result.Outcome != OutcomeSkip {
			t.Errorf("outcome = %v, expected skip", result.Outcome)
		}
	})
}
