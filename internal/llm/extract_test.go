package llm

import (
	"context"
	"errors"
	"testing"
)

// scriptedGenerator returns canned responses in order, one per call.
type scriptedGenerator struct {
	responses []string
	errs      []error
	calls     int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ string) (string, error) {
	i := g.calls
	g.calls++
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	var err error
	if i < len(g.errs) {
		err = g.errs[i]
	}
	return g.responses[i], err
}

const validExtraction = `{
	"recipe_name": "Garlic Butter Pasta",
	"description": "Quick weeknight pasta.",
	"servings": 4,
	"ingredients": [
		{"amount": "1", "unit": "lb", "item": "spaghetti", "inferred": false},
		{"amount": "4", "unit": "cloves", "item": "garlic", "inferred": false},
		{"amount": "2", "unit": "tbsp", "item": "butter", "inferred": false}
	],
	"instructions": [
		{"step": 1, "text": "Boil the pasta.", "time": "10 minutes"},
		{"step": 2, "text": "Toss with garlic butter.", "time": null}
	],
	"needs_review": false
}`

func TestExtractRecipe(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: []string{validExtraction}}
	extractor := NewExtractor(gen)

	extraction, err := extractor.ExtractRecipe(context.Background(), "title", "channel", "desc", "transcript")
	if err != nil {
		t.Fatal(err)
	}
	if extraction.RecipeName != "Garlic Butter Pasta" {
		t.Errorf("name = %q", extraction.RecipeName)
	}
	if len(extraction.Ingredients) != 3 {
		t.Errorf("ingredients = %d, expected 3", len(extraction.Ingredients))
	}
	if extraction.Servings != 4 {
		t.Errorf("servings = %v, expected 4", extraction.Servings)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, expected 1", gen.calls)
	}
}

func TestExtractRecipeRetriesOnce(t *testing.T) {
	t.Parallel()

	incomplete := `{"recipe_name": "Fragment", "ingredients": [{"item": "salt"}], "instructions": []}`
	gen := &scriptedGenerator{responses: []string{incomplete, validExtraction}}
	extractor := NewExtractor(gen)

	extraction, err := extractor.ExtractRecipe(context.Background(), "t", "c", "d", "tr")
	if err != nil {
		t.Fatal(err)
	}
	if extraction.RecipeName != "Garlic Butter Pasta" {
		t.Errorf("name = %q, expected the retried result", extraction.RecipeName)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, expected 2", gen.calls)
	}
}

func TestExtractRecipeFailsAfterRetry(t *testing.T) {
	t.Parallel()

	incomplete := `{"recipe_name": "Fragment", "ingredients": [], "instructions": []}`
	gen := &scriptedGenerator{responses: []string{incomplete, incomplete}}
	extractor := NewExtractor(gen)

	_, err := extractor.ExtractRecipe(context.Background(), "t", "c", "d", "tr")
	if !errors.Is(err, ErrIncompleteRecipe) {
		t.Errorf("error = %v, expected ErrIncompleteRecipe", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, expected exactly 2 (one retry)", gen.calls)
	}
}

func TestExtractRecipeBadJSON(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: []string{"not json", "still not json"}}
	extractor := NewExtractor(gen)

	_, err := extractor.ExtractRecipe(context.Background(), "t", "c", "d", "tr")
	if err == nil {
		t.Fatal("expected an error")
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, expected 2", gen.calls)
	}
}

func TestExtractionValidate(t *testing.T) {
	t.Parallel()

	twoIngredients := []RawIngredient{{Item: "a"}, {Item: "b"}}
	twoSteps := []RawStep{{Step: 1, Text: "x"}, {Step: 2, Text: "y"}}

	testCases := []struct {
		name       string
		extraction Extraction
		wantErr    bool
	}{
		{
			name:       "complete",
			extraction: Extraction{RecipeName: "Soup", Ingredients: twoIngredients, Instructions: twoSteps},
		},
		{
			name:       "missing name",
			extraction: Extraction{Ingredients: twoIngredients, Instructions: twoSteps},
			wantErr:    true,
		},
		{
			name:       "one ingredient",
			extraction: Extraction{RecipeName: "Soup", Ingredients: twoIngredients[:1], Instructions: twoSteps},
			wantErr:    true,
		},
		{
			name:       "one step",
			extraction: Extraction{RecipeName: "Soup", Ingredients: twoIngredients, Instructions: twoSteps[:1]},
			wantErr:    true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.extraction.validate()
			if tc.wantErr && !errors.Is(err, ErrIncompleteRecipe) {
				t.Errorf("error = %v, expected ErrIncompleteRecipe", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTips(t *testing.T) {
	t.Parallel()

	t.Run("bare array capped at five", func(t *testing.T) {
		t.Parallel()
		gen := &scriptedGenerator{responses: []string{
			`["one", "two", "three", "four", "five", "six", "seven"]`,
		}}
		tips, err := NewExtractor(gen).Tips(context.Background(), "Soup", "transcript")
		if err != nil {
			t.Fatal(err)
		}
		if len(tips) != 5 {
			t.Errorf("tips = %d, expected the cap of 5", len(tips))
		}
	})

	t.Run("wrapped object", func(t *testing.T) {
		t.Parallel()
		gen := &scriptedGenerator{responses: []string{`{"tips": ["rest the meat"]}`}}
		tips, err := NewExtractor(gen).Tips(context.Background(), "Soup", "transcript")
		if err != nil {
			t.Fatal(err)
		}
		if len(tips) != 1 || tips[0] != "rest the meat" {
			t.Errorf("tips = %v", tips)
		}
	})

	t.Run("non-string entries dropped", func(t *testing.T) {
		t.Parallel()
		gen := &scriptedGenerator{responses: []string{`["good", 42, "", "also good"]`}}
		tips, err := NewExtractor(gen).Tips(context.Background(), "Soup", "transcript")
		if err != nil {
			t.Fatal(err)
		}
		if len(tips) != 2 {
			t.Errorf("tips = %v, expected the two strings", tips)
		}
	})

	t.Run("empty transcript skips the model", func(t *testing.T) {
		t.Parallel()
		gen := &scriptedGenerator{responses: []string{`[]`}}
		tips, err := NewExtractor(gen).Tips(context.Background(), "Soup", "  ")
		if err != nil {
			t.Fatal(err)
		}
		if tips != nil {
			t.Errorf("tips = %v, expected none", tips)
		}
		if gen.calls != 0 {
			t.Errorf("generator called %d times, expected 0", gen.calls)
		}
	})
}
