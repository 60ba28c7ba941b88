package parser

import (
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

func newTestParser() *Parser {
	return New(units.NewTable())
}

// TestParseKnownUnits tests that "<N> <unit> <item>" lines with known
// unit synonyms resolve to the canonical unit with the amount intact.
func TestParseKnownUnits(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	testCases := []struct {
		input      string
		wantAmount string
		wantUnit   string
		wantItem   string
	}{
		{"2 cups flour", "2", "cup", "flour"},
		{"1 tablespoon olive oil", "1", "tbsp", "olive oil"},
		{"3 tbs butter", "3", "tbsp", "butter"},
		{"0.5 teaspoons salt", "0.5", "tsp", "salt"},
		{"4 ounces cream cheese", "4", "oz", "cream cheese"},
		{"2 lbs chicken thighs", "2", "lb", "chicken thighs"},
		{"250 grams sugar", "250", "g", "sugar"},
		{"1 kilogram potatoes", "1", "kg", "potatoes"},
		{"500 ml stock", "500", "ml", "stock"},
		{"2 liters water", "2", "l", "water"},
		{"3 cloves garlic", "3", "clove", "garlic"},
		{"1 head cabbage", "1", "head", "cabbage"},
		{"2 bunches cilantro", "2", "bunch", "cilantro"},
		{"4 sprigs thyme", "4", "sprig", "thyme"},
		{"6 slices bacon", "6", "slice", "bacon"},
		{"2 cans crushed tomatoes", "2", "can", "crushed tomatoes"},
		{"8 fluid ounces milk", "8", "fl oz", "milk"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			rec := p.Parse(tc.input)
			if rec.Amount.Display() != tc.wantAmount {
				t.Errorf("amount = %q, expected %q", rec.Amount.Display(), tc.wantAmount)
			}
			if rec.Unit != tc.wantUnit {
				t.Errorf("unit = %q, expected %q", rec.Unit, tc.wantUnit)
			}
			if rec.Item != tc.wantItem {
				t.Errorf("item = %q, expected %q", rec.Item, tc.wantItem)
			}
			if rec.Inferred {
				t.Error("verbatim parse should not be marked inferred")
			}
			if rec.Confidence != ConfidenceVerbatim {
				t.Errorf("confidence = %v, expected %v", rec.Confidence, ConfidenceVerbatim)
			}
		})
	}
}

// TestParseEdgeCases tests the exact behavior required for known
// troublesome inputs.
func TestParseEdgeCases(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	testCases := []struct {
		name       string
		input      string
		wantAmount string
		wantUnit   string
		wantItem   string
	}{
		{
			name:       "inch mark after amount",
			input:      `1" knob fresh ginger`,
			wantAmount: "1",
			wantUnit:   "knob",
			wantItem:   "fresh ginger",
		},
		{
			name:       "range kept as literal string",
			input:      "3-4 cloves garlic",
			wantAmount: "3-4",
			wantUnit:   "clove",
			wantItem:   "garlic",
		},
		{
			name:       "informal suffix phrase",
			input:      "Salt and pepper to taste",
			wantAmount: "1",
			wantUnit:   "to taste",
			wantItem:   "salt and pepper",
		},
		{
			name:       "bare item line",
			input:      "Lavash bread",
			wantAmount: "1",
			wantUnit:   "whole",
			wantItem:   "lavash bread",
		},
		{
			name:       "spelled-out number word",
			input:      "One large onion",
			wantAmount: "1",
			wantUnit:   "whole",
			wantItem:   "large onion",
		},
		{
			name:       "informal prefix with of",
			input:      "a pinch of saffron",
			wantAmount: "1",
			wantUnit:   "a pinch",
			wantItem:   "saffron",
		},
		{
			name:       "mixed number",
			input:      "1 1/2 cups sugar",
			wantAmount: "1.5",
			wantUnit:   "cup",
			wantItem:   "sugar",
		},
		{
			name:       "simple fraction",
			input:      "3/4 tsp baking soda",
			wantAmount: "0.75",
			wantUnit:   "tsp",
			wantItem:   "baking soda",
		},
		{
			name:       "vulgar fraction rune",
			input:      "½ cup sugar",
			wantAmount: "0.5",
			wantUnit:   "cup",
			wantItem:   "sugar",
		},
		{
			name:       "digit glued to vulgar fraction",
			input:      "1½ cups milk",
			wantAmount: "1.5",
			wantUnit:   "cup",
			wantItem:   "milk",
		},
		{
			name:       "amount and unit but no item",
			input:      "2 cups",
			wantAmount: "1",
			wantUnit:   "whole",
			wantItem:   "2 cups",
		},
		{
			name:       "twelve as word",
			input:      "twelve eggs",
			wantAmount: "12",
			wantUnit:   "whole",
			wantItem:   "eggs",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := p.Parse(tc.input)
			if rec.Amount.Display() != tc.wantAmount {
				t.Errorf("amount = %q, expected %q", rec.Amount.Display(), tc.wantAmount)
			}
			if rec.Unit != tc.wantUnit {
				t.Errorf("unit = %q, expected %q", rec.Unit, tc.wantUnit)
			}
			if rec.Item != tc.wantItem {
				t.Errorf("item = %q, expected %q", rec.Item, tc.wantItem)
			}
		})
	}
}

// TestParseRangeNeverResolved tests that a range amount survives as the
// literal text and still sums as its midpoint.
func TestParseRangeNeverResolved(t *testing.T) {
	t.Parallel()

	rec := newTestParser().Parse("3-4 cloves garlic")
	if !rec.Amount.IsRange() {
		t.Fatal("expected a range amount")
	}
	if rec.Amount.Display() != "3-4" {
		t.Errorf("display = %q, expected the literal 3-4", rec.Amount.Display())
	}
	mid, ok := rec.Amount.Value()
	if !ok || mid != 3.5 {
		t.Errorf("midpoint = %v (ok=%v), expected 3.5", mid, ok)
	}
}

// TestParseInformalPhrases tests the informal measurement list.
func TestParseInformalPhrases(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	testCases := []struct {
		input    string
		wantUnit string
		wantItem string
	}{
		{"a pinch of salt", "a pinch", "salt"},
		{"a dash of hot sauce", "a dash", "hot sauce"},
		{"a splash of white wine", "a splash", "white wine"},
		{"a handful of arugula", "a handful", "arugula"},
		{"some chopped parsley", "some", "chopped parsley"},
		{"a few basil leaves", "a few", "basil leaves"},
		{"a couple of bay leaves", "a couple", "bay leaves"},
		{"olive oil as needed", "as needed", "olive oil"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			rec := p.Parse(tc.input)
			if rec.Unit != tc.wantUnit {
				t.Errorf("unit = %q, expected %q", rec.Unit, tc.wantUnit)
			}
			if rec.Item != tc.wantItem {
				t.Errorf("item = %q, expected %q", rec.Item, tc.wantItem)
			}
			if !rec.Informal() {
				t.Error("informal phrase should produce a no-amount record")
			}
			if !rec.Inferred {
				t.Error("informal records are inferred")
			}
		})
	}
}

// TestParseInformalWordBoundary tests that phrase matching respects word
// boundaries.
func TestParseInformalWordBoundary(t *testing.T) {
	t.Parallel()

	rec := newTestParser().Parse("sometimes sauce")
	if rec.Unit != "whole" {
		t.Errorf("unit = %q, expected whole ('some' must not match inside 'sometimes')", rec.Unit)
	}
}

// TestParseDegraded tests the bounded worst case for unusable input.
func TestParseDegraded(t *testing.T) {
	t.Parallel()

	rec := newTestParser().Parse("   ")
	if rec.Confidence != 0 {
		t.Errorf("confidence = %v, expected 0", rec.Confidence)
	}
	if !rec.NeedsReview {
		t.Error("degraded record must be flagged for review")
	}
	if rec.Unit != "whole" {
		t.Errorf("unit = %q, expected whole", rec.Unit)
	}
}

// TestParseNeverNegative tests the amount invariant.
func TestParseNeverNegative(t *testing.T) {
	t.Parallel()

	p := newTestParser()
	for _, input := range []string{"-2 cups flour", "2 cups flour", "garbage"} {
		rec := p.Parse(input)
		if rec.Amount.Negative() {
			t.Errorf("Parse(%q) produced a negative amount", input)
		}
		if rec.Item == "" {
			t.Errorf("Parse(%q) produced an empty item", input)
		}
	}
}
