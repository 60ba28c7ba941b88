package parser

import (
	"context"
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// fakeStatistical returns a canned record or error for every call.
type fakeStatistical struct {
	rec   model.IngredientRecord
	err   error
	calls int
}

func (f *fakeStatistical) Parse(_ context.Context, _ string) (model.IngredientRecord, error) {
	f.calls++
	return f.rec, f.err
}

func TestGateConfidentResultPassesThrough(t *testing.T) {
	t.Parallel()

	stat := &fakeStatistical{
		rec: model.IngredientRecord{
			Amount:     model.Number(2),
			Unit:       "cup",
			Item:       "flour",
			Confidence: 0.95,
		},
	}
	gate := NewGate(stat, New(units.NewTable()))

	rec := gate.Normalize(context.Background(), "2 cups flour")
	if rec.Confidence != 0.95 {
		t.Errorf("confidence = %v, expected the service value 0.95 unmodified", rec.Confidence)
	}
	if rec.NeedsReview {
		t.Error("confident statistical result must not be flagged for review")
	}
	if rec.Unit != "cup" || rec.Item != "flour" {
		t.Errorf("record = %+v, expected the statistical result unmodified", rec)
	}
}

func TestGateLowConfidenceFallsBack(t *testing.T) {
	t.Parallel()

	stat := &fakeStatistical{
		rec: model.IngredientRecord{
			Amount:     model.Number(99),
			Unit:       "cup",
			Item:       "wrong",
			Confidence: 0.5,
		},
	}
	gate := NewGate(stat, New(units.NewTable()))

	rec := gate.Normalize(context.Background(), "2 cups flour")
	if rec.Item != "flour" {
		t.Errorf("item = %q, expected the deterministic fallback result", rec.Item)
	}
	if !rec.NeedsReview {
		t.Error("fallback result must be flagged for review")
	}
}

func TestGateFailureFallsBack(t *testing.T) {
	t.Parallel()

	stat := &fakeStatistical{err: &ParseFailure{Reason: "service down"}}
	gate := NewGate(stat, New(units.NewTable()))

	rec := gate.Normalize(context.Background(), "3 cloves garlic")
	if rec.Item != "garlic" || rec.Unit != "clove" {
		t.Errorf("record = %+v, expected the deterministic fallback result", rec)
	}
	if !rec.NeedsReview {
		t.Error("fallback result must be flagged for review")
	}
	if stat.calls != 1 {
		t.Errorf("statistical parser called %d times, expected 1", stat.calls)
	}
}

func TestGateNilStatisticalUsesFallback(t *testing.T) {
	t.Parallel()

	gate := NewGate(nil, New(units.NewTable()))

	rec := gate.Normalize(context.Background(), "2 cups flour")
	if rec.Item != "flour" {
		t.Errorf("item = %q, expected the deterministic result", rec.Item)
	}
	if !rec.NeedsReview {
		t.Error("fallback result must be flagged for review")
	}
}

func TestGateCustomThreshold(t *testing.T) {
	t.Parallel()

	stat := &fakeStatistical{
		rec: model.IngredientRecord{
			Amount:     model.Number(1),
			Unit:       "tsp",
			Item:       "vanilla",
			Confidence: 0.7,
		},
	}
	gate := NewGate(stat, New(units.NewTable()), WithThreshold(0.65))

	rec := gate.Normalize(context.Background(), "1 tsp vanilla")
	if rec.NeedsReview {
		t.Error("0.7 clears a 0.65 threshold; the result must pass through")
	}
	if rec.Item != "vanilla" {
		t.Errorf("item = %q, expected the statistical result", rec.Item)
	}
}
