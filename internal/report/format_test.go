package report

import (
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

func TestFormatRecord(t *testing.T) {
	t.Parallel()

	table := units.NewTable()

	testCases := []struct {
		name string
		rec  model.IngredientRecord
		want string
	}{
		{
			name: "volume unit pluralized",
			rec:  model.IngredientRecord{Amount: model.Number(3), Unit: "cup", Item: "flour"},
			want: "3 cups flour",
		},
		{
			name: "singular unit",
			rec:  model.IngredientRecord{Amount: model.Number(1), Unit: "cup", Item: "flour"},
			want: "1 cup flour",
		},
		{
			name: "whole unit suppressed",
			rec:  model.IngredientRecord{Amount: model.Number(5), Unit: "whole", Item: "eggs"},
			want: "5 eggs",
		},
		{
			name: "abbreviation never pluralized",
			rec:  model.IngredientRecord{Amount: model.Number(3), Unit: "tbsp", Item: "butter"},
			want: "3 tbsp butter",
		},
		{
			name: "count noun pluralized",
			rec:  model.IngredientRecord{Amount: model.Number(2), Unit: "clove", Item: "garlic"},
			want: "2 cloves garlic",
		},
		{
			name: "bunch takes es",
			rec:  model.IngredientRecord{Amount: model.Number(2), Unit: "bunch", Item: "cilantro"},
			want: "2 bunches cilantro",
		},
		{
			name: "range keeps the literal",
			rec:  model.IngredientRecord{Amount: model.Range("3-4", 3, 4), Unit: "clove", Item: "garlic"},
			want: "3-4 cloves garlic",
		},
		{
			name: "informal phrase",
			rec:  model.IngredientRecord{Amount: model.NoAmount(), Unit: "a pinch", Item: "salt"},
			want: "a pinch salt",
		},
		{
			name: "fractional amount",
			rec:  model.IngredientRecord{Amount: model.Number(0.5), Unit: "cup", Item: "sugar"},
			want: "0.5 cup sugar",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatRecord(tc.rec, table); got != tc.want {
				t.Errorf("FormatRecord = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	table := units.NewTable()

	entry := model.AggregatedEntry{
		Family:  model.FamilyVolume,
		Amount:  model.Number(5),
		Unit:    "tsp",
		Records: 2,
	}
	if got := FormatEntry("olive oil", entry, table); got != "5 tsp olive oil" {
		t.Errorf("FormatEntry = %q, expected 5 tsp olive oil", got)
	}

	informal := model.AggregatedEntry{
		Family:  model.FamilyOther,
		Amount:  model.NoAmount(),
		Unit:    "to taste",
		Records: 2,
	}
	if got := FormatEntry("salt and pepper", informal, table); got != "to taste salt and pepper" {
		t.Errorf("FormatEntry = %q", got)
	}
}
