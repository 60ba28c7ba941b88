package report

import (
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// FormatRecord renders one ingredient record as a display line:
// "3 cups flour", "5 eggs", "3-4 cloves garlic", "a pinch salt".
func FormatRecord(rec model.IngredientRecord, table *units.Table) string {
	return formatLine(rec.Amount, rec.Unit, rec.Item, table)
}

// FormatEntry renders one aggregated shopping-list entry.
func FormatEntry(item string, entry model.AggregatedEntry, table *units.Table) string {
	return formatLine(entry.Amount, entry.Unit, item, table)
}

func formatLine(amount model.Amount, unit, item string, table *units.Table) string {
	// Informal measurements read as "<phrase> <item>".
	if amount.IsNone() {
		if unit != "" && unit != model.UnitWhole {
			return strings.TrimSpace(unit + " " + item)
		}
		return strings.TrimSpace(item)
	}

	parts := []string{amount.Display()}
	if unit != "" && unit != model.UnitWhole {
		parts = append(parts, displayUnit(amount, unit, table))
	}
	if item != "" {
		parts = append(parts, item)
	}
	return strings.Join(parts, " ")
}

// displayUnit pluralizes count nouns for amounts above one.
// Abbreviations stay as-is: "3 tbsp", never "3 tbsps". Range amounts
// read as plural ("3-4 cloves").
func displayUnit(amount model.Amount, unit string, table *units.Table) string {
	if table.Abbreviated(unit) || strings.HasSuffix(unit, "s") {
		return unit
	}
	v, ok := amount.Value()
	if !ok || v <= 1 {
		return unit
	}
	return pluralize(unit)
}

func pluralize(unit string) string {
	if strings.HasSuffix(unit, "ch") || strings.HasSuffix(unit, "sh") || strings.HasSuffix(unit, "x") {
		return unit + "es"
	}
	return unit + "s"
}
