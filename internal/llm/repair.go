package llm

import (
	"log/slog"
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// unitWords are measurement words that must not appear inside an amount
// field. Their presence means the model failed to split the line, as in
// amount="30 grams" instead of amount=30 unit=g.
var unitWords = map[string]bool{
	"cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"gram": true, "grams": true, "g": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "pound": true, "pounds": true,
	"ml": true, "milliliter": true, "milliliters": true,
	"liter": true, "liters": true, "l": true,
	"kg": true, "kilogram": true, "kilograms": true,
}

// malformed reports whether an AI-emitted ingredient needs re-parsing:
// empty item, unit words leaking into the amount field, or a literal
// "none"/"null" unit.
func malformed(ing RawIngredient) bool {
	if strings.TrimSpace(ing.Item) == "" {
		return true
	}
	if amountHasUnitWord(ing.AmountText()) {
		return true
	}
	unit := strings.ToLower(strings.TrimSpace(ing.Unit))
	return unit == "none" || unit == "null"
}

func amountHasUnitWord(amount string) bool {
	for _, word := range strings.Fields(strings.ToLower(amount)) {
		if unitWords[word] {
			return true
		}
	}
	return false
}

// combinedText reassembles a malformed triple into one parseable line.
// A unit already present in the amount text is not repeated.
func combinedText(ing RawIngredient) string {
	var parts []string
	amount := strings.TrimSpace(ing.AmountText())
	if amount != "" {
		parts = append(parts, amount)
	}
	unit := strings.TrimSpace(ing.Unit)
	switch strings.ToLower(unit) {
	case "", "none", "null", model.UnitWhole:
	default:
		if !amountHasUnitWord(amount) {
			parts = append(parts, unit)
		}
	}
	if item := strings.TrimSpace(ing.Item); item != "" {
		parts = append(parts, item)
	}
	return strings.Join(parts, " ")
}

// RepairIngredients converts the model's loose ingredient triples into
// parseable text lines, re-assembling any structurally malformed triple
// first. The returned lines feed the normal gate path, so a repaired
// ingredient gets the same validation as any scraped one.
func RepairIngredients(ingredients []RawIngredient, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}
	lines := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		line := combinedText(ing)
		if line == "" {
			logger.Warn("dropping empty ingredient from model output")
			continue
		}
		if malformed(ing) {
			logger.Debug("repairing malformed ingredient",
				"amount", ing.AmountText(),
				"unit", ing.Unit,
				"item", ing.Item,
				"combined", line,
			)
		}
		lines = append(lines, line)
	}
	return lines
}
