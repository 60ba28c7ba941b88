package model

import "strings"

// UnitWhole is the sentinel unit used when no unit is detected in an
// ingredient line. "2 eggs" parses with unit "whole".
const UnitWhole = "whole"

// IngredientRecord is the canonical structured result of parsing one
// ingredient line. Records are created once by a parser call and are
// immutable thereafter; the aggregator never mutates its inputs.
type IngredientRecord struct {
	// Amount is the parsed quantity: numeric, a literal range ("3-4"),
	// or no true amount for informal measurements.
	Amount Amount `json:"amount"`

	// Unit is the canonical unit string, the informal phrase that stood in
	// for a unit ("to taste"), or UnitWhole when none was detected.
	Unit string `json:"unit"`

	// Item is the ingredient name. Always trimmed, lowercased, and
	// non-empty after a successful parse.
	Item string `json:"item"`

	// Inferred is true when any part of the record was guessed rather
	// than read verbatim from the input.
	Inferred bool `json:"inferred"`

	// Confidence is the parser's trust in the record, in [0, 1].
	// Statistical results carry the external model's score unmodified;
	// the deterministic parser reports fixed low values.
	Confidence float64 `json:"confidence"`

	// NeedsReview flags records that required guesswork or a fallback
	// parse and should be manually checked. It is not an error state;
	// the record is still usable.
	NeedsReview bool `json:"needs_review"`
}

// ItemKey returns the comparison key used to group records across recipes:
// the item lowercased with surrounding whitespace trimmed.
func (r IngredientRecord) ItemKey() string {
	return strings.TrimSpace(strings.ToLower(r.Item))
}

// Valid reports whether the record may participate in aggregation.
// Records missing an item or carrying a negative amount are malformed.
func (r IngredientRecord) Valid() bool {
	return r.ItemKey() != "" && !r.Amount.Negative()
}

// Informal reports whether the record came from an informal measurement
// phrase rather than a true quantity. Informal records are deduplicated,
// never summed, during aggregation.
func (r IngredientRecord) Informal() bool {
	return r.Amount.IsNone()
}
