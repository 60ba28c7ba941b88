package model

// AggregatedEntry is one summed line of an aggregated ingredient.
// A single item produces one entry per unit family present, plus one
// entry per distinct unit string within the count/other families.
type AggregatedEntry struct {
	// Family is the unit family this entry sums within.
	Family Family `json:"family"`

	// Amount is the summed quantity in the display unit. No-amount
	// entries (informal measurements) carry NoAmount.
	Amount Amount `json:"amount"`

	// Unit is the display unit chosen from the contributing records,
	// or the informal phrase for no-amount entries.
	Unit string `json:"unit"`

	// Records is the number of contributing ingredient records.
	Records int `json:"records"`
}

// AggregatedIngredient is one item on a combined shopping list. Entries
// from incompatible unit families are kept separate on purpose;
// cross-family conversion is not attempted.
type AggregatedIngredient struct {
	// Item is the grouped item name (first-seen spelling, lowercased).
	Item string `json:"item"`

	// Entries holds one summed entry per compatible bucket, in a
	// deterministic order: volume, weight, count, other, then no-amount.
	Entries []AggregatedEntry `json:"entries"`
}
