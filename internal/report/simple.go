package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// SimpleWriter outputs human-readable text for the terminal. Plain
// ASCII so it pipes cleanly to files and other tools.
type SimpleWriter struct {
	baseWriter
	units *units.Table
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer.
func NewSimpleWriter(output io.Writer, table *units.Table) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
		units:      table,
	}
}

// WriteRecipe outputs one recipe as plain text.
func (w *SimpleWriter) WriteRecipe(recipe *model.Recipe) (int, error) {
	var b strings.Builder

	b.WriteString(recipe.Name + "\n")
	b.WriteString(strings.Repeat("=", len(recipe.Name)) + "\n")
	if recipe.Description != "" {
		b.WriteString(recipe.Description + "\n")
	}
	if recipe.Channel != "" {
		fmt.Fprintf(&b, "Channel: %s\n", recipe.Channel)
	}
	if recipe.Servings > 0 {
		fmt.Fprintf(&b, "Servings: %d\n", recipe.Servings)
	}
	fmt.Fprintf(&b, "Source: %s\n", recipe.Source)
	if recipe.NeedsReview {
		b.WriteString("Needs review: yes\n")
	}

	b.WriteString("\nIngredients:\n")
	for _, rec := range recipe.Ingredients {
		b.WriteString("  - " + FormatRecord(rec, w.units) + "\n")
	}

	if len(recipe.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for _, step := range recipe.Instructions {
			fmt.Fprintf(&b, "  %d. %s\n", step.Step, step.Text)
		}
	}

	if len(recipe.Tips) > 0 {
		b.WriteString("\nTips:\n")
		for _, tip := range recipe.Tips {
			b.WriteString("  - " + tip + "\n")
		}
	}

	return io.WriteString(w.output, b.String())
}

// WriteShoppingList outputs the aggregated list as plain text.
func (w *SimpleWriter) WriteShoppingList(items []model.AggregatedIngredient) (int, error) {
	var b strings.Builder

	b.WriteString("Shopping List\n")
	b.WriteString("=============\n")
	for _, item := range items {
		for _, entry := range item.Entries {
			b.WriteString("  [ ] " + FormatEntry(item.Item, entry, w.units) + "\n")
		}
	}

	return io.WriteString(w.output, b.String())
}
