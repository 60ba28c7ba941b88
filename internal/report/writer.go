package report

import (
	"io"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// Writer outputs recipes and shopping lists. Implementations render
// different formats to the same destination kinds: files, stdout, or
// any io.Writer.
type Writer interface {
	// WriteRecipe outputs one recipe document.
	// Returns the number of bytes written and any error encountered.
	WriteRecipe(recipe *model.Recipe) (int, error)

	// WriteShoppingList outputs an aggregated shopping list.
	WriteShoppingList(items []model.AggregatedIngredient) (int, error)
}

// MultiWriter writes to several Writers at once, for outputting to both
// the terminal and a file. It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteRecipe outputs the recipe to all configured Writers.
func (m *MultiWriter) WriteRecipe(recipe *model.Recipe) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRecipe(recipe)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteShoppingList outputs the shopping list to all configured
// Writers.
func (m *MultiWriter) WriteShoppingList(items []model.AggregatedIngredient) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteShoppingList(items)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
