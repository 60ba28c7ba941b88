package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// MarkdownWriter outputs recipe documents and shopping lists as
// markdown, the format the recipe vault stores.
type MarkdownWriter struct {
	baseWriter
	units *units.Table
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer, table *units.Table) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		units:      table,
	}
}

// WriteRecipe outputs one recipe document.
func (w *MarkdownWriter) WriteRecipe(recipe *model.Recipe) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(recipe.Name)
	if recipe.Description != "" {
		md.PlainText("")
		md.PlainText(recipe.Description)
	}
	md.PlainText("")

	w.writeDetails(md, recipe)
	w.writeIngredients(md, recipe)
	w.writeInstructions(md, recipe)
	w.writeTips(md, recipe)

	md.PlainText("")
	md.PlainTextf("Extracted from %s (%s)",
		markdown.Link(recipe.Channel, recipe.VideoURL), string(recipe.Source))

	return len(md.String()), md.Build()
}

// writeDetails writes the metadata table.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, recipe *model.Recipe) {
	rows := [][]string{}
	addRow := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, value})
		}
	}
	addRow("Channel", recipe.Channel)
	if recipe.Servings > 0 {
		addRow("Servings", strconv.Itoa(recipe.Servings))
	}
	addRow("Prep time", recipe.PrepTime)
	addRow("Cook time", recipe.CookTime)
	addRow("Total time", recipe.TotalTime)
	addRow("Cuisine", recipe.Cuisine)
	addRow("Dish type", recipe.DishType)
	addRow("Dietary", strings.Join(recipe.Dietary, ", "))
	if recipe.RecipeURL != "" {
		addRow("Recipe page", markdown.Link("link", recipe.RecipeURL))
	}
	if recipe.NeedsReview {
		addRow("Needs review", "yes")
	}
	if len(rows) == 0 {
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeIngredients writes the ingredient table.
func (w *MarkdownWriter) writeIngredients(md *markdown.Markdown, recipe *model.Recipe) {
	md.H2("Ingredients")
	md.PlainText("")

	rows := make([][]string, 0, len(recipe.Ingredients))
	for _, rec := range recipe.Ingredients {
		note := ""
		if rec.NeedsReview {
			note = "check"
		}
		rows = append(rows, []string{rec.Amount.Display(), rec.Unit, rec.Item, note})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Amount", "Unit", "Item", "Note"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeInstructions writes the numbered steps.
func (w *MarkdownWriter) writeInstructions(md *markdown.Markdown, recipe *model.Recipe) {
	if len(recipe.Instructions) == 0 {
		return
	}
	md.H2("Instructions")
	md.PlainText("")

	steps := make([]string, 0, len(recipe.Instructions))
	for _, step := range recipe.Instructions {
		text := step.Text
		if step.Time != "" {
			text += " (" + step.Time + ")"
		}
		steps = append(steps, text)
	}
	md.OrderedList(steps...)
	md.PlainText("")
}

// writeTips writes the tips section when the transcript yielded any.
func (w *MarkdownWriter) writeTips(md *markdown.Markdown, recipe *model.Recipe) {
	if len(recipe.Tips) == 0 {
		return
	}
	md.H2("Tips")
	md.PlainText("")
	md.BulletList(recipe.Tips...)
	md.PlainText("")
}

// WriteShoppingList outputs the aggregated list as a checklist.
func (w *MarkdownWriter) WriteShoppingList(items []model.AggregatedIngredient) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Shopping List")
	md.PlainText("")

	boxes := make([]markdown.CheckBoxSet, 0, len(items))
	for _, item := range items {
		for _, entry := range item.Entries {
			boxes = append(boxes, markdown.CheckBoxSet{
				Checked: false,
				Text:    FormatEntry(item.Item, entry, w.units),
			})
		}
	}
	md.CheckBox(boxes)

	return len(md.String()), md.Build()
}
