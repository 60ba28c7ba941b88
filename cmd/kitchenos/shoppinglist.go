package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/aggregate"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/config"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/database"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/log"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/report"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// NewShoppingListCmd creates the shoppinglist command.
func NewShoppingListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shoppinglist [recipe-name]...",
		Short: "Build an aggregated shopping list from stored recipes",
		Long: `Shoppinglist combines the ingredients of stored recipes into one
deduplicated list. Compatible measurements are summed (volume in
teaspoons, weight in ounces) and rendered in the most natural unit;
informal amounts like "a pinch" are kept as-is.

Without arguments, every stored recipe is included. With arguments,
only recipes whose names contain one of the given fragments are used.

Examples:
  # Everything in the store
  kitchenos shoppinglist

  # Just this week's dinners
  kitchenos shoppinglist "dal" "carbonara"

  # Markdown checklist written to a file
  kitchenos shoppinglist --markdown -o list.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runShoppingListCmd,
	}

	cmd.Flags().Bool("markdown", false, "Render the list as a markdown checklist")
	cmd.Flags().StringP("output", "o", "", "Write the list to a file instead of stdout")

	return cmd
}

// runShoppingListCmd executes the shoppinglist command.
func runShoppingListCmd(cmd *cobra.Command, args []string) error {
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := log.NewSanitizedLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// The store must already exist; an empty kitchen has no list.
	db, err := database.Open(config.XDGDataDir(), database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open recipe store (extract some recipes first): %w", err)
	}
	defer db.Close()

	recipes, err := selectRecipes(cmd, db, args)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return fmt.Errorf("no stored recipes matched")
	}

	var records []model.IngredientRecord
	for _, recipe := range recipes {
		records = append(records, recipe.Ingredients...)
	}

	table := units.NewTable()
	items := aggregate.New(table, aggregate.WithLogger(logger)).Aggregate(records)

	output := os.Stdout
	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	if markdown || outputPath != "" {
		writer = report.NewMarkdownWriter(output, table)
	} else {
		writer = report.NewSimpleWriter(output, table)
	}

	fmt.Fprintf(os.Stderr, "Aggregating %d ingredient(s) from %d recipe(s)\n",
		len(records), len(recipes))

	_, err = writer.WriteShoppingList(items)
	return err
}

// selectRecipes loads the recipes named by the arguments, or everything
// when no names are given.
func selectRecipes(cmd *cobra.Command, db *database.RecipeDB, names []string) ([]*model.Recipe, error) {
	ctx := cmd.Context()

	if len(names) == 0 {
		return db.Recipes(ctx)
	}

	seen := make(map[string]bool)
	var recipes []*model.Recipe
	for _, name := range names {
		matched, err := db.RecipesByName(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, recipe := range matched {
			if seen[recipe.ID] {
				continue
			}
			seen[recipe.ID] = true
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}
