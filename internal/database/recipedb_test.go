package database

import (
	"context"
	"errors"
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

func testRecipe(name, videoURL string) *model.Recipe {
	return &model.Recipe{
		Name:     name,
		VideoURL: videoURL,
		Channel:  "Test Kitchen",
		Source:   model.SourceWebpage,
		Servings: 4,
		Ingredients: []model.IngredientRecord{
			{Amount: model.Number(2), Unit: "cup", Item: "flour", Confidence: 0.9},
			{Amount: model.Number(3), Unit: "whole", Item: "eggs", Confidence: 0.9},
		},
		Instructions: []model.InstructionStep{
			{Step: 1, Text: "Mix."},
			{Step: 2, Text: "Bake."},
		},
	}
}

func openTestDB(t *testing.T) *RecipeDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
	if err == nil {
		t.Fatal("expected error opening a missing database with CreateIfNotExists=false")
	}
}

func TestSaveAndFetchRecipe(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	recipe := testRecipe("Pancakes", "https://www.youtube.com/watch?v=abc12345678")
	if err := db.SaveRecipe(ctx, recipe); err != nil {
		t.Fatalf("failed to save recipe: %v", err)
	}
	if recipe.ID == "" {
		t.Error("expected an ID to be assigned on save")
	}
	if recipe.ExtractedAt.IsZero() {
		t.Error("expected an extraction timestamp to be assigned on save")
	}

	got, err := db.RecipeByVideoURL(ctx, recipe.VideoURL)
	if err != nil {
		t.Fatalf("failed to fetch recipe: %v", err)
	}
	if got.ID != recipe.ID {
		t.Errorf("ID = %q, expected %q", got.ID, recipe.ID)
	}
	if got.Name != "Pancakes" {
		t.Errorf("Name = %q, expected Pancakes", got.Name)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("got %d ingredients, expected 2", len(got.Ingredients))
	}
	if got.Ingredients[0].Item != "flour" || got.Ingredients[0].Amount.Display() != "2" {
		t.Errorf("unexpected first ingredient: %+v", got.Ingredients[0])
	}
	if got.Source != model.SourceWebpage {
		t.Errorf("Source = %q, expected webpage", got.Source)
	}
}

func TestRecipeByVideoURLNotFound(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	_, err := db.RecipeByVideoURL(context.Background(), "https://www.youtube.com/watch?v=nosuchvideo")
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestSaveRecipeReplacesDuplicate(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	url := "https://www.youtube.com/watch?v=abc12345678"
	first := testRecipe("Pancakes v1", url)
	if err := db.SaveRecipe(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := testRecipe("Pancakes v2", url)
	if err := db.SaveRecipe(ctx, second); err != nil {
		t.Fatal(err)
	}

	all, err := db.Recipes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d recipes, expected the duplicate save to replace the first", len(all))
	}
	if all[0].Name != "Pancakes v2" {
		t.Errorf("Name = %q, expected the replacement to win", all[0].Name)
	}
}

func TestRecipesByName(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	for i, name := range []string{"Dal Tadka", "Chana Dal", "Carbonara"} {
		recipe := testRecipe(name, "https://www.youtube.com/watch?v=video"+string(rune('a'+i))+"123456")
		if err := db.SaveRecipe(ctx, recipe); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.RecipesByName(ctx, "dal")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d recipes for %q, expected 2", len(got), "dal")
	}
	if got[0].Name != "Chana Dal" || got[1].Name != "Dal Tadka" {
		t.Errorf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}
}
