package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// ErrRecipeNotFound is returned when a lookup matches no stored recipe.
var ErrRecipeNotFound = errors.New("database: recipe not found")

// RecipeDB provides SQLite-based storage for extracted recipes. The
// full recipe is stored as a JSON payload next to the indexed columns,
// so schema churn in the recipe shape does not require migrations.
type RecipeDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RecipeDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// DefaultDir returns the default data directory for the recipe store,
// following the XDG base directory spec.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "kitchenos")
}

// Open opens or creates a RecipeDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an
// error is returned.
func Open(dbDir string, opts Options) (*RecipeDB, error) {
	dbPath := filepath.Join(dbDir, "kitchenos.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RecipeDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RecipeDB) Close() error {
	return rdb.db.Close()
}

// Path returns the path to the database file.
func (rdb *RecipeDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RecipeDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		video_url TEXT NOT NULL UNIQUE,
		channel TEXT,
		source TEXT NOT NULL,
		needs_review INTEGER NOT NULL DEFAULT 0,
		extracted_at DATETIME NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recipes_name ON recipes(name);
	CREATE INDEX IF NOT EXISTS idx_recipes_video_url ON recipes(video_url);
	`
	if _, err := rdb.db.ExecContext(context.Background(), schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRecipe stores a recipe, assigning an ID and extraction timestamp
// when missing. Saving a second recipe for the same video URL replaces
// the first.
func (rdb *RecipeDB) SaveRecipe(ctx context.Context, recipe *model.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.ExtractedAt.IsZero() {
		recipe.ExtractedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	query := `
	INSERT INTO recipes (id, name, video_url, channel, source, needs_review, extracted_at, payload)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(video_url) DO UPDATE SET
		name = excluded.name,
		channel = excluded.channel,
		source = excluded.source,
		needs_review = excluded.needs_review,
		extracted_at = excluded.extracted_at,
		payload = excluded.payload
	`
	_, err = rdb.db.ExecContext(ctx, query,
		recipe.ID,
		recipe.Name,
		recipe.VideoURL,
		recipe.Channel,
		string(recipe.Source),
		boolToInt(recipe.NeedsReview),
		recipe.ExtractedAt,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// RecipeByVideoURL finds the recipe extracted from the given video, or
// ErrRecipeNotFound. Batch runs use this for duplicate detection.
func (rdb *RecipeDB) RecipeByVideoURL(ctx context.Context, videoURL string) (*model.Recipe, error) {
	row := rdb.db.QueryRowContext(ctx,
		`SELECT payload FROM recipes WHERE video_url = ?`, videoURL)
	return scanRecipe(row)
}

// Recipes returns all stored recipes, newest first.
func (rdb *RecipeDB) Recipes(ctx context.Context) ([]*model.Recipe, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT payload FROM recipes ORDER BY extracted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()
	return scanRecipes(rows)
}

// RecipesByName returns recipes whose name contains the fragment,
// case-insensitively.
func (rdb *RecipeDB) RecipesByName(ctx context.Context, fragment string) ([]*model.Recipe, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT payload FROM recipes WHERE name LIKE ? COLLATE NOCASE ORDER BY name`,
		"%"+fragment+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func scanRecipe(row *sql.Row) (*model.Recipe, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}
	return unmarshalRecipe(payload)
}

func scanRecipes(rows *sql.Rows) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipe, err := unmarshalRecipe(payload)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

func unmarshalRecipe(payload string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := json.Unmarshal([]byte(payload), &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &recipe, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
