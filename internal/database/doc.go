// Package database provides SQLite-based storage for extracted recipes.
// The store is what makes batch runs idempotent: a video whose URL is
// already saved is skipped instead of re-extracted.
package database
