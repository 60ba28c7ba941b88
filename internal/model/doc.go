// Package model defines the core data structures used throughout KitchenOS.
//
// This package contains the following main types:
//   - IngredientRecord: The canonical structured result of parsing one ingredient line
//   - Amount: A quantity that is numeric, a literal range, or absent (informal)
//   - Recipe: A fully extracted recipe with ingredients and instructions
//   - VideoMetadata: Title, channel, description, and transcript of a cooking video
//   - SourceResult: The outcome of resolving a recipe from one upstream source
//   - AggregatedIngredient: A per-item shopping list entry merged across recipes
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (parser, source, aggregate, report, database)
// need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for document output and
// database storage.
package model
