// Package llm wraps the local Ollama model server used for recipe
// extraction.
//
// Client is the transport: one JSON-mode generate call per request.
// Extractor layers the recipe-specific prompts on top: full extraction
// from a transcript, lighter extraction from a description that already
// contains a recipe, and cooking-tip mining. Extraction output is
// schema-gated (a recipe needs a name, at least two ingredients, and at
// least two instruction steps) with a single retry before the failure
// becomes hard.
//
// RepairIngredients cleans up the model's most common structural
// mistakes, such as unit words leaking into the amount field, by
// re-parsing the combined text deterministically.
package llm
