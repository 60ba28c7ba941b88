package model

// SourceKind identifies which upstream extraction source supplied a
// recipe. Sources are tried in a fixed priority order: webpage first,
// then the description text, then AI transcript extraction.
type SourceKind string

const (
	// SourceWebpage means the recipe was scraped from a linked webpage.
	SourceWebpage SourceKind = "webpage"

	// SourceDescription means the recipe was parsed out of the video
	// description text.
	SourceDescription SourceKind = "description"

	// SourceAIExtraction means the recipe was extracted by the language
	// model from title, channel, description, and transcript.
	SourceAIExtraction SourceKind = "ai_extraction"
)

// SourceResult is the outcome of resolving a recipe's authoritative
// ingredient source. The resolver returns it on success; a hard error is
// returned separately and only the AI extraction source may produce one.
type SourceResult struct {
	// Source is the extraction source that won.
	Source SourceKind `json:"source"`

	// Recipe is the extracted recipe with normalized ingredients.
	Recipe *Recipe `json:"recipe"`
}

// Ingredients returns the recipe's ingredient records in source order.
// It is nil-safe for failed resolutions.
func (s *SourceResult) Ingredients() []IngredientRecord {
	if s == nil || s.Recipe == nil {
		return nil
	}
	return s.Recipe.Ingredients
}
