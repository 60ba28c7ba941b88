package model

import "time"

// InstructionStep is a single numbered step of a recipe's method.
type InstructionStep struct {
	// Step is the 1-based step number.
	Step int `json:"step"`

	// Text is the instruction text.
	Text string `json:"text"`

	// Time is an optional human-readable duration ("10 minutes"), empty
	// when the source did not state one.
	Time string `json:"time,omitempty"`
}

// Recipe is a fully extracted recipe. It is assembled by the source
// resolver and consumed by the document writer and the recipe store.
type Recipe struct {
	// ID is assigned by the store on first save; empty until then.
	ID string `json:"id,omitempty"`

	// Name is the recipe title.
	Name string `json:"name"`

	// Description is a short summary when the source provided one.
	Description string `json:"description,omitempty"`

	// PrepTime, CookTime, and TotalTime are human-readable durations
	// ("1 hour 20 minutes"), empty when unknown.
	PrepTime  string `json:"prep_time,omitempty"`
	CookTime  string `json:"cook_time,omitempty"`
	TotalTime string `json:"total_time,omitempty"`

	// Servings is the stated yield, 0 when unknown.
	Servings int `json:"servings,omitempty"`

	// Cuisine and DishType are free-text categories from the source.
	Cuisine  string `json:"cuisine,omitempty"`
	DishType string `json:"dish_type,omitempty"`

	// Dietary lists normalized dietary tags (vegan, gluten-free, ...).
	Dietary []string `json:"dietary,omitempty"`

	// Ingredients are the normalized ingredient records, in source order.
	Ingredients []IngredientRecord `json:"ingredients"`

	// Instructions are the numbered method steps, in source order.
	Instructions []InstructionStep `json:"instructions"`

	// Tips holds auxiliary cooking tips extracted from the video
	// transcript. At most five; empty when no transcript was available.
	Tips []string `json:"tips,omitempty"`

	// VideoURL is the cooking video the recipe was extracted for.
	VideoURL string `json:"video_url,omitempty"`

	// RecipeURL is the scraped webpage when the webpage source won,
	// empty otherwise.
	RecipeURL string `json:"recipe_url,omitempty"`

	// Channel is the video channel name.
	Channel string `json:"channel,omitempty"`

	// ImageURL is a representative image when the source provided one.
	ImageURL string `json:"image_url,omitempty"`

	// Source records which extraction source produced the recipe.
	Source SourceKind `json:"source"`

	// NeedsReview is true when any ingredient record needs review.
	NeedsReview bool `json:"needs_review"`

	// ExtractedAt is when the extraction completed.
	ExtractedAt time.Time `json:"extracted_at"`
}

// MarkReview flags the recipe for review when any ingredient record
// needs review. The flag only ever goes from false to true; a recipe
// flagged by its extraction source stays flagged.
func (r *Recipe) MarkReview() {
	for _, ing := range r.Ingredients {
		if ing.NeedsReview {
			r.NeedsReview = true
			return
		}
	}
}

// VideoMetadata holds everything fetched about a cooking video before
// source resolution begins.
type VideoMetadata struct {
	// ID is the video identifier (the 11-character YouTube ID).
	ID string `json:"id"`

	// URL is the canonical watch URL.
	URL string `json:"url"`

	// Title is the video title.
	Title string `json:"title"`

	// Channel is the uploader's channel name.
	Channel string `json:"channel"`

	// Description is the full video description text.
	Description string `json:"description"`

	// Transcript is the caption text, empty when unavailable.
	Transcript string `json:"transcript,omitempty"`

	// TranscriptSource notes where the transcript came from
	// ("captions", empty when none).
	TranscriptSource string `json:"transcript_source,omitempty"`
}
