package llm

import "fmt"

// extractionPrompt instructs the model to extract a full recipe from a
// transcript. The schema mirrors the wire payload in extract.go.
const extractionPrompt = `You are a recipe extraction assistant. Given a YouTube video transcript
and description about cooking, extract a structured recipe.

Rules:
- Extract ONLY what is shown/said in the video
- When inferring (timing, quantities, temperatures), mark with "(estimated)"
- If a field cannot be determined, use null
- Set needs_review: true if significant inference was required

Output valid JSON matching this schema:
{
  "recipe_name": "string",
  "description": "string (1-2 sentences)",
  "prep_time": "string or null",
  "cook_time": "string or null",
  "total_time": "string or null",
  "servings": "number or null",
  "cuisine": "string or null",
  "dish_type": "string or null",
  "dietary": ["array of tags"],
  "ingredients": [
    {"amount": "string", "unit": "string", "item": "string", "inferred": boolean}
  ],
  "instructions": [
    {"step": number, "text": "string", "time": "string or null"}
  ],
  "needs_review": boolean
}`

// descriptionPrompt is the lighter variant for descriptions that
// already contain a written recipe: same schema, but the model is told
// to transcribe rather than infer.
const descriptionPrompt = `You are a recipe extraction assistant. The video description below
contains a written recipe. Transcribe it into structured JSON without
inventing anything: copy the ingredient lines and steps as written.

Output valid JSON matching this schema:
{
  "recipe_name": "string",
  "description": "string (1-2 sentences)",
  "prep_time": "string or null",
  "cook_time": "string or null",
  "total_time": "string or null",
  "servings": "number or null",
  "cuisine": "string or null",
  "dish_type": "string or null",
  "dietary": ["array of tags"],
  "ingredients": [
    {"amount": "string", "unit": "string", "item": "string", "inferred": boolean}
  ],
  "instructions": [
    {"step": number, "text": "string", "time": "string or null"}
  ],
  "needs_review": boolean
}`

// tipsPrompt mines practical technique tips from a transcript. The
// model must answer with a bare JSON array of strings.
const tipsPrompt = `You are a cooking assistant. From the video transcript below, extract
practical cooking tips the creator mentions: technique details, timing
cues, substitutions, mistakes to avoid. Skip anything already covered by
the recipe steps. Output a JSON array of short strings, at most 5. If
there are no tips, output [].`

func buildExtractionPrompt(title, channel, description, transcript string) string {
	return fmt.Sprintf(`%s

Extract a recipe from this cooking video.

VIDEO TITLE: %s
CHANNEL: %s

DESCRIPTION:
%s

TRANSCRIPT:
%s`, extractionPrompt, orUnknown(title), orUnknown(channel),
		orDefault(description, "No description"), orDefault(transcript, "No transcript"))
}

func buildDescriptionPrompt(title, channel, description string) string {
	return fmt.Sprintf(`%s

VIDEO TITLE: %s
CHANNEL: %s

DESCRIPTION:
%s`, descriptionPrompt, orUnknown(title), orUnknown(channel), description)
}

func buildTipsPrompt(recipeName, transcript string) string {
	return fmt.Sprintf(`%s

RECIPE: %s

TRANSCRIPT:
%s`, tipsPrompt, orUnknown(recipeName), transcript)
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
