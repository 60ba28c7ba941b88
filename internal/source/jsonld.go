package source

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// isoDuration matches ISO 8601 durations as they appear in recipe
// markup (PT1H30M style).
var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// jsonLDScripts collects the contents of every
// <script type="application/ld+json"> block in the document.
func jsonLDScripts(page string) []string {
	var scripts []string
	tokenizer := html.NewTokenizer(strings.NewReader(page))
	inLDScript := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return scripts
		case html.StartTagToken:
			token := tokenizer.Token()
			if token.Data != "script" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "type" && attr.Val == "application/ld+json" {
					inLDScript = true
				}
			}
		case html.TextToken:
			if inLDScript {
				scripts = append(scripts, tokenizer.Token().Data)
			}
		case html.EndTagToken:
			inLDScript = false
		}
	}
}

// findRecipeNode digs through JSON-LD for the first Recipe object,
// descending into top-level arrays and @graph containers.
func findRecipeNode(data any) map[string]any {
	switch node := data.(type) {
	case map[string]any:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"].([]any); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]any); ok && isRecipeType(obj["@type"]) {
					return obj
				}
			}
		}
	case []any:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

// isRecipeType handles @type as a string or an array of strings.
func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// recipeNodeFromPage extracts the first Recipe JSON-LD node from an
// HTML page, or nil when the page has none.
func recipeNodeFromPage(page string) map[string]any {
	for _, script := range jsonLDScripts(page) {
		var data any
		if err := json.Unmarshal([]byte(script), &data); err != nil {
			continue
		}
		if node := findRecipeNode(data); node != nil {
			return node
		}
	}
	return nil
}

// stringField reads a string-valued JSON-LD property.
func stringField(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return strings.TrimSpace(s)
}

// humanizeISODuration turns "PT1H30M" into "1 hour 30 minutes". Text
// that is not an ISO duration passes through untouched.
func humanizeISODuration(value string) string {
	if value == "" {
		return ""
	}
	m := isoDuration.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	var parts []string
	units := []struct {
		amount   string
		singular string
	}{
		{m[1], "hour"},
		{m[2], "minute"},
		{m[3], "second"},
	}
	for _, u := range units {
		if u.amount == "" || u.amount == "0" {
			continue
		}
		label := u.singular
		if u.amount != "1" {
			label += "s"
		}
		parts = append(parts, u.amount+" "+label)
	}
	return strings.Join(parts, " ")
}

// servingsFromYield reads recipeYield, which arrives as a number, a
// string like "4 servings", or an array of either.
func servingsFromYield(v any) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		return firstInt(value)
	case []any:
		if len(value) > 0 {
			return servingsFromYield(value[0])
		}
	}
	return 0
}

var digits = regexp.MustCompile(`\d+`)

func firstInt(s string) int {
	m := digits.FindString(s)
	if m == "" {
		return 0
	}
	var n int
	fmt.Sscanf(m, "%d", &n)
	return n
}

// dietaryTags maps Schema.org suitableForDiet values to plain tags.
func dietaryTags(v any) []string {
	var raw []string
	switch value := v.(type) {
	case string:
		raw = []string{value}
	case []any:
		for _, entry := range value {
			if s, ok := entry.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	var tags []string
	for _, diet := range raw {
		lower := strings.ToLower(diet)
		switch {
		case strings.Contains(lower, "vegan"):
			tags = append(tags, "vegan")
		case strings.Contains(lower, "vegetarian"):
			tags = append(tags, "vegetarian")
		case strings.Contains(lower, "gluten"):
			tags = append(tags, "gluten-free")
		case strings.Contains(lower, "dairy"):
			tags = append(tags, "dairy-free")
		}
	}
	return tags
}

// ingredientLines reads recipeIngredient as raw text lines.
func ingredientLines(v any) []string {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}
	var lines []string
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				lines = append(lines, s)
			}
		}
	}
	return lines
}

// instructionSteps reads recipeInstructions: a single string, an array
// of strings, or an array of HowToStep objects.
func instructionSteps(v any) []model.InstructionStep {
	switch value := v.(type) {
	case string:
		if value = strings.TrimSpace(value); value != "" {
			return []model.InstructionStep{{Step: 1, Text: value}}
		}
	case []any:
		var steps []model.InstructionStep
		for _, entry := range value {
			var text string
			switch step := entry.(type) {
			case string:
				text = step
			case map[string]any:
				text, _ = step["text"].(string)
				if text == "" {
					text, _ = step["name"].(string)
				}
			}
			if text = strings.TrimSpace(text); text != "" {
				steps = append(steps, model.InstructionStep{Step: len(steps) + 1, Text: text})
			}
		}
		return steps
	}
	return nil
}

// imageURL reads the image property: a URL string, an ImageObject, or
// an array of either.
func imageURL(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case map[string]any:
		url, _ := value["url"].(string)
		return url
	case []any:
		for _, entry := range value {
			if url := imageURL(entry); url != "" {
				return url
			}
		}
	}
	return ""
}
