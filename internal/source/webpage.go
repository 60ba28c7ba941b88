package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/config"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// DefaultFetchTimeout bounds one recipe page fetch.
const DefaultFetchTimeout = 10 * time.Second

// defaultKnownDomains are sites whose links count as recipe links even
// without a keyword on the line.
var defaultKnownDomains = []string{
	"bingingwithbabish.com",
	"seriouseats.com",
	"bonappetit.com",
	"food52.com",
	"smittenkitchen.com",
	"budgetbytes.com",
	"allrecipes.com",
	"epicurious.com",
	"foodnetwork.com",
	"delish.com",
	"tasty.co",
	"thekitchn.com",
}

// defaultExcludedDomains are social and shop links that never lead to a
// recipe page.
var defaultExcludedDomains = []string{
	"patreon.com",
	"instagram.com",
	"twitter.com",
	"facebook.com",
	"tiktok.com",
	"amazon.com",
	"amzn.to",
	"youtube.com",
	"youtu.be",
	"pinterest.com",
	"pinterest.co.uk",
}

// recipeKeywords mark a description line as pointing at a recipe.
var recipeKeywords = []string{"recipe", "recipes", "full recipe", "written recipe", "ingredients"}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// Normalizer turns one raw ingredient line into a canonical record.
// Implemented by parser.Gate.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) model.IngredientRecord
}

// FindRecipeLink locates a recipe URL in a video description.
//
// Three passes, first hit wins:
//  1. a line starting with "Recipe:" or "Full recipe:"
//  2. a URL sharing a line with a recipe keyword
//  3. any URL from a known recipe domain
//
// Excluded domains never match.
func FindRecipeLink(description string, known, excluded []string) string {
	if description == "" {
		return ""
	}
	lines := strings.Split(description, "\n")

	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(lower, "recipe:") || strings.HasPrefix(lower, "full recipe:") {
			if url := firstAllowedURL(line, excluded); url != "" {
				return url
			}
		}
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range recipeKeywords {
			if strings.Contains(lower, keyword) {
				if url := firstAllowedURL(line, excluded); url != "" {
					return url
				}
				break
			}
		}
	}

	for _, url := range urlPattern.FindAllString(description, -1) {
		if matchesDomain(url, known) && !matchesDomain(url, excluded) {
			return url
		}
	}
	return ""
}

func firstAllowedURL(line string, excluded []string) string {
	for _, url := range urlPattern.FindAllString(line, -1) {
		if !matchesDomain(url, excluded) {
			return url
		}
	}
	return ""
}

func matchesDomain(url string, domains []string) bool {
	lower := strings.ToLower(url)
	for _, domain := range domains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// WebpageOption configures a WebpageStrategy.
type WebpageOption func(*WebpageStrategy)

// WithKnownDomains adds recipe domains to the built-in known list.
func WithKnownDomains(domains []string) WebpageOption {
	return func(s *WebpageStrategy) {
		s.known = append(s.known, domains...)
	}
}

// WithExcludedDomains adds domains to the built-in excluded list.
func WithExcludedDomains(domains []string) WebpageOption {
	return func(s *WebpageStrategy) {
		s.excluded = append(s.excluded, domains...)
	}
}

// WithWebpageLogger sets a custom logger.
func WithWebpageLogger(logger *slog.Logger) WebpageOption {
	return func(s *WebpageStrategy) {
		s.logger = logger
	}
}

// WebpageStrategy is tier 1: find a recipe link in the description and
// scrape the page's Schema.org Recipe markup. Every failure mode is a
// skip; a webpage miss never fails the extraction.
type WebpageStrategy struct {
	http       *resty.Client
	normalizer Normalizer
	known      []string
	excluded   []string
	logger     *slog.Logger
}

// NewWebpageStrategy creates the webpage tier.
func NewWebpageStrategy(normalizer Normalizer, opts ...WebpageOption) *WebpageStrategy {
	s := &WebpageStrategy{
		http: resty.New().
			SetTimeout(DefaultFetchTimeout).
			SetHeader("User-Agent", config.DefaultUserAgent),
		normalizer: normalizer,
		known:      defaultKnownDomains,
		excluded:   defaultExcludedDomains,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Strategy.
func (s *WebpageStrategy) Name() string { return "webpage" }

// Source implements Strategy.
func (s *WebpageStrategy) Source() model.SourceKind { return model.SourceWebpage }

// Extract implements Strategy.
func (s *WebpageStrategy) Extract(ctx context.Context, video model.VideoMetadata) Result {
	link := FindRecipeLink(video.Description, s.known, s.excluded)
	if link == "" {
		return Skipped(errors.New("no recipe link in description"))
	}

	resp, err := s.http.R().SetContext(ctx).Get(link)
	if err != nil {
		return Skipped(fmt.Errorf("fetch %s: %w", link, err))
	}
	if resp.IsError() {
		return Skipped(fmt.Errorf("fetch %s: %s", link, resp.Status()))
	}

	node := recipeNodeFromPage(resp.String())
	if node == nil {
		return Skipped(fmt.Errorf("no recipe markup at %s", link))
	}

	recipe := s.recipeFromNode(ctx, node, video, link)
	if len(recipe.Ingredients) == 0 {
		return Skipped(fmt.Errorf("recipe markup at %s has no ingredients", link))
	}
	return Succeeded(recipe)
}

// recipeFromNode converts a JSON-LD Recipe node, normalizing each
// ingredient line through the gate.
func (s *WebpageStrategy) recipeFromNode(ctx context.Context, node map[string]any, video model.VideoMetadata, link string) *model.Recipe {
	recipe := &model.Recipe{
		Name:         stringField(node, "name"),
		Description:  stringField(node, "description"),
		PrepTime:     humanizeISODuration(stringField(node, "prepTime")),
		CookTime:     humanizeISODuration(stringField(node, "cookTime")),
		TotalTime:    humanizeISODuration(stringField(node, "totalTime")),
		Servings:     servingsFromYield(node["recipeYield"]),
		Cuisine:      stringField(node, "recipeCuisine"),
		DishType:     stringField(node, "recipeCategory"),
		Dietary:      dietaryTags(node["suitableForDiet"]),
		Instructions: instructionSteps(node["recipeInstructions"]),
		VideoURL:     video.URL,
		RecipeURL:    link,
		Channel:      video.Channel,
		ImageURL:     imageURL(node["image"]),
	}
	if recipe.Name == "" {
		recipe.Name = "Untitled Recipe"
	}
	for _, line := range ingredientLines(node["recipeIngredient"]) {
		recipe.Ingredients = append(recipe.Ingredients, s.normalizer.Normalize(ctx, line))
	}
	recipe.MarkReview()
	return recipe
}
