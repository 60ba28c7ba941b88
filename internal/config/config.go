package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for a local single-user setup with Ollama
// running on the same machine.
const (
	// DefaultOllamaURL is the standard Ollama API address. We use
	// 127.0.0.1 instead of localhost to avoid DNS resolution overhead
	// and potential issues with IPv6 resolution on some systems.
	DefaultOllamaURL = "http://127.0.0.1:11434"

	// DefaultModel is the Ollama model used for recipe extraction.
	// mistral:7b balances extraction quality with the memory footprint
	// of a typical developer machine.
	DefaultModel = "mistral:7b"

	// DefaultParserURL is the address of the statistical ingredient
	// parser sidecar. When the sidecar is unreachable the deterministic
	// fallback parser takes over, so extraction works without it.
	DefaultParserURL = "http://127.0.0.1:8765"

	// DefaultConfidenceThreshold is the minimum statistical parser
	// confidence for an ingredient line to pass without review.
	// Results below this fall back to the deterministic parser and are
	// flagged for manual review.
	DefaultConfidenceThreshold = 0.8

	// DefaultFetchTimeout is the timeout for YouTube and recipe-site
	// HTTP requests. These are ordinary clearnet fetches, so 15 seconds
	// is generous.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultLLMTimeout is the timeout for a single Ollama generation.
	// Local models on CPU can take minutes for a long transcript, so
	// this is deliberately large.
	DefaultLLMTimeout = 180 * time.Second

	// DefaultBatchDelay is the delay between videos during batch
	// extraction. This is a politeness setting to avoid hammering
	// YouTube from a single IP.
	DefaultBatchDelay = 3 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "kitchenos"

	// DefaultUserAgent identifies KitchenOS in HTTP requests.
	DefaultUserAgent = "Mozilla/5.0 (compatible; KitchenOS/1.0)"
)

// Config holds all configuration options for KitchenOS, populated
// from defaults, then the optional config file, then CLI flags.
type Config struct {
	// OllamaURL is the base URL of the Ollama API.
	OllamaURL string

	// Model is the Ollama model name used for extraction.
	Model string

	// ParserURL is the base URL of the statistical ingredient parser
	// service. Leave empty to use only the deterministic parser.
	ParserURL string

	// ConfidenceThreshold is the minimum parser confidence for an
	// ingredient line to be accepted without review.
	ConfidenceThreshold float64

	// FetchTimeout is the timeout for YouTube and recipe-site requests.
	FetchTimeout time.Duration

	// LLMTimeout is the timeout for a single Ollama generation.
	LLMTimeout time.Duration

	// BatchDelay is the pause between videos during batch extraction.
	BatchDelay time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .kitchenos.yml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// File holds the settings loaded from the config file, when one
	// was found. Nil when no config file exists.
	File *File

	// DBDir is the directory path for storing the SQLite recipe store.
	// Defaults to the XDG data directory.
	DBDir string

	// OutputDir is where extracted recipe markdown files are written.
	// When empty, reports go to stdout only.
	OutputDir string

	// MarkdownReport enables markdown report output.
	// Mutually exclusive with SimpleReport; markdown is the default
	// when a file output is requested.
	MarkdownReport bool

	// SimpleReport enables plain-text report output.
	SimpleReport bool

	// Targets is the list of YouTube video URLs to extract.
	Targets []string
}

// NewConfig creates a new Config with default values.
// All fields are set to sensible defaults that work for a local Ollama
// setup; users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		OllamaURL:           DefaultOllamaURL,
		Model:               DefaultModel,
		ParserURL:           DefaultParserURL,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		FetchTimeout:        DefaultFetchTimeout,
		LLMTimeout:          DefaultLLMTimeout,
		BatchDelay:          DefaultBatchDelay,
		DBDir:               XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for KitchenOS.
// On Linux: ~/.local/share/kitchenos
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for KitchenOS.
// On Linux: ~/.config/kitchenos
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found rather than collecting all errors,
// because fixing one error often makes others irrelevant. This is
// called once after CLI parsing, before any extraction begins.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.OllamaURL == "" {
		return ErrInvalidOllamaURL
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return ErrInvalidThreshold
	}

	if c.FetchTimeout <= 0 || c.LLMTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchDelay < 0 {
		return ErrInvalidBatchDelay
	}

	if c.MarkdownReport && c.SimpleReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// KnownDomains returns the recipe-site domains to trust during
// description link discovery, merging config-file additions with the
// empty default (the source package carries the built-in list).
func (c *Config) KnownDomains() []string {
	if c.File == nil {
		return nil
	}
	return c.File.KnownDomains
}

// ExcludedDomains returns extra domains to ignore during description
// link discovery.
func (c *Config) ExcludedDomains() []string {
	if c.File == nil {
		return nil
	}
	return c.File.ExcludedDomains
}
