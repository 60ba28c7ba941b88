package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".kitchenos.yml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .kitchenos.yml configuration file.
// Everything in it is optional; the file exists to teach KitchenOS about
// recipe sites the built-in lists don't know.
type File struct {
	// Ollama overrides the LLM connection settings.
	Ollama OllamaConfig `yaml:"ollama,omitempty"`

	// KnownDomains are additional recipe-site domains to trust when
	// scanning video descriptions for recipe links.
	KnownDomains []string `yaml:"knownDomains,omitempty"`

	// ExcludedDomains are additional domains to ignore when scanning
	// video descriptions for recipe links (merch stores, social links).
	ExcludedDomains []string `yaml:"excludedDomains,omitempty"`
}

// OllamaConfig holds config-file overrides for the Ollama connection.
type OllamaConfig struct {
	// URL is the Ollama API base URL.
	URL string `yaml:"url,omitempty"`

	// Model is the model name to use for extraction.
	Model string `yaml:"model,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this error based on whether the path was explicitly
// specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .kitchenos.yml in the current directory
// 3. Look for .kitchenos.yml in the user's home directory
// 4. Look for .kitchenos.yml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), DefaultConfigFile))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Apply copies file-level overrides into the runtime configuration.
// CLI flags are applied after this, so flags always win.
func (cf *File) Apply(c *Config) {
	if cf.Ollama.URL != "" {
		c.OllamaURL = cf.Ollama.URL
	}
	if cf.Ollama.Model != "" {
		c.Model = cf.Ollama.Model
	}
	c.File = cf
}
