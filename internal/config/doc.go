// Package config provides configuration structures and utilities for
// KitchenOS. It defines the main options for recipe extraction, the
// Ollama connection, source discovery, and report generation.
package config
