package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Package-level sentinel errors let callers use errors.Is() for
// programmatic handling while still reading well in log output.
var (
	// ErrNoTarget is returned when no video URL or list file is specified.
	ErrNoTarget = errors.New("no target specified: provide a YouTube URL or use --list")

	// ErrInvalidOllamaURL is returned when the Ollama base URL is empty.
	ErrInvalidOllamaURL = errors.New("invalid ollama url: must not be empty")

	// ErrInvalidThreshold is returned when the parser confidence
	// threshold falls outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid confidence threshold: must be between 0 and 1")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchDelay is returned when the batch delay is negative.
	// Use 0 for no delay between videos.
	ErrInvalidBatchDelay = errors.New("invalid batch delay: must be non-negative")

	// ErrConflictingReportFormats is returned when both --markdown and
	// --simple are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --markdown and --simple cannot be used together")
)
