// Package pipeline implements the extraction pipeline architecture for
// KitchenOS. An extraction is broken into discrete steps (validate the
// URL, fetch the video, check for duplicates, resolve the recipe
// source, save, report) that execute in sequence against a shared
// Extraction state.
//
// The step-based design keeps each concern independently testable and
// makes the extraction order explicit in one place, instead of being
// buried in a single long function.
package pipeline
