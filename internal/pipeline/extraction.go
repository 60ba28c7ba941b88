package pipeline

import (
	"errors"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// ErrAlreadyExtracted is returned by the duplicate check when a recipe
// for the video is already in the store. The pipeline stops, and batch
// processing classifies the video as skipped rather than failed.
var ErrAlreadyExtracted = errors.New("pipeline: recipe already extracted for this video")

// Status classifies how an extraction ended.
type Status string

const (
	// StatusPending means the extraction has not finished yet.
	StatusPending Status = "pending"

	// StatusSucceeded means a recipe was extracted.
	StatusSucceeded Status = "succeeded"

	// StatusSkipped means the video was already in the store.
	StatusSkipped Status = "skipped"

	// StatusFailed means extraction ran and failed.
	StatusFailed Status = "failed"

	// StatusInvalid means the input was not a usable YouTube URL.
	StatusInvalid Status = "invalid"
)

// Extraction is the accumulated state of one video's extraction as it
// moves through the pipeline. Steps read what earlier steps produced
// and write their own results into it.
type Extraction struct {
	// RawURL is the URL exactly as the user provided it.
	RawURL string

	// VideoID is the parsed 11-character video identifier.
	VideoID string

	// Video holds the fetched metadata and transcript.
	Video model.VideoMetadata

	// Result is the winning source resolution, nil until resolved.
	Result *model.SourceResult

	// Recipe is the extracted recipe, nil until resolved.
	Recipe *model.Recipe

	// Status classifies the outcome.
	Status Status

	// Reason is the human-readable failure or skip reason.
	Reason string

	// PerformedSteps lists the names of steps that ran, in order.
	PerformedSteps []string
}

// NewExtraction creates the pipeline state for one video URL.
func NewExtraction(rawURL string) *Extraction {
	return &Extraction{
		RawURL: rawURL,
		Status: StatusPending,
	}
}

// Fail records a failure reason without overwriting a more specific
// status a step already set (invalid, skipped).
func (e *Extraction) Fail(reason string) {
	if e.Status == StatusPending {
		e.Status = StatusFailed
	}
	if e.Reason == "" {
		e.Reason = reason
	}
}
