package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// BatchProcessor runs the extraction pipeline over a list of video
// URLs, one at a time, with a politeness delay between videos.
//
// A separate BatchProcessor keeps the Pipeline focused on single-video
// execution. Videos are processed sequentially rather than
// concurrently: YouTube rate-limits aggressive clients per IP, and the
// local LLM can only generate for one transcript at a time anyway, so
// concurrency would add failure modes without adding throughput.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each video, so
	// pipeline state never leaks between extractions.
	pipelineFactory func() *Pipeline

	// delay is the pause between consecutive videos.
	delay time.Duration

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchDelay sets the pause between consecutive videos.
func WithBatchDelay(d time.Duration) BatchOption {
	return func(b *BatchProcessor) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// The pipelineFactory function is called for each video to create a
// fresh pipeline instance.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Summary aggregates the outcomes of a batch run.
type Summary struct {
	// Total is the number of URLs processed.
	Total int

	// Succeeded counts extractions that produced a recipe.
	Succeeded int

	// Skipped counts videos already in the store.
	Skipped int

	// Failed counts extractions that ran and failed.
	Failed int

	// Invalid counts inputs that were not usable YouTube URLs.
	Invalid int

	// Extractions holds the per-video state in input order.
	Extractions []*Extraction
}

// record classifies one finished extraction into the summary.
func (s *Summary) record(ext *Extraction) {
	s.Total++
	s.Extractions = append(s.Extractions, ext)

	switch ext.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusSkipped:
		s.Skipped++
	case StatusInvalid:
		s.Invalid++
	default:
		s.Failed++
	}
}

// ProcessBatch extracts recipes from multiple videos in input order.
// Individual failures never abort the batch; every URL is attempted and
// classified in the summary. The returned error is non-nil only when
// the context is cancelled mid-batch.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) (*Summary, error) {
	bp.logger.Info("starting batch extraction",
		"total_videos", len(urls),
		"delay", bp.delay,
	)

	startTime := time.Now()
	summary := &Summary{}

	for i, url := range urls {
		if i > 0 && bp.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(bp.delay):
			}
		}

		if err := ctx.Err(); err != nil {
			bp.logger.Warn("batch cancelled",
				"processed", i,
				"total", len(urls),
			)
			return summary, err
		}

		bp.logger.Info("extracting video",
			"url", url,
			"index", i+1,
			"total", len(urls),
		)

		ext := NewExtraction(url)
		err := bp.pipelineFactory().Execute(ctx, ext)
		summary.record(ext)

		switch {
		case err == nil:
			bp.logger.Info("extraction succeeded",
				"url", url,
				"recipe", ext.Recipe.Name,
			)
		case errors.Is(err, ErrAlreadyExtracted):
			// Already logged by the duplicate check step.
		case errors.Is(err, ctx.Err()) && ctx.Err() != nil:
			return summary, ctx.Err()
		default:
			bp.logger.Warn("extraction failed",
				"url", url,
				"status", ext.Status,
				"error", err,
			)
		}
	}

	bp.logger.Info("batch extraction complete",
		"total_videos", summary.Total,
		"succeeded", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"invalid", summary.Invalid,
		"elapsed", time.Since(startTime),
	)

	return summary, nil
}
