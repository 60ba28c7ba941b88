package parser

import (
	"context"
	"log/slog"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// DefaultThreshold is the confidence below which a statistical result is
// discarded in favor of the deterministic fallback. 0.8 keeps clearly
// confident results while routing borderline parses through the bounded
// deterministic path.
const DefaultThreshold = 0.8

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithThreshold overrides the confidence threshold.
func WithThreshold(threshold float64) GateOption {
	return func(g *Gate) {
		g.threshold = threshold
	}
}

// WithGateLogger sets a custom logger for the gate.
func WithGateLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// Gate is the two-tier normalization strategy: it prefers the
// statistical parser and falls back to the deterministic parser below
// the trust threshold. The statistical model is more accurate on
// well-formed text but has no graceful degradation; the deterministic
// parser is always available and bounds the worst case.
type Gate struct {
	statistical StatisticalParser
	fallback    *Parser
	threshold   float64
	logger      *slog.Logger
}

// NewGate creates a confidence gate over the two parsers.
func NewGate(statistical StatisticalParser, fallback *Parser, opts ...GateOption) *Gate {
	g := &Gate{
		statistical: statistical,
		fallback:    fallback,
		threshold:   DefaultThreshold,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Normalize turns one raw ingredient line into a canonical record.
//
// A statistical result at or above the threshold is returned unmodified
// with NeedsReview false. Any statistical failure or sub-threshold
// confidence routes through the deterministic parser instead, and the
// downgrade is always flagged with NeedsReview regardless of how cleanly
// the fallback parse went. Normalize never fails.
func (g *Gate) Normalize(ctx context.Context, raw string) model.IngredientRecord {
	if g.statistical != nil {
		rec, err := g.statistical.Parse(ctx, raw)
		if err == nil && rec.Confidence >= g.threshold {
			rec.NeedsReview = false
			return rec
		}
		if err != nil {
			g.logger.Debug("statistical parse unavailable, using fallback",
				"text", raw,
				"error", err,
			)
		} else {
			g.logger.Debug("statistical confidence below threshold, using fallback",
				"text", raw,
				"confidence", rec.Confidence,
				"threshold", g.threshold,
			)
		}
	}

	rec := g.fallback.Parse(raw)
	rec.NeedsReview = true
	return rec
}
