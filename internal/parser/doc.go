// Package parser turns free-text ingredient lines into structured
// IngredientRecord values.
//
// Two parsers cooperate behind a confidence gate:
//   - Parser is deterministic and always available. It never fails; the
//     worst case is a low-confidence record flagged for review.
//   - StatisticalClient wraps the external ML ingredient-parsing service.
//     It is more accurate on well-formed text but has no graceful
//     degradation; all of its failures are recoverable.
//
// Gate prefers the statistical result and falls back to the deterministic
// parser when the reported confidence is below the trust threshold. A
// downgrade is always flagged with NeedsReview regardless of how cleanly
// the fallback parse went.
package parser
