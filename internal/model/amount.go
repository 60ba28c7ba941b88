package model

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountKind discriminates the three representations an Amount can take.
type amountKind int

const (
	// amountNumber is a plain numeric quantity ("2", "0.5", "1 1/2" reduced).
	amountNumber amountKind = iota

	// amountRange is a literal range such as "3-4". The text is preserved
	// verbatim and never resolved to a single number for display.
	amountRange

	// amountNone means the record carries no true quantity. Informal
	// measurements ("a pinch", "to taste") and blank amounts from external
	// parsers fall here. The display value is 1.
	amountNone
)

// rangePattern matches "3-4", "1.5-2", "3 - 4".
var rangePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)$`)

// Amount is an ingredient quantity. It is one of:
//   - a numeric value,
//   - a literal range kept verbatim (e.g. "3-4"), or
//   - no true amount, used for informal measurements.
//
// Amount is an immutable value type; construct it with Number, Range, or
// NoAmount and never mutate it afterwards.
type Amount struct {
	kind      amountKind
	value     float64
	low, high float64
	raw       string
}

// Number returns a numeric Amount. Negative values are accepted here and
// rejected later by record validation so malformed upstream data is
// reported rather than silently clamped.
func Number(v float64) Amount {
	return Amount{kind: amountNumber, value: v}
}

// Range returns a literal range Amount. The raw text is preserved exactly
// as parsed and is never collapsed to one side.
func Range(raw string, low, high float64) Amount {
	return Amount{kind: amountRange, low: low, high: high, raw: raw}
}

// NoAmount returns an Amount for records without a true quantity.
func NoAmount() Amount {
	return Amount{kind: amountNone}
}

// ParseAmount converts loose external input (a number rendered as text, a
// range, or an empty string) into an Amount. It reports false when the text
// is not recognizable as any amount form.
func ParseAmount(s string) (Amount, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoAmount(), true
	}
	if m := rangePattern.FindStringSubmatch(s); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		high, _ := strconv.ParseFloat(m[2], 64)
		return Range(m[1]+"-"+m[2], low, high), true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(v), true
	}
	return Amount{}, false
}

// IsRange reports whether the amount is a literal range.
func (a Amount) IsRange() bool { return a.kind == amountRange }

// IsNone reports whether the record carries no true quantity.
func (a Amount) IsNone() bool { return a.kind == amountNone }

// Value returns the summable numeric value and whether one exists.
// Ranges report their midpoint, matching how the aggregator sums them.
// No-amount records report false.
func (a Amount) Value() (float64, bool) {
	switch a.kind {
	case amountNumber:
		return a.value, true
	case amountRange:
		return (a.low + a.high) / 2, true
	default:
		return 0, false
	}
}

// Display returns the value shown to the user: the literal range text,
// a trimmed decimal, or "1" for no-amount records.
func (a Amount) Display() string {
	switch a.kind {
	case amountRange:
		return a.raw
	case amountNone:
		return "1"
	default:
		return FormatQuantity(a.value)
	}
}

// String implements fmt.Stringer.
func (a Amount) String() string { return a.Display() }

// Negative reports whether the amount holds a negative quantity.
// Such records are malformed and skipped during aggregation.
func (a Amount) Negative() bool {
	switch a.kind {
	case amountNumber:
		return a.value < 0
	case amountRange:
		return a.low < 0 || a.high < 0
	default:
		return false
	}
}

// MarshalJSON encodes the amount the way recipe documents store it:
// numbers as JSON numbers, ranges as strings, no-amount as an empty string.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case amountNumber:
		return json.Marshal(a.value)
	case amountRange:
		return json.Marshal(a.raw)
	default:
		return json.Marshal("")
	}
}

// UnmarshalJSON accepts a JSON number, a numeric string, a range string,
// or an empty string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = Number(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a number or string: %w", err)
	}
	parsed, ok := ParseAmount(s)
	if !ok {
		return fmt.Errorf("unrecognized amount %q", s)
	}
	*a = parsed
	return nil
}

// FormatQuantity renders a float for display, dropping the decimal part
// when it is whole and trimming trailing zeros otherwise ("3", "1.5", "0.33").
func FormatQuantity(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	rounded := math.Round(v*100) / 100
	if rounded == math.Trunc(rounded) {
		return strconv.FormatInt(int64(rounded), 10)
	}
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(rounded, 'f', 2, 64), "0"), ".")
}
