package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// Confidence values reported by the deterministic parser. They sit below
// any sensible gate threshold on purpose: a deterministic parse is a
// bounded worst case, not a trusted result.
const (
	// ConfidenceVerbatim is reported when the amount was read directly
	// from the text.
	ConfidenceVerbatim = 0.6

	// ConfidenceInferred is reported when any part had to be guessed
	// (implicit amount, informal measurement).
	ConfidenceInferred = 0.4
)

// defaultInformalPhrases are measurement phrases that carry no true
// quantity. A matching phrase becomes the record's unit with an implicit
// amount of one. Longer phrases are matched first.
var defaultInformalPhrases = []string{
	"a sprinkle", "a handful", "a splash", "a smidge", "a couple",
	"as needed", "to taste", "a pinch", "a dash", "a few", "some",
}

// numberWords maps spelled-out amounts to digits.
var numberWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// Leading-amount patterns, tried in precedence order. A range is kept as
// a literal string and never resolved to one side.
var (
	leadingRange   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)(?:\s|$)`)
	leadingMixed   = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)(?:\s|$)`)
	leadingFrac    = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)(?:\s|$)`)
	leadingNumber  = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)
	vulgarFraction = map[rune]bool{
		'¼': true, '½': true, '¾': true, '⅐': true, '⅑': true, '⅒': true,
		'⅓': true, '⅔': true, '⅕': true, '⅖': true, '⅗': true, '⅘': true,
		'⅙': true, '⅚': true, '⅛': true, '⅜': true, '⅝': true, '⅞': true,
	}
)

// Option configures a Parser.
type Option func(*Parser)

// WithInformalPhrases replaces the default informal measurement phrases.
func WithInformalPhrases(phrases []string) Option {
	return func(p *Parser) {
		p.informal = phrases
	}
}

// Parser is the deterministic, always-available ingredient line parser.
// Parse never returns an error; total failure yields a degraded record
// with zero confidence flagged for review.
type Parser struct {
	units    *units.Table
	informal []string
}

// New creates a deterministic parser backed by the given unit table.
func New(table *units.Table, opts ...Option) *Parser {
	p := &Parser{
		units:    table,
		informal: defaultInformalPhrases,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts one raw ingredient line into a structured record.
//
// The steps run in order, first match wins:
//  1. informal measurement phrase (prefix or suffix)
//  2. leading numeric amount: range > mixed number > fraction >
//     decimal/integer > spelled-out word
//  3. unit match against the table, two-word tokens before one-word
//  4. the remainder becomes the item
//
// An empty remainder invalidates the split: the whole original line
// becomes the item with an inferred amount of one.
func (p *Parser) Parse(raw string) model.IngredientRecord {
	text := normalizeText(raw)
	if text == "" {
		return degraded(raw)
	}

	if rec, ok := p.parseInformal(text); ok {
		return rec
	}

	amount, verbatim, rest := p.parseAmount(text)

	unit, rest := p.parseUnit(rest)

	item := cleanItem(rest)
	if item == "" {
		// The amount/unit split consumed everything; the line was a bare
		// name after all ("Lavash bread") or structure-only ("2 cups").
		item = cleanItem(text)
		if item == "" {
			return degraded(raw)
		}
		return model.IngredientRecord{
			Amount:      model.Number(1),
			Unit:        model.UnitWhole,
			Item:        item,
			Inferred:    true,
			Confidence:  ConfidenceInferred,
			NeedsReview: true,
		}
	}

	confidence := ConfidenceVerbatim
	if !verbatim {
		confidence = ConfidenceInferred
	}
	return model.IngredientRecord{
		Amount:      amount,
		Unit:        unit,
		Item:        item,
		Inferred:    !verbatim,
		Confidence:  confidence,
		NeedsReview: !verbatim,
	}
}

// parseInformal matches informal measurement phrases at the start or end
// of the line. "a pinch of salt" and "salt and pepper to taste" both
// resolve to the phrase as the unit.
func (p *Parser) parseInformal(text string) (model.IngredientRecord, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range p.informal {
		// Prefix and suffix matches must end on a word boundary so that
		// "some" never matches inside "sometimes".
		if strings.HasPrefix(lower, phrase) &&
			(len(lower) == len(phrase) || lower[len(phrase)] == ' ') {
			item := cleanItem(text[len(phrase):])
			if item == "" {
				return model.IngredientRecord{}, false
			}
			return informalRecord(phrase, item), true
		}
		if strings.HasSuffix(lower, phrase) &&
			len(lower) > len(phrase) && lower[len(lower)-len(phrase)-1] == ' ' {
			item := cleanItem(text[:len(text)-len(phrase)])
			if item == "" {
				return model.IngredientRecord{}, false
			}
			return informalRecord(phrase, item), true
		}
	}
	return model.IngredientRecord{}, false
}

// parseAmount extracts the leading numeric amount. verbatim reports
// whether the amount was read from the text; when nothing matches the
// amount defaults to one and verbatim is false.
func (p *Parser) parseAmount(text string) (amount model.Amount, verbatim bool, rest string) {
	if m := leadingRange.FindStringSubmatch(text); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		high, _ := strconv.ParseFloat(m[2], 64)
		return model.Range(m[1]+"-"+m[2], low, high), true, stripAmountMarks(text[len(m[0]):])
	}
	if m := leadingMixed.FindStringSubmatch(text); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			return model.Number(whole + num/den), true, stripAmountMarks(text[len(m[0]):])
		}
	}
	if m := leadingFrac.FindStringSubmatch(text); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den != 0 {
			return model.Number(num / den), true, stripAmountMarks(text[len(m[0]):])
		}
	}
	if m := leadingNumber.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return model.Number(v), true, stripAmountMarks(text[len(m[0]):])
	}
	if fields := strings.Fields(text); len(fields) > 0 {
		if v, ok := numberWords[strings.ToLower(fields[0])]; ok {
			return model.Number(v), true, strings.TrimPrefix(strings.TrimSpace(text), fields[0])
		}
	}
	return model.Number(1), false, text
}

// parseUnit matches the next one or two words against the unit table.
// No match leaves the text untouched and the unit as "whole".
func (p *Parser) parseUnit(text string) (unit string, rest string) {
	words := strings.Fields(text)
	matched, consumed, ok := p.units.MatchPrefix(words)
	if !ok {
		return model.UnitWhole, text
	}
	return matched, strings.Join(words[consumed:], " ")
}

// informalRecord builds the record for an informal measurement match.
func informalRecord(phrase, item string) model.IngredientRecord {
	return model.IngredientRecord{
		Amount:      model.NoAmount(),
		Unit:        phrase,
		Item:        item,
		Inferred:    true,
		Confidence:  ConfidenceInferred,
		NeedsReview: true,
	}
}

// degraded is the bounded worst case: the original text survives as the
// item so nothing is silently dropped, and the record is flagged.
func degraded(raw string) model.IngredientRecord {
	return model.IngredientRecord{
		Amount:      model.Number(1),
		Unit:        model.UnitWhole,
		Item:        strings.ToLower(strings.TrimSpace(raw)),
		Inferred:    true,
		Confidence:  0,
		NeedsReview: true,
	}
}

// normalizeText prepares a raw line for parsing: NFKC folding turns
// vulgar fraction runes ("½") into digit-slash form, with a space
// inserted after a preceding digit so "1½" reads as a mixed number.
func normalizeText(raw string) string {
	var b strings.Builder
	prevDigit := false
	for _, r := range raw {
		if vulgarFraction[r] && prevDigit {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prevDigit = r >= '0' && r <= '9'
	}
	text := norm.NFKC.String(b.String())
	text = strings.ReplaceAll(text, "⁄", "/")
	return strings.TrimSpace(text)
}

// stripAmountMarks removes inch marks left after a numeric amount, as in
// `1" knob fresh ginger`.
func stripAmountMarks(text string) string {
	text = strings.TrimSpace(text)
	for _, mark := range []string{`"`, "”", "''", "in.", "inch"} {
		if strings.HasPrefix(text, mark) {
			return strings.TrimSpace(text[len(mark):])
		}
	}
	return text
}

// cleanItem trims the leftover text into an item name: whitespace and
// connective "of" removed, lowercased, inner whitespace collapsed.
func cleanItem(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, ",;:-")
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "of ") {
		lower = lower[len("of "):]
	}
	return strings.Join(strings.Fields(lower), " ")
}
