package units

import (
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// Base units for the two convertible families. Volume amounts are summed
// in teaspoons, weight amounts in ounces, then converted back to a
// display unit.
const (
	BaseVolumeUnit = "tsp"
	BaseWeightUnit = "oz"
)

// synonyms maps every recognized unit token to its canonical form.
// Keys are lowercase except the case-sensitive single letters below.
//
// "T" and "t" follow the common recipe convention: capital T is a
// tablespoon, lowercase t a teaspoon. They are looked up before the
// case-insensitive pass.
var synonyms = map[string]string{
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp", "tbs": "tbsp",
	"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp",
	"cup": "cup", "cups": "cup",
	"fluid ounce": "fl oz", "fluid ounces": "fl oz", "fl oz": "fl oz",
	"ounce": "oz", "ounces": "oz", "oz": "oz",
	"pound": "lb", "pounds": "lb", "lb": "lb", "lbs": "lb",
	"gram": "g", "grams": "g", "g": "g",
	"kilogram": "kg", "kilograms": "kg", "kg": "kg",
	"milliliter": "ml", "milliliters": "ml", "ml": "ml",
	"liter": "l", "liters": "l", "l": "l",
	"clove": "clove", "cloves": "clove",
	"head": "head", "heads": "head",
	"knob": "knob", "knobs": "knob",
	"bunch": "bunch", "bunches": "bunch",
	"sprig": "sprig", "sprigs": "sprig",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece",
	"can": "can", "cans": "can",
	"package": "package", "packages": "package",
	"whole": "whole",
}

// caseSensitive holds the synonyms that must match before lowercasing.
var caseSensitive = map[string]string{
	"T": "tbsp",
	"t": "tsp",
}

// volumeToTsp holds conversion factors from each canonical volume unit to
// teaspoons.
var volumeToTsp = map[string]float64{
	"tsp":   1,
	"tbsp":  3,
	"fl oz": 6,
	"cup":   48,
	"ml":    0.2029,
	"l":     202.9,
}

// weightToOz holds conversion factors from each canonical weight unit to
// ounces.
var weightToOz = map[string]float64{
	"oz": 1,
	"lb": 16,
	"g":  0.035274,
	"kg": 35.274,
}

// countUnits holds the canonical discrete units. They have no numeric
// conversion between each other and combine only on identical strings.
var countUnits = map[string]struct{}{
	"clove": {}, "head": {}, "knob": {}, "bunch": {}, "sprig": {},
	"slice": {}, "piece": {}, "can": {}, "package": {}, "whole": {},
}

// Table is the immutable unit registry. Construct it once with NewTable
// and share it; all methods are pure lookups.
type Table struct {
	synonyms      map[string]string
	caseSensitive map[string]string
	volumeToTsp   map[string]float64
	weightToOz    map[string]float64
	countUnits    map[string]struct{}
}

// NewTable returns the unit registry.
func NewTable() *Table {
	return &Table{
		synonyms:      synonyms,
		caseSensitive: caseSensitive,
		volumeToTsp:   volumeToTsp,
		weightToOz:    weightToOz,
		countUnits:    countUnits,
	}
}

// Canonicalize maps a raw unit token to its canonical unit string.
// It reports false for tokens the table does not recognize.
func (t *Table) Canonicalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if unit, ok := t.caseSensitive[raw]; ok {
		return unit, true
	}
	if unit, ok := t.synonyms[strings.ToLower(raw)]; ok {
		return unit, true
	}
	return "", false
}

// MatchPrefix matches the longest recognized unit at the start of words,
// trying two-word tokens ("fluid ounce") before single words ("ounce").
// It returns the canonical unit and the number of words consumed, or
// false when no prefix is a known unit.
func (t *Table) MatchPrefix(words []string) (unit string, consumed int, ok bool) {
	if len(words) >= 2 {
		if unit, ok := t.Canonicalize(words[0] + " " + words[1]); ok {
			return unit, 2, true
		}
	}
	if len(words) >= 1 {
		if unit, ok := t.Canonicalize(words[0]); ok {
			return unit, 1, true
		}
	}
	return "", 0, false
}

// FamilyOf returns the unit family for a canonical or raw unit string.
// Unknown and empty units belong to FamilyOther.
func (t *Table) FamilyOf(unit string) model.Family {
	canonical, ok := t.Canonicalize(unit)
	if !ok {
		canonical = strings.ToLower(strings.TrimSpace(unit))
	}
	switch {
	case t.volumeToTsp[canonical] != 0:
		return model.FamilyVolume
	case t.weightToOz[canonical] != 0:
		return model.FamilyWeight
	default:
		if _, ok := t.countUnits[canonical]; ok {
			return model.FamilyCount
		}
		return model.FamilyOther
	}
}

// ToBase converts an amount in the given canonical unit to the family
// base unit (teaspoons or ounces). Count and unknown units pass through
// unchanged with ok=false.
func (t *Table) ToBase(amount float64, unit string) (float64, bool) {
	if factor, ok := t.volumeToTsp[unit]; ok {
		return amount * factor, true
	}
	if factor, ok := t.weightToOz[unit]; ok {
		return amount * factor, true
	}
	return amount, false
}

// FromBase converts an amount in the family base unit to the given
// canonical unit. Count and unknown units pass through unchanged with
// ok=false.
func (t *Table) FromBase(amount float64, unit string) (float64, bool) {
	if factor, ok := t.volumeToTsp[unit]; ok {
		return amount / factor, true
	}
	if factor, ok := t.weightToOz[unit]; ok {
		return amount / factor, true
	}
	return amount, false
}

// BaseUnit returns the base unit for a convertible family, or the empty
// string for families without one.
func (t *Table) BaseUnit(f model.Family) string {
	switch f {
	case model.FamilyVolume:
		return BaseVolumeUnit
	case model.FamilyWeight:
		return BaseWeightUnit
	default:
		return ""
	}
}

// Abbreviated reports whether a canonical unit is an abbreviation that is
// never pluralized in display output ("3 tbsp", never "3 tbsps").
func (t *Table) Abbreviated(unit string) bool {
	switch unit {
	case "tsp", "tbsp", "oz", "fl oz", "lb", "g", "kg", "ml", "l":
		return true
	default:
		return false
	}
}
