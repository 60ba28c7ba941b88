// Package units provides the static registry of recognized cooking units.
//
// The table maps every unit synonym ("tablespoons", "tbs", "T") to a
// canonical unit string ("tbsp") and a unit family, and carries the
// conversion factors used to sum volume and weight quantities through
// their family base units (teaspoon for volume, ounce for weight).
//
// The table is immutable: it is constructed once at startup and passed by
// reference into otherwise-pure functions. Lookups have no side effects.
package units
