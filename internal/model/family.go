package model

// Family groups units that can be summed with each other.
// Two quantities combine only when their units belong to the same family,
// and for count/other families only when the unit strings are identical.
type Family int

const (
	// FamilyVolume covers units convertible through teaspoons
	// (tsp, tbsp, cup, fl oz, ml, l).
	FamilyVolume Family = iota

	// FamilyWeight covers units convertible through ounces (oz, lb, g, kg).
	FamilyWeight

	// FamilyCount covers discrete nouns such as clove, head, or can.
	// There is no numeric conversion between different count units;
	// they combine only when the unit string is identical.
	FamilyCount

	// FamilyOther covers units the table does not recognize.
	// Like count units, they combine only on identical unit strings.
	FamilyOther
)

// String returns a human-readable representation of the unit family.
func (f Family) String() string {
	switch f {
	case FamilyVolume:
		return "volume"
	case FamilyWeight:
		return "weight"
	case FamilyCount:
		return "count"
	case FamilyOther:
		return "other"
	default:
		return "unknown"
	}
}
