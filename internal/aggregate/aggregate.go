package aggregate

import (
	"log/slog"
	"math"
	"strings"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// DensityLookup resolves an item's density for volume-to-weight
// conversion. The aggregator accepts one but never calls it yet;
// cross-family merging stays off until a real density table exists.
type DensityLookup func(item string) (gramsPerMilliliter float64, ok bool)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithDensityLookup registers a density source for future cross-family
// conversion.
func WithDensityLookup(lookup DensityLookup) Option {
	return func(a *Aggregator) {
		a.density = lookup
	}
}

// Aggregator combines ingredient records into shopping-list entries.
type Aggregator struct {
	units   *units.Table
	logger  *slog.Logger
	density DensityLookup
}

// New creates an aggregator over the given unit table.
func New(table *units.Table, opts ...Option) *Aggregator {
	a := &Aggregator{
		units:  table,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// itemGroup collects one item's records, partitioned for summing.
// Convertible families accumulate a base-unit total; count and other
// units bucket per exact unit string; informal records only count.
type itemGroup struct {
	item string

	volume *familyBucket
	weight *familyBucket

	countOrder []string
	countSums  map[string]*unitBucket

	informal      int
	informalUnit  string
	informalFirst model.IngredientRecord
}

type familyBucket struct {
	base      float64
	records   []model.IngredientRecord
	unitCount map[string]int
	unitOrder []string
}

type unitBucket struct {
	sum     float64
	family  model.Family
	records []model.IngredientRecord
}

// Aggregate combines records into one entry list per distinct item, in
// first-seen item order. Malformed records (empty item, negative
// amount) are skipped with a warning; they are the only records that do
// not reach the output.
func (a *Aggregator) Aggregate(records []model.IngredientRecord) []model.AggregatedIngredient {
	groups := make(map[string]*itemGroup)
	var order []string

	for _, rec := range records {
		key := rec.ItemKey()
		if key == "" || rec.Amount.Negative() {
			a.logger.Warn("skipping malformed ingredient record",
				"item", rec.Item,
				"unit", rec.Unit,
				"amount", rec.Amount.Display(),
			)
			continue
		}

		group, ok := groups[key]
		if !ok {
			group = &itemGroup{item: key, countSums: make(map[string]*unitBucket)}
			groups[key] = group
			order = append(order, key)
		}
		a.add(group, rec)
	}

	result := make([]model.AggregatedIngredient, 0, len(order))
	for _, key := range order {
		result = append(result, a.finish(groups[key]))
	}
	return result
}

// add routes one record into its group's partition.
func (a *Aggregator) add(group *itemGroup, rec model.IngredientRecord) {
	if rec.Informal() {
		// Informal measurements deduplicate; "a pinch" twice is still a
		// pinch on the shopping list.
		if group.informal == 0 {
			group.informalUnit = rec.Unit
			group.informalFirst = rec
		}
		group.informal++
		return
	}

	value, _ := rec.Amount.Value()

	// A blank unit is a bare count. "2 eggs" and "2 whole eggs" must
	// land in the same bucket.
	if strings.TrimSpace(rec.Unit) == "" {
		rec.Unit = model.UnitWhole
	}

	switch a.units.FamilyOf(rec.Unit) {
	case model.FamilyVolume:
		if group.volume == nil {
			group.volume = newFamilyBucket()
		}
		base, _ := a.units.ToBase(value, rec.Unit)
		group.volume.add(rec, base)
	case model.FamilyWeight:
		if group.weight == nil {
			group.weight = newFamilyBucket()
		}
		base, _ := a.units.ToBase(value, rec.Unit)
		group.weight.add(rec, base)
	case model.FamilyCount:
		a.addUnitBucket(group, rec, value, model.FamilyCount)
	default:
		a.addUnitBucket(group, rec, value, model.FamilyOther)
	}
}

func (a *Aggregator) addUnitBucket(group *itemGroup, rec model.IngredientRecord, value float64, family model.Family) {
	bucket, ok := group.countSums[rec.Unit]
	if !ok {
		bucket = &unitBucket{family: family}
		group.countSums[rec.Unit] = bucket
		group.countOrder = append(group.countOrder, rec.Unit)
	}
	bucket.sum += value
	bucket.records = append(bucket.records, rec)
}

func newFamilyBucket() *familyBucket {
	return &familyBucket{unitCount: make(map[string]int)}
}

func (b *familyBucket) add(rec model.IngredientRecord, base float64) {
	b.base += base
	b.records = append(b.records, rec)
	if _, seen := b.unitCount[rec.Unit]; !seen {
		b.unitOrder = append(b.unitOrder, rec.Unit)
	}
	b.unitCount[rec.Unit]++
}

// finish renders a group into its entries: volume, weight, count and
// other per unit, then the informal line.
func (a *Aggregator) finish(group *itemGroup) model.AggregatedIngredient {
	var entries []model.AggregatedEntry

	if group.volume != nil {
		entries = append(entries, a.familyEntry(group.volume, model.FamilyVolume))
	}
	if group.weight != nil {
		entries = append(entries, a.familyEntry(group.weight, model.FamilyWeight))
	}
	for _, unit := range group.countOrder {
		bucket := group.countSums[unit]
		entries = append(entries, unitEntry(unit, bucket))
	}
	if group.informal > 0 {
		entries = append(entries, model.AggregatedEntry{
			Family:  model.FamilyOther,
			Amount:  model.NoAmount(),
			Unit:    group.informalUnit,
			Records: group.informal,
		})
	}

	return model.AggregatedIngredient{Item: group.item, Entries: entries}
}

// familyEntry sums a convertible bucket and picks its display unit. A
// bucket with a single record passes that record through untouched, so
// a lone "3-4" range survives as the literal text.
func (a *Aggregator) familyEntry(bucket *familyBucket, family model.Family) model.AggregatedEntry {
	if len(bucket.records) == 1 {
		rec := bucket.records[0]
		return model.AggregatedEntry{
			Family:  family,
			Amount:  rec.Amount,
			Unit:    rec.Unit,
			Records: 1,
		}
	}

	unit := a.displayUnit(bucket)
	value, _ := a.units.FromBase(bucket.base, unit)
	return model.AggregatedEntry{
		Family:  family,
		Amount:  model.Number(value),
		Unit:    unit,
		Records: len(bucket.records),
	}
}

// displayUnit picks the unit the summed amount is shown in: the most
// common contributing unit, with ties broken toward a unit that renders
// the total as a whole number, then toward the smaller unit.
func (a *Aggregator) displayUnit(bucket *familyBucket) string {
	best := 0
	for _, n := range bucket.unitCount {
		if n > best {
			best = n
		}
	}
	var candidates []string
	for _, unit := range bucket.unitOrder {
		if bucket.unitCount[unit] == best {
			candidates = append(candidates, unit)
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	var integral []string
	for _, unit := range candidates {
		if v, ok := a.units.FromBase(bucket.base, unit); ok && isWhole(v) {
			integral = append(integral, unit)
		}
	}
	if len(integral) == 1 {
		return integral[0]
	}
	if len(integral) > 1 {
		candidates = integral
	}

	// Smaller unit wins: one teaspoon in base units is smaller than one
	// tablespoon.
	smallest := candidates[0]
	smallestFactor := math.MaxFloat64
	for _, unit := range candidates {
		if factor, ok := a.units.ToBase(1, unit); ok && factor < smallestFactor {
			smallest = unit
			smallestFactor = factor
		}
	}
	return smallest
}

// unitEntry renders a count/other bucket summed over one exact unit
// string.
func unitEntry(unit string, bucket *unitBucket) model.AggregatedEntry {
	if len(bucket.records) == 1 {
		return model.AggregatedEntry{
			Family:  bucket.family,
			Amount:  bucket.records[0].Amount,
			Unit:    unit,
			Records: 1,
		}
	}
	return model.AggregatedEntry{
		Family:  bucket.family,
		Amount:  model.Number(bucket.sum),
		Unit:    unit,
		Records: len(bucket.records),
	}
}

func isWhole(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}
