// Package aggregate combines ingredient records from many recipes into
// shopping-list lines.
//
// Records group by item name and then partition by unit family; only
// compatible units are summed. Volume and weight sum in their base unit
// (teaspoons, ounces) and display in the most common contributing unit.
// Count units and unrecognized units merge only on identical unit
// strings. Informal no-amount records ("a pinch") deduplicate to a
// single line instead of pretending to sum. One item can therefore emit
// several entries; nothing is ever silently dropped or double-counted.
package aggregate
