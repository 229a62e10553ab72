// Package filter derives the visible subset of a dataset from per-column
// value selections.
//
// A State holds, per metadata column, the set of values currently selected.
// Columns are AND-combined; values within one column's set are OR-combined.
// Visibility can be computed by a straight scan (VisibleIndices) or through
// an Index, a per-column roaring-bitmap inverted index built once per
// dataset; both produce identical, ascending index sequences.
package filter
