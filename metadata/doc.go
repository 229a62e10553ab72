// Package metadata provides the typed scalar values attached to spectra.
//
// Every non-curve column of a loaded file is represented as a Value, a small
// tagged union over null, bool, int64, float64 and string. Values carry a
// defined total order (see Compare) so they can be sorted for palette
// assignment and kept in ordered unique-value sets, and a stable Key() so
// they can index maps even when the payload is a NaN float.
package metadata
