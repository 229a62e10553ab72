// Package dataset holds the normalized in-memory model produced by the
// loader: spectra (paired wavenumber/intensity curves plus metadata), the
// declared column order, and the derived per-column unique-value sets.
//
// A Dataset is immutable once built. Consumers (the filter engine, the
// color mapper, the UI) read it freely without synchronization.
package dataset
