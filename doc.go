// Package spectrago normalizes heterogeneous spectral files into one
// in-memory model and derives the two things a plotting frontend needs:
// the ordered list of visible spectra under the current per-column filter
// selections, and a stable color for each value of a chosen metadata
// column.
//
// # Quick Start
//
//	ctx := context.Background()
//	session := spectrago.New()
//	if err := session.Load(ctx, "measurements.parquet"); err != nil {
//	    // structured error with row/column/token context
//	}
//
//	session.ToggleFilter("sample", metadata.String("Sample_B"))
//	for _, i := range session.VisibleIndices() {
//	    sp := session.Dataset().Spectra[i]
//	    color := session.ColorFor(sp.Metadata[session.ColorColumn()])
//	    // hand sp.X, sp.Y and color to the plot
//	}
//
// Supported inputs are Parquet (list-typed x/y columns), JSON record
// arrays, and CSV with semicolon-joined curve cells; a trailing .gz, .zst
// or .lz4 extension is decompressed transparently. Loading is fail-fast
// and a failed load leaves the previously installed dataset untouched.
//
// All operations are synchronous and run to completion; a Session is
// owned by a single caller and needs no locking.
package spectrago
