// Package loader ingests spectral files into a dataset.Dataset.
//
// Three backends sit behind one capability interface: a Parquet backend
// (list-typed x/y columns, arbitrary scalar metadata columns), a JSON
// record-array backend, and a CSV backend with semicolon-joined curve
// cells. The format is selected from the file extension; a trailing .gz,
// .zst or .lz4 extension is stripped and the input is decompressed first.
//
// Loading is fail-fast: the first structural or per-row error aborts the
// whole load and no partial dataset is returned. Errors are typed (see
// SchemaError, ParseError, LengthMismatchError, UnsupportedTypeError) and
// carry row/column/token context for the UI to surface.
package loader
