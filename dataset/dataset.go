package dataset

import (
	"math"

	"github.com/paucablop/spectrago/metadata"
)

// Spectrum is one record: a wavenumber axis, an intensity axis of the same
// length, and one typed metadata cell per declared column.
type Spectrum struct {
	// X is the wavenumber axis.
	X []float64
	// Y is the intensity axis, same length as X.
	Y []float64
	// Metadata maps column name to cell value. After New it contains an
	// entry for every column in the dataset schema.
	Metadata metadata.Document
}

// Dataset is the full ordered collection of spectra plus derived schema.
type Dataset struct {
	// Spectra in source-file order.
	Spectra []Spectrum
	// ColumnNames in declaration order (file schema order, never sorted).
	ColumnNames []string
	// UniqueValues holds, per column, the distinct cell values observed
	// across all spectra, sorted by the metadata total order. A column with
	// at least one null row includes an explicit Null entry.
	UniqueValues map[string][]metadata.Value
}

// New builds a Dataset from loaded spectra and the declared column order.
//
// Every spectrum's document is normalized to contain exactly the declared
// columns; a missing cell becomes Null. UniqueValues is derived here and
// stays consistent with Spectra because the Dataset is never mutated after
// construction.
func New(spectra []Spectrum, columnNames []string) *Dataset {
	normalized := make([]Spectrum, len(spectra))
	for i, sp := range spectra {
		doc := make(metadata.Document, len(columnNames))
		for _, col := range columnNames {
			v, ok := sp.Metadata[col]
			if !ok {
				v = metadata.Null()
			}
			doc[col] = v
		}
		normalized[i] = Spectrum{X: sp.X, Y: sp.Y, Metadata: doc}
	}

	unique := make(map[string][]metadata.Value, len(columnNames))
	for _, col := range columnNames {
		seen := make(map[string]metadata.Value)
		for i := range normalized {
			v := normalized[i].Metadata[col]
			seen[v.Key()] = v
		}
		values := make([]metadata.Value, 0, len(seen))
		for _, v := range seen {
			values = append(values, v)
		}
		metadata.Sort(values)
		unique[col] = values
	}

	return &Dataset{
		Spectra:      normalized,
		ColumnNames:  columnNames,
		UniqueValues: unique,
	}
}

// Len returns the number of spectra.
func (d *Dataset) Len() int { return len(d.Spectra) }

// HasColumn reports whether the dataset schema declares the column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.UniqueValues[name]
	return ok
}

// Points returns the total number of (x, y) points across all spectra.
func (d *Dataset) Points() int {
	n := 0
	for i := range d.Spectra {
		n += len(d.Spectra[i].X)
	}
	return n
}

// SemanticEqual reports whether two datasets encode the same logical
// records, ignoring physical encoding differences between source formats.
//
// Curves and numeric metadata compare within tol (text formats round-trip
// floats through decimal strings, and a JSON writer may emit 2.0 as the
// integer literal 2). Column order and record order must match exactly.
func SemanticEqual(a, b *Dataset, tol float64) bool {
	if a.Len() != b.Len() || len(a.ColumnNames) != len(b.ColumnNames) {
		return false
	}
	for i := range a.ColumnNames {
		if a.ColumnNames[i] != b.ColumnNames[i] {
			return false
		}
	}
	for i := range a.Spectra {
		sa, sb := &a.Spectra[i], &b.Spectra[i]
		if !floatsNear(sa.X, sb.X, tol) || !floatsNear(sa.Y, sb.Y, tol) {
			return false
		}
		for _, col := range a.ColumnNames {
			if !valuesNear(sa.Metadata[col], sb.Metadata[col], tol) {
				return false
			}
		}
	}
	return true
}

func floatsNear(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func valuesNear(a, b metadata.Value, tol float64) bool {
	if af, aok := a.Numeric(); aok {
		bf, bok := b.Numeric()
		return bok && math.Abs(af-bf) <= tol
	}
	return metadata.Equal(a, b)
}
