package dataset

import (
	"testing"

	"github.com/paucablop/spectrago/metadata"
)

func sample() *Dataset {
	return New([]Spectrum{
		{
			X:        []float64{1, 2, 3},
			Y:        []float64{0.1, 0.2, 0.3},
			Metadata: metadata.Document{"sample": metadata.String("A"), "scan": metadata.Int(1)},
		},
		{
			X:        []float64{1, 2, 3},
			Y:        []float64{0.4, 0.5, 0.6},
			Metadata: metadata.Document{"sample": metadata.String("B")},
		},
		{
			X:        []float64{1, 2, 3},
			Y:        []float64{0.7, 0.8, 0.9},
			Metadata: metadata.Document{"sample": metadata.String("A"), "scan": metadata.Int(2)},
		},
	}, []string{"sample", "scan"})
}

func TestNewDerivesUniqueValues(t *testing.T) {
	ds := sample()

	want := map[string][]metadata.Value{
		"sample": {metadata.String("A"), metadata.String("B")},
		"scan":   {metadata.Null(), metadata.Int(1), metadata.Int(2)},
	}
	for col, wantVals := range want {
		got := ds.UniqueValues[col]
		if len(got) != len(wantVals) {
			t.Fatalf("UniqueValues[%q] = %v, want %v", col, got, wantVals)
		}
		for i := range wantVals {
			if !metadata.Equal(got[i], wantVals[i]) {
				t.Errorf("UniqueValues[%q][%d] = %v, want %v", col, i, got[i], wantVals[i])
			}
		}
	}
}

func TestNewNormalizesMissingCells(t *testing.T) {
	ds := sample()
	if v := ds.Spectra[1].Metadata["scan"]; !v.IsNull() {
		t.Errorf("missing cell = %v, want Null", v)
	}
	for i, sp := range ds.Spectra {
		if len(sp.Metadata) != len(ds.ColumnNames) {
			t.Errorf("spectrum %d has %d metadata keys, want %d", i, len(sp.Metadata), len(ds.ColumnNames))
		}
	}
}

func TestColumnOrderPreserved(t *testing.T) {
	// "sample" declared before "scan"; alphabetical would reverse them.
	ds := New(nil, []string{"zeta", "alpha"})
	if ds.ColumnNames[0] != "zeta" || ds.ColumnNames[1] != "alpha" {
		t.Errorf("ColumnNames = %v, want declaration order", ds.ColumnNames)
	}
}

func TestSemanticEqual(t *testing.T) {
	a := sample()
	b := sample()
	if !SemanticEqual(a, b, 1e-9) {
		t.Error("identical datasets must be semantically equal")
	}

	// Int/Float kind differences inside the tolerance are semantic matches.
	c := New([]Spectrum{{
		X:        []float64{1},
		Y:        []float64{2},
		Metadata: metadata.Document{"v": metadata.Int(2)},
	}}, []string{"v"})
	d := New([]Spectrum{{
		X:        []float64{1},
		Y:        []float64{2.0000000001},
		Metadata: metadata.Document{"v": metadata.Float(2.0)},
	}}, []string{"v"})
	if !SemanticEqual(c, d, 1e-6) {
		t.Error("numeric kinds within tolerance must compare equal")
	}
	if SemanticEqual(c, d, 1e-12) {
		t.Error("curve difference beyond tolerance must not compare equal")
	}
}

func TestLenAndPoints(t *testing.T) {
	ds := sample()
	if ds.Len() != 3 {
		t.Errorf("Len = %d, want 3", ds.Len())
	}
	if ds.Points() != 9 {
		t.Errorf("Points = %d, want 9", ds.Points())
	}
	if !ds.HasColumn("scan") || ds.HasColumn("missing") {
		t.Error("HasColumn misreports")
	}
}
