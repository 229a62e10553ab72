package colormap

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

func fiveValueDataset() *dataset.Dataset {
	names := []string{"a", "b", "c", "d", "e"}
	spectra := make([]dataset.Spectrum, len(names))
	for i, n := range names {
		spectra[i] = dataset.Spectrum{
			X:        []float64{1},
			Y:        []float64{1},
			Metadata: metadata.Document{"sample": metadata.String(n)},
		}
	}
	return dataset.New(spectra, []string{"sample"})
}

func TestBuildDeterministic(t *testing.T) {
	ds := fiveValueDataset()
	a, err := Build(ds, "sample")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(ds, "sample")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range a.Legend() {
		if got := b.Lookup(e.Value); got != e.Color {
			t.Errorf("color for %v differs across builds: %v vs %v", e.Value, e.Color, got)
		}
	}
}

func TestDistinctColors(t *testing.T) {
	ds := fiveValueDataset()
	m, err := Build(ds, "sample")
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[RGB]metadata.Value)
	for _, e := range m.Legend() {
		if prev, dup := seen[e.Color]; dup {
			t.Errorf("values %v and %v share color %v", prev, e.Value, e.Color)
		}
		seen[e.Color] = e.Value
	}
}

func TestHueSpacing(t *testing.T) {
	ds := fiveValueDataset()
	m, err := Build(ds, "sample")
	if err != nil {
		t.Fatal(err)
	}
	legend := m.Legend()
	if len(legend) != 5 {
		t.Fatalf("legend has %d entries, want 5", len(legend))
	}

	hues := make([]float64, len(legend))
	for i, e := range legend {
		c := colorful.Color{
			R: float64(e.Color.R) / 255.0,
			G: float64(e.Color.G) / 255.0,
			B: float64(e.Color.B) / 255.0,
		}
		hues[i], _, _ = c.Hsl()
	}
	// 5 values on the wheel: neighbors sit 72 degrees apart, within 8-bit
	// quantization error.
	for i := 1; i < len(hues); i++ {
		step := math.Mod(hues[i]-hues[i-1]+360.0, 360.0)
		if math.Abs(step-72.0) > 2.0 {
			t.Errorf("hue step %d = %.2f, want 72", i, step)
		}
	}
}

func TestLookupFallback(t *testing.T) {
	ds := fiveValueDataset()
	m, err := Build(ds, "sample")
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Lookup(metadata.String("missing")); got != Neutral {
		t.Errorf("unknown value = %v, want fallback %v", got, Neutral)
	}
}

func TestBuildUnknownColumn(t *testing.T) {
	ds := fiveValueDataset()
	if _, err := Build(ds, "nope"); err == nil {
		t.Error("Build must fail on an unknown column")
	}
}

func TestAssignmentFollowsTotalOrder(t *testing.T) {
	// Null, bool, numeric, string columns all sort before assignment, so
	// the first palette slot goes to the smallest value.
	spectra := []dataset.Spectrum{
		{X: []float64{1}, Y: []float64{1}, Metadata: metadata.Document{"v": metadata.String("z")}},
		{X: []float64{1}, Y: []float64{1}, Metadata: metadata.Document{"v": metadata.Null()}},
		{X: []float64{1}, Y: []float64{1}, Metadata: metadata.Document{"v": metadata.Int(4)}},
	}
	ds := dataset.New(spectra, []string{"v"})
	m, err := Build(ds, "v")
	if err != nil {
		t.Fatal(err)
	}
	legend := m.Legend()
	if !legend[0].Value.IsNull() {
		t.Errorf("first legend entry = %v, want Null", legend[0].Value)
	}
	if s, _ := legend[2].Value.AsString(); s != "z" {
		t.Errorf("last legend entry = %v, want String(z)", legend[2].Value)
	}
}
