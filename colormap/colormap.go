// Package colormap assigns stable colors to the distinct values of one
// metadata column for visualization.
//
// Colors come from a hue wheel sampled at n equally spaced points
// (step 360°/n, starting hue 0°) at fixed saturation 0.75 and lightness
// 0.55, converted HSL→sRGB. Values are ordered by the metadata total order
// before assignment, so a given dataset and column always produce the same
// mapping.
package colormap

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// Palette constants. Any fixed values satisfy determinism; these are the
// ones the sample plots were tuned against.
const (
	paletteSaturation = 0.75
	paletteLightness  = 0.55
	paletteStartHue   = 0.0
)

// RGB is an 8-bit-per-channel color triple.
type RGB struct {
	R, G, B uint8
}

// Hex returns the #rrggbb form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Neutral is the fallback color returned for values missing from a map,
// e.g. lookups against a stale map after a dataset swap.
var Neutral = RGB{R: 160, G: 160, B: 160}

// Entry pairs a metadata value with its assigned color, in sorted-value
// order.
type Entry struct {
	Value metadata.Value
	Color RGB
}

// Map is the deterministic value→color assignment for one column.
type Map struct {
	// Column is the metadata column driving the assignment.
	Column string

	entries []Entry
	colors  map[string]RGB
}

// Build assigns each unique value of the column a palette color, in
// total-order position. Two calls with the same dataset and column return
// bit-identical assignments; distinct values always receive distinct
// colors.
func Build(ds *dataset.Dataset, column string) (*Map, error) {
	values, ok := ds.UniqueValues[column]
	if !ok {
		return nil, fmt.Errorf("unknown metadata column %q", column)
	}

	palette := generatePalette(len(values))
	m := &Map{
		Column:  column,
		entries: make([]Entry, len(values)),
		colors:  make(map[string]RGB, len(values)),
	}
	for i, v := range values {
		m.entries[i] = Entry{Value: v, Color: palette[i]}
		m.colors[v.Key()] = palette[i]
	}
	return m, nil
}

// Lookup returns the color assigned to value, or a neutral gray when the
// value is absent from the map.
func (m *Map) Lookup(value metadata.Value) RGB {
	if c, ok := m.colors[value.Key()]; ok {
		return c
	}
	return Neutral
}

// Legend returns the value/color pairs in sorted-value order for the UI.
func (m *Map) Legend() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of mapped values.
func (m *Map) Len() int { return len(m.entries) }

// generatePalette samples n evenly spaced hues on the fixed
// saturation/lightness ring.
func generatePalette(n int) []RGB {
	if n == 0 {
		return nil
	}
	palette := make([]RGB, n)
	for i := range palette {
		hue := paletteStartHue + float64(i)/float64(n)*360.0
		r, g, b := colorful.Hsl(hue, paletteSaturation, paletteLightness).RGB255()
		palette[i] = RGB{R: r, G: g, B: b}
	}
	return palette
}
