package filter

import (
	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// State holds the per-column selected-value sets. A column absent from the
// state imposes no constraint; a column with an empty set excludes every
// spectrum, which is a valid state rather than an error.
//
// State is owned and mutated by exactly one caller at a time.
type State struct {
	selected map[string]map[string]metadata.Value
}

// NewState returns a state with every unique value of every column
// selected, the configuration installed whenever a new dataset arrives.
func NewState(ds *dataset.Dataset) *State {
	s := &State{selected: make(map[string]map[string]metadata.Value, len(ds.ColumnNames))}
	s.Reset(ds)
	return s
}

// Reset re-initializes the state to all-selected for the given dataset.
func (s *State) Reset(ds *dataset.Dataset) {
	s.selected = make(map[string]map[string]metadata.Value, len(ds.ColumnNames))
	for _, col := range ds.ColumnNames {
		s.selectAllOf(ds, col)
	}
}

func (s *State) selectAllOf(ds *dataset.Dataset, column string) {
	values := ds.UniqueValues[column]
	set := make(map[string]metadata.Value, len(values))
	for _, v := range values {
		set[v.Key()] = v
	}
	s.selected[column] = set
}

// Toggle flips membership of value in the column's selected set. A column
// not yet present is initialized to all-selected first, so the first toggle
// of a fresh column deselects exactly that value. Toggling the same value
// twice restores the prior set.
//
// Toggle does not validate that value occurs in the column; a foreign value
// yields a set that simply never matches any extra row.
func (s *State) Toggle(ds *dataset.Dataset, column string, value metadata.Value) {
	set, ok := s.selected[column]
	if !ok {
		s.selectAllOf(ds, column)
		set = s.selected[column]
	}
	key := value.Key()
	if _, selected := set[key]; selected {
		delete(set, key)
	} else {
		set[key] = value
	}
}

// SelectAll selects every unique value of the column.
func (s *State) SelectAll(ds *dataset.Dataset, column string) {
	s.selectAllOf(ds, column)
}

// SelectNone empties the column's selected set, hiding every spectrum.
func (s *State) SelectNone(column string) {
	s.selected[column] = make(map[string]metadata.Value)
}

// IsSelected reports whether value is currently selected in the column.
// Columns absent from the state count as fully selected.
func (s *State) IsSelected(column string, value metadata.Value) bool {
	set, ok := s.selected[column]
	if !ok {
		return true
	}
	_, selected := set[value.Key()]
	return selected
}

// Selected returns the column's selected values sorted by the metadata
// total order, or nil if the column is unconstrained.
func (s *State) Selected(column string) []metadata.Value {
	set, ok := s.selected[column]
	if !ok {
		return nil
	}
	values := make([]metadata.Value, 0, len(set))
	for _, v := range set {
		values = append(values, v)
	}
	metadata.Sort(values)
	return values
}

// matches reports whether a spectrum's metadata satisfies every constrained
// column.
func (s *State) matches(doc metadata.Document) bool {
	for col, set := range s.selected {
		v, ok := doc[col]
		if !ok {
			return false
		}
		if _, selected := set[v.Key()]; !selected {
			return false
		}
	}
	return true
}

// VisibleIndices scans the dataset and returns, in ascending order, the
// indices of spectra passing every constrained column. With an all-selected
// state this is the identity sequence 0..len-1.
func VisibleIndices(ds *dataset.Dataset, s *State) []int {
	visible := make([]int, 0, ds.Len())
	for i := range ds.Spectra {
		if s.matches(ds.Spectra[i].Metadata) {
			visible = append(visible, i)
		}
	}
	return visible
}
