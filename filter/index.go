package filter

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/paucablop/spectrago/dataset"
)

// Index is a per-column inverted index mapping each metadata value to the
// bitmap of rows holding it. It is built once per dataset and makes
// visibility recomputation proportional to the selection size rather than
// the dataset size.
type Index struct {
	columns map[string]map[string]*roaring.Bitmap
	all     *roaring.Bitmap
}

// NewIndex builds the inverted index for a dataset.
func NewIndex(ds *dataset.Dataset) *Index {
	ix := &Index{
		columns: make(map[string]map[string]*roaring.Bitmap, len(ds.ColumnNames)),
		all:     roaring.New(),
	}
	for _, col := range ds.ColumnNames {
		ix.columns[col] = make(map[string]*roaring.Bitmap)
	}
	for i := range ds.Spectra {
		ix.all.Add(uint32(i))
		for _, col := range ds.ColumnNames {
			key := ds.Spectra[i].Metadata[col].Key()
			postings := ix.columns[col]
			bm, ok := postings[key]
			if !ok {
				bm = roaring.New()
				postings[key] = bm
			}
			bm.Add(uint32(i))
		}
	}
	return ix
}

// VisibleIndices intersects, across constrained columns, the union of the
// selected values' row bitmaps. The result is ascending and identical to
// the scan-based VisibleIndices.
func (ix *Index) VisibleIndices(s *State) []int {
	visible := ix.all.Clone()
	for col, set := range s.selected {
		postings, ok := ix.columns[col]
		if !ok {
			// Constrained column unknown to the dataset: nothing matches.
			return []int{}
		}
		union := roaring.New()
		for key := range set {
			if bm, ok := postings[key]; ok {
				union.Or(bm)
			}
		}
		visible.And(union)
		if visible.IsEmpty() {
			break
		}
	}

	out := make([]int, 0, visible.GetCardinality())
	it := visible.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}
