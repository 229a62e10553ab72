package spectrago

import (
	"context"
	"runtime"

	"github.com/paucablop/spectrago/colormap"
	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/filter"
	"github.com/paucablop/spectrago/loader"
	"github.com/paucablop/spectrago/metadata"
)

// Session is the explicit context owning one dataset and its derived
// interactive state: filter selections, the filter index, the cached
// visible-index list, and the color map for the chosen column.
//
// A Session is owned and driven by exactly one caller (the UI loop); all
// methods are synchronous and none are safe for concurrent use.
type Session struct {
	opts   options
	logger *Logger

	dataset     *dataset.Dataset
	filters     *filter.State
	index       *filter.Index
	visible     []int
	colorColumn string
	colors      *colormap.Map
}

// New creates an empty session.
func New(optFns ...Option) *Session {
	opts := options{
		logger:      NoopLogger(),
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = NoopLogger()
	}
	return &Session{opts: opts, logger: opts.logger}
}

// Load reads a spectral file and installs it as the session dataset,
// replacing any prior dataset wholesale. On success the filter state is
// reset to all-selected, the filter index and visible indices are rebuilt,
// and the first metadata column becomes the color column. On failure the
// session keeps its previous dataset and derived state untouched.
func (s *Session) Load(ctx context.Context, path string) error {
	ds, err := loader.Load(ctx, path, loader.WithParallelism(s.opts.parallelism))
	if err != nil {
		s.logger.LogLoad(ctx, path, 0, err)
		return err
	}
	s.logger.LogLoad(ctx, path, ds.Len(), nil)
	s.install(ctx, ds)
	return nil
}

// LoadBytes parses raw bytes with an explicit format hint and installs the
// result, with the same semantics as Load.
func (s *Session) LoadBytes(ctx context.Context, data []byte, format loader.Format) error {
	ds, err := loader.Parse(ctx, data, format, loader.WithParallelism(s.opts.parallelism))
	if err != nil {
		return err
	}
	s.install(ctx, ds)
	return nil
}

func (s *Session) install(ctx context.Context, ds *dataset.Dataset) {
	s.dataset = ds
	s.filters = filter.NewState(ds)
	s.index = filter.NewIndex(ds)
	s.visible = identity(ds.Len())

	s.colorColumn = ""
	s.colors = nil
	if len(ds.ColumnNames) > 0 {
		s.colorColumn = ds.ColumnNames[0]
		s.rebuildColors(ctx)
	}
}

// Dataset returns the installed dataset, or nil before the first load.
func (s *Session) Dataset() *dataset.Dataset { return s.dataset }

// VisibleIndices returns the indices of spectra passing the current
// filters, in ascending dataset order. The slice is owned by the session
// and valid until the next mutation.
func (s *Session) VisibleIndices() []int { return s.visible }

// ToggleFilter flips one value in one column's selected set and recomputes
// the visible indices. It is a no-op before the first load.
func (s *Session) ToggleFilter(column string, value metadata.Value) {
	if s.dataset == nil {
		return
	}
	s.filters.Toggle(s.dataset, column, value)
	s.refilter(context.Background(), column)
}

// SelectAll selects every value of the column and recomputes visibility.
func (s *Session) SelectAll(column string) {
	if s.dataset == nil {
		return
	}
	s.filters.SelectAll(s.dataset, column)
	s.refilter(context.Background(), column)
}

// SelectNone deselects every value of the column, hiding all spectra.
func (s *Session) SelectNone(column string) {
	if s.dataset == nil {
		return
	}
	s.filters.SelectNone(column)
	s.refilter(context.Background(), column)
}

// ResetFilters restores the all-selected state for every column.
func (s *Session) ResetFilters() {
	if s.dataset == nil {
		return
	}
	s.filters.Reset(s.dataset)
	s.visible = identity(s.dataset.Len())
}

// Filters returns the session's filter state for read access by the UI
// (e.g. rendering checkboxes).
func (s *Session) Filters() *filter.State { return s.filters }

func (s *Session) refilter(ctx context.Context, column string) {
	s.visible = s.index.VisibleIndices(s.filters)
	s.logger.LogFilter(ctx, column, len(s.visible), s.dataset.Len())
}

// SetColorColumn switches the column driving colors and rebuilds the map.
func (s *Session) SetColorColumn(column string) error {
	if s.dataset == nil {
		return ErrNoDataset
	}
	if !s.dataset.HasColumn(column) {
		return ErrUnknownColumn
	}
	s.colorColumn = column
	s.rebuildColors(context.Background())
	return nil
}

// ColorColumn returns the metadata column currently driving colors.
func (s *Session) ColorColumn() string { return s.colorColumn }

// ColorMap returns the active color map, or nil when no dataset or no
// metadata column is available.
func (s *Session) ColorMap() *colormap.Map { return s.colors }

// ColorFor returns the color for a metadata value under the active map,
// falling back to the neutral color when no map is active.
func (s *Session) ColorFor(value metadata.Value) colormap.RGB {
	if s.colors == nil {
		return colormap.Neutral
	}
	return s.colors.Lookup(value)
}

func (s *Session) rebuildColors(ctx context.Context) {
	m, err := colormap.Build(s.dataset, s.colorColumn)
	if err != nil {
		// Column existence is checked before rebuilds; a stale column after
		// a dataset swap degrades to the neutral color.
		s.colors = nil
		return
	}
	s.colors = m
	s.logger.LogColorMap(ctx, s.colorColumn, m.Len())
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
