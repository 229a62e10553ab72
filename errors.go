package spectrago

import "errors"

var (
	// ErrNoDataset is returned by operations that need a loaded dataset.
	ErrNoDataset = errors.New("no dataset loaded")

	// ErrUnknownColumn is returned when a column name is not part of the
	// current dataset's schema.
	ErrUnknownColumn = errors.New("unknown metadata column")
)
