package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/paucablop/spectrago/dataset"
)

// Format identifies a loader backend.
type Format string

const (
	// FormatParquet is the columnar backend (.parquet, .pq).
	FormatParquet Format = "parquet"
	// FormatJSON is the record-array backend (.json).
	FormatJSON Format = "json"
	// FormatCSV is the delimited-text backend (.csv).
	FormatCSV Format = "csv"
)

// Backend parses raw input bytes into a Dataset. Each format is an
// independent implementation of this one capability.
type Backend interface {
	Format() Format
	Parse(ctx context.Context, data []byte) (*dataset.Dataset, error)
}

// Options configures load behavior.
type Options struct {
	// Parallelism bounds the worker pool used for per-record parsing in
	// backends that support it. Records have no cross-record dependencies;
	// results are always collected back into input order.
	Parallelism int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Parallelism: runtime.GOMAXPROCS(0)}
}

func applyOptions(optFns []func(*Options)) Options {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return opts
}

// ForFormat returns the backend for a format.
func ForFormat(format Format, opts Options) (Backend, error) {
	switch format {
	case FormatParquet:
		return &parquetBackend{opts: opts}, nil
	case FormatJSON:
		return &jsonBackend{opts: opts}, nil
	case FormatCSV:
		return &csvBackend{opts: opts}, nil
	default:
		return nil, &UnknownFormatError{Ext: string(format)}
	}
}

// FormatForPath derives the backend format and optional compression from a
// file path. A trailing compression extension (.gz, .zst, .lz4) is stripped
// before the format extension is inspected, so "run.csv.gz" loads as CSV.
func FormatForPath(path string) (Format, string, error) {
	name := path
	compression := ""

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz", ".zst", ".lz4":
		compression = strings.TrimPrefix(ext, ".")
		name = strings.TrimSuffix(name, ext)
		ext = strings.ToLower(filepath.Ext(name))
	}

	switch ext {
	case ".parquet", ".pq":
		return FormatParquet, compression, nil
	case ".json":
		return FormatJSON, compression, nil
	case ".csv":
		return FormatCSV, compression, nil
	default:
		return "", "", &UnknownFormatError{Ext: ext}
	}
}

// Load reads a spectral file and parses it with the backend selected from
// its extension. It returns a freshly owned Dataset or the first error
// encountered; a failed load never returns a partial Dataset.
func Load(ctx context.Context, path string, optFns ...func(*Options)) (*dataset.Dataset, error) {
	format, compression, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if compression != "" {
		data, err = decompress(data, compression)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}

	return Parse(ctx, data, format, optFns...)
}

// Parse parses raw bytes with the backend selected by the format hint.
func Parse(ctx context.Context, data []byte, format Format, optFns ...func(*Options)) (*dataset.Dataset, error) {
	backend, err := ForFormat(format, applyOptions(optFns))
	if err != nil {
		return nil, err
	}
	return backend.Parse(ctx, data)
}

// WithParallelism bounds the per-record parse worker pool.
func WithParallelism(n int) func(*Options) {
	return func(o *Options) {
		o.Parallelism = n
	}
}

func decompress(data []byte, compression string) ([]byte, error) {
	switch compression {
	case "gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case "zst":
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case "lz4":
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("unknown compression %q", compression)
	}
}
