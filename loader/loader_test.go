package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/testutil"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path        string
		format      Format
		compression string
		wantErr     bool
	}{
		{path: "run.parquet", format: FormatParquet},
		{path: "run.pq", format: FormatParquet},
		{path: "run.json", format: FormatJSON},
		{path: "run.csv", format: FormatCSV},
		{path: "RUN.CSV", format: FormatCSV},
		{path: "/data/2024/run.csv.gz", format: FormatCSV, compression: "gz"},
		{path: "run.json.zst", format: FormatJSON, compression: "zst"},
		{path: "run.parquet.lz4", format: FormatParquet, compression: "lz4"},
		{path: "run.xlsx", wantErr: true},
		{path: "run", wantErr: true},
		{path: "run.gz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, compression, err := FormatForPath(tt.path)
			if tt.wantErr {
				var unknown *UnknownFormatError
				require.ErrorAs(t, err, &unknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.compression, compression)
		})
	}
}

// All three formats must load the same generated dataset to the same logical
// records. Text formats round floats through decimal strings and JSON reads
// whole-valued floats back as ints, so comparison is semantic.
func TestFormatEquivalence(t *testing.T) {
	want := testutil.GenerateDataset(testutil.DefaultGenOptions())

	encoders := map[Format]func() ([]byte, error){
		FormatCSV:  func() ([]byte, error) { return testutil.EncodeCSV(want) },
		FormatJSON: func() ([]byte, error) { return testutil.EncodeJSON(want) },
		FormatParquet: func() ([]byte, error) {
			return testutil.EncodeParquet(want, false)
		},
	}

	for format, encode := range encoders {
		t.Run(string(format), func(t *testing.T) {
			data, err := encode()
			require.NoError(t, err)

			got, err := Parse(context.Background(), data, format)
			require.NoError(t, err)
			assert.True(t, dataset.SemanticEqual(want, got, 1e-9))
		})
	}
}

func TestLoadCompressed(t *testing.T) {
	ds := testutil.GenerateDataset(testutil.DefaultGenOptions())
	raw, err := testutil.EncodeCSV(ds)
	require.NoError(t, err)

	compressors := map[string]func(*bytes.Buffer) error{
		"sample.csv.gz": func(buf *bytes.Buffer) error {
			w := gzip.NewWriter(buf)
			if _, err := w.Write(raw); err != nil {
				return err
			}
			return w.Close()
		},
		"sample.csv.zst": func(buf *bytes.Buffer) error {
			w, err := zstd.NewWriter(buf)
			if err != nil {
				return err
			}
			if _, err := w.Write(raw); err != nil {
				return err
			}
			return w.Close()
		},
		"sample.csv.lz4": func(buf *bytes.Buffer) error {
			w := lz4.NewWriter(buf)
			if _, err := w.Write(raw); err != nil {
				return err
			}
			return w.Close()
		},
	}

	dir := t.TempDir()
	for name, compress := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, compress(&buf))
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			got, err := Load(context.Background(), path)
			require.NoError(t, err)
			assert.True(t, dataset.SemanticEqual(ds, got, 1e-9))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestLoadCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("definitely not gzip"), 0o644))
	_, err := Load(context.Background(), path)
	require.Error(t, err)
}

func TestParseUnknownFormat(t *testing.T) {
	var unknown *UnknownFormatError
	_, err := Parse(context.Background(), nil, Format("xml"))
	require.ErrorAs(t, err, &unknown)
}
