package loader

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// parquetBackend reads the columnar format. x and y must be List or
// LargeList columns with Float64 or Float32 values (both list encodings and
// both widths are accepted identically, matching files written by Pandas
// and Polars). Every other column is metadata and follows the coercion
// table in extractValue.
type parquetBackend struct {
	opts Options
}

func (b *parquetBackend) Format() Format { return FormatParquet }

func (b *parquetBackend) Parse(ctx context.Context, data []byte) (*dataset.Dataset, error) {
	pf, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading parquet footer: %w", err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: 1024}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("reading parquet schema: %w", err)
	}

	schema, err := fr.Schema()
	if err != nil {
		return nil, fmt.Errorf("reading parquet schema: %w", err)
	}

	xIdx, yIdx, columnNames, err := validateSchema(schema)
	if err != nil {
		return nil, err
	}

	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("building parquet record reader: %w", err)
	}
	defer rr.Release()

	var spectra []dataset.Spectrum
	base := 0
	for rr.Next() {
		rec := rr.Record()
		n := int(rec.NumRows())

		for row := 0; row < n; row++ {
			x, err := extractFloatList(rec.Column(xIdx), "x", base+row, row)
			if err != nil {
				return nil, err
			}
			y, err := extractFloatList(rec.Column(yIdx), "y", base+row, row)
			if err != nil {
				return nil, err
			}
			if len(x) != len(y) {
				return nil, &LengthMismatchError{Row: base + row, XLen: len(x), YLen: len(y)}
			}

			doc := make(metadata.Document, len(columnNames))
			for i, field := range rec.Schema().Fields() {
				if i == xIdx || i == yIdx {
					continue
				}
				v, err := extractValue(rec.Column(i), field.Name, row)
				if err != nil {
					return nil, err
				}
				doc[field.Name] = v
			}

			spectra = append(spectra, dataset.Spectrum{X: x, Y: y, Metadata: doc})
		}
		base += n
	}
	if err := rr.Err(); err != nil {
		return nil, fmt.Errorf("reading parquet record batch: %w", err)
	}

	return dataset.New(spectra, columnNames), nil
}

// validateSchema locates x and y, checks their list types, and checks every
// metadata column against the coercion table before any row is read.
func validateSchema(schema *arrow.Schema) (xIdx, yIdx int, columnNames []string, err error) {
	xIdx, yIdx = -1, -1
	for i, field := range schema.Fields() {
		switch field.Name {
		case "x":
			xIdx = i
		case "y":
			yIdx = i
		default:
			if !coercible(field.Type) {
				return 0, 0, nil, &UnsupportedTypeError{Column: field.Name, Kind: field.Type.String()}
			}
			columnNames = append(columnNames, field.Name)
		}
	}
	if xIdx < 0 {
		return 0, 0, nil, &SchemaError{Column: "x", Expected: "list<float64>", Found: "missing"}
	}
	if yIdx < 0 {
		return 0, 0, nil, &SchemaError{Column: "y", Expected: "list<float64>", Found: "missing"}
	}
	for _, idx := range []int{xIdx, yIdx} {
		field := schema.Field(idx)
		if !floatListType(field.Type) {
			return 0, 0, nil, &SchemaError{Column: field.Name, Expected: "list<float64>", Found: field.Type.String()}
		}
	}
	return xIdx, yIdx, columnNames, nil
}

// floatListType accepts List and LargeList of Float64 or Float32.
func floatListType(dt arrow.DataType) bool {
	var elem arrow.DataType
	switch t := dt.(type) {
	case *arrow.ListType:
		elem = t.Elem()
	case *arrow.LargeListType:
		elem = t.Elem()
	default:
		return false
	}
	switch elem.ID() {
	case arrow.FLOAT64, arrow.FLOAT32:
		return true
	default:
		return false
	}
}

// coercible reports whether a declared metadata type has a coercion rule:
// 32/64-bit ints widen to Int64, 32/64-bit floats to Float64, both string
// encodings become String, booleans Bool, and a null column is all Null.
func coercible(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.INT32, arrow.INT64, arrow.FLOAT32, arrow.FLOAT64,
		arrow.STRING, arrow.LARGE_STRING, arrow.BOOL, arrow.NULL:
		return true
	default:
		return false
	}
}

// extractFloatList reads one row of a List/LargeList float column. A null
// element inside the list becomes NaN; a null list cell is an error.
// row is the dataset-wide row used for error context; idx is the
// batch-local array index.
func extractFloatList(col arrow.Array, column string, row, idx int) ([]float64, error) {
	if col.IsNull(idx) {
		return nil, &ParseError{Row: row, Column: column, Token: "null", cause: fmt.Errorf("null value in list column")}
	}

	list, ok := col.(array.ListLike)
	if !ok {
		return nil, &SchemaError{Column: column, Expected: "list<float64>", Found: col.DataType().String()}
	}

	start, end := list.ValueOffsets(idx)
	values := list.ListValues()

	out := make([]float64, 0, end-start)
	switch vals := values.(type) {
	case *array.Float64:
		for j := start; j < end; j++ {
			if vals.IsNull(int(j)) {
				out = append(out, math.NaN())
				continue
			}
			out = append(out, vals.Value(int(j)))
		}
	case *array.Float32:
		for j := start; j < end; j++ {
			if vals.IsNull(int(j)) {
				out = append(out, math.NaN())
				continue
			}
			out = append(out, float64(vals.Value(int(j))))
		}
	default:
		return nil, &SchemaError{Column: column, Expected: "list<float64>", Found: col.DataType().String()}
	}
	return out, nil
}

// extractValue applies the metadata coercion table to one cell. A null
// entry at any row is Null regardless of the declared column type.
func extractValue(col arrow.Array, column string, row int) (metadata.Value, error) {
	if col.IsNull(row) {
		return metadata.Null(), nil
	}
	switch arr := col.(type) {
	case *array.Int32:
		return metadata.Int(int64(arr.Value(row))), nil
	case *array.Int64:
		return metadata.Int(arr.Value(row)), nil
	case *array.Float32:
		return metadata.Float(float64(arr.Value(row))), nil
	case *array.Float64:
		return metadata.Float(arr.Value(row)), nil
	case *array.String:
		return metadata.String(arr.Value(row)), nil
	case *array.LargeString:
		return metadata.String(arr.Value(row)), nil
	case *array.Boolean:
		return metadata.Bool(arr.Value(row)), nil
	case *array.Null:
		return metadata.Null(), nil
	default:
		return metadata.Value{}, &UnsupportedTypeError{Column: column, Kind: col.DataType().String()}
	}
}
