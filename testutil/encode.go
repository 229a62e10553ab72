package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	gojson "github.com/goccy/go-json"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// EncodeCSV writes the dataset in the delimited-text format: header row,
// x/y cells as semicolon-joined floats, metadata cells as plain scalars
// (nulls as empty cells).
func EncodeCSV(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"x", "y"}, ds.ColumnNames...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range ds.Spectra {
		sp := &ds.Spectra[i]
		record := make([]string, 0, len(header))
		record = append(record, joinFloats(sp.X), joinFloats(sp.Y))
		for _, col := range ds.ColumnNames {
			record = append(record, csvCell(sp.Metadata[col]))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func joinFloats(values []float64) string {
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(tokens, ";")
}

func csvCell(v metadata.Value) string {
	switch v.Kind {
	case metadata.KindBool:
		return strconv.FormatBool(v.B)
	case metadata.KindInt:
		return strconv.FormatInt(v.I64, 10)
	case metadata.KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case metadata.KindString:
		return v.StringValue()
	default:
		return ""
	}
}

// EncodeJSON writes the dataset as a top-level array of record objects,
// emitting metadata keys in schema order so the column order survives a
// round trip.
func EncodeJSON(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := range ds.Spectra {
		if i > 0 {
			buf.WriteByte(',')
		}
		sp := &ds.Spectra[i]
		buf.WriteString(`{"x":`)
		if err := appendJSON(&buf, sp.X); err != nil {
			return nil, err
		}
		buf.WriteString(`,"y":`)
		if err := appendJSON(&buf, sp.Y); err != nil {
			return nil, err
		}
		for _, col := range ds.ColumnNames {
			buf.WriteByte(',')
			if err := appendJSON(&buf, col); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := appendJSON(&buf, valueToAny(sp.Metadata[col])); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v any) error {
	b, err := gojson.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func valueToAny(v metadata.Value) any {
	switch v.Kind {
	case metadata.KindBool:
		return v.B
	case metadata.KindInt:
		return v.I64
	case metadata.KindFloat:
		return v.F64
	case metadata.KindString:
		return v.StringValue()
	default:
		return nil
	}
}

// EncodeParquet writes the dataset as a parquet file with list-typed x/y
// columns. With largeOffsets set, x/y use LargeList and strings LargeUtf8,
// exercising the large-offset encodings the loader must accept identically.
func EncodeParquet(ds *dataset.Dataset, largeOffsets bool) ([]byte, error) {
	var listType arrow.DataType = arrow.ListOf(arrow.PrimitiveTypes.Float64)
	if largeOffsets {
		listType = arrow.LargeListOf(arrow.PrimitiveTypes.Float64)
	}

	fields := []arrow.Field{
		{Name: "x", Type: listType},
		{Name: "y", Type: listType},
	}
	for _, col := range ds.ColumnNames {
		dt, err := columnType(ds.UniqueValues[col], largeOffsets)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		fields = append(fields, arrow.Field{Name: col, Type: dt, Nullable: true})
	}
	schema := arrow.NewSchema(fields, nil)

	bldr := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bldr.Release()

	for i := range ds.Spectra {
		sp := &ds.Spectra[i]
		appendFloatList(bldr.Field(0), sp.X)
		appendFloatList(bldr.Field(1), sp.Y)
		for j, col := range ds.ColumnNames {
			if err := appendValue(bldr.Field(2+j), sp.Metadata[col]); err != nil {
				return nil, fmt.Errorf("column %q: %w", col, err)
			}
		}
	}

	rec := bldr.NewRecord()
	defer rec.Release()
	table := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer table.Release()

	chunkSize := int64(ds.Len())
	if chunkSize == 0 {
		chunkSize = 1
	}

	var buf bytes.Buffer
	if err := pqarrow.WriteTable(table, &buf, chunkSize, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// columnType picks the arrow type for a metadata column from its observed
// values. Columns are single-kind by construction; an all-null column maps
// to the arrow null type.
func columnType(values []metadata.Value, largeOffsets bool) (arrow.DataType, error) {
	kind := metadata.KindInvalid
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		if kind == metadata.KindInvalid {
			kind = v.Kind
			continue
		}
		if kind != v.Kind {
			return nil, fmt.Errorf("mixed kinds %s and %s", kind, v.Kind)
		}
	}
	switch kind {
	case metadata.KindInvalid:
		return arrow.Null, nil
	case metadata.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case metadata.KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case metadata.KindFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case metadata.KindString:
		if largeOffsets {
			return arrow.BinaryTypes.LargeString, nil
		}
		return arrow.BinaryTypes.String, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func appendFloatList(b array.Builder, values []float64) {
	lb := b.(array.ListLikeBuilder)
	vb := lb.ValueBuilder().(*array.Float64Builder)
	lb.Append(true)
	vb.AppendValues(values, nil)
}

func appendValue(b array.Builder, v metadata.Value) error {
	if v.IsNull() {
		b.AppendNull()
		return nil
	}
	switch bldr := b.(type) {
	case *array.BooleanBuilder:
		bldr.Append(v.B)
	case *array.Int64Builder:
		bldr.Append(v.I64)
	case *array.Float64Builder:
		bldr.Append(v.F64)
	case *array.StringBuilder:
		bldr.Append(v.StringValue())
	case *array.LargeStringBuilder:
		bldr.Append(v.StringValue())
	default:
		return fmt.Errorf("no builder for value %v", v)
	}
	return nil
}
