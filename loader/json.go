package loader

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// jsonBackend parses a top-level array of record objects. Each record must
// carry x and y as numeric arrays of equal length; every other key becomes
// a metadata column. The schema is the union of keys across all records in
// first-observed order.
type jsonBackend struct {
	opts Options
}

func (b *jsonBackend) Format() Format { return FormatJSON }

func (b *jsonBackend) Parse(ctx context.Context, data []byte) (*dataset.Dataset, error) {
	var records []gojson.RawMessage
	if err := gojson.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing json: expected a top-level array of objects: %w", err)
	}

	// Records have no cross-record dependencies, so parsing fans out over a
	// bounded pool. Results land at their input index, preserving order.
	spectra := make([]dataset.Spectrum, len(records))
	keyOrders := make([][]string, len(records))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Parallelism)
	for i := range records {
		g.Go(func() error {
			sp, keys, err := parseJSONRecord(i, records[i])
			if err != nil {
				return err
			}
			spectra[i] = sp
			keyOrders[i] = keys
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var columnNames []string
	seen := make(map[string]struct{})
	for _, keys := range keyOrders {
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columnNames = append(columnNames, key)
		}
	}

	return dataset.New(spectra, columnNames), nil
}

// parseJSONRecord decodes one record object with a token stream so the
// metadata key order is observed, not alphabetized.
func parseJSONRecord(row int, raw gojson.RawMessage) (dataset.Spectrum, []string, error) {
	var sp dataset.Spectrum

	dec := gojson.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return sp, nil, &ParseError{Row: row, Token: snippet(raw), cause: err}
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return sp, nil, &ParseError{Row: row, Token: snippet(raw), cause: fmt.Errorf("record is not a JSON object")}
	}

	var (
		keys []string
		hasX bool
		hasY bool
		doc  = make(metadata.Document)
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return sp, nil, &ParseError{Row: row, Token: snippet(raw), cause: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return sp, nil, &ParseError{Row: row, Token: fmt.Sprint(keyTok), cause: fmt.Errorf("object key is not a string")}
		}

		var value gojson.RawMessage
		if err := dec.Decode(&value); err != nil {
			return sp, nil, &ParseError{Row: row, Column: key, Token: snippet(raw), cause: err}
		}

		switch key {
		case "x":
			hasX = true
			if sp.X, err = parseNumberArray(row, key, value); err != nil {
				return sp, nil, err
			}
		case "y":
			hasY = true
			if sp.Y, err = parseNumberArray(row, key, value); err != nil {
				return sp, nil, err
			}
		default:
			v, err := literalToValue(row, key, value)
			if err != nil {
				return sp, nil, err
			}
			doc[key] = v
			keys = append(keys, key)
		}
	}

	if !hasX {
		return sp, nil, &SchemaError{Column: "x", Expected: "array of numbers", Found: "missing"}
	}
	if !hasY {
		return sp, nil, &SchemaError{Column: "y", Expected: "array of numbers", Found: "missing"}
	}
	if len(sp.X) != len(sp.Y) {
		return sp, nil, &LengthMismatchError{Row: row, XLen: len(sp.X), YLen: len(sp.Y)}
	}

	sp.Metadata = doc
	return sp, keys, nil
}

func parseNumberArray(row int, column string, raw gojson.RawMessage) ([]float64, error) {
	var values []float64
	if err := gojson.Unmarshal(raw, &values); err != nil {
		return nil, &ParseError{Row: row, Column: column, Token: snippet(raw), cause: err}
	}
	return values, nil
}

// literalToValue types a metadata cell by the shape of its JSON literal:
// string, boolean, null, integral number, or fractional number. Nested
// arrays and objects have no scalar coercion.
func literalToValue(row int, column string, raw gojson.RawMessage) (metadata.Value, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return metadata.Value{}, &ParseError{Row: row, Column: column, Token: text}
	}
	switch text[0] {
	case '"':
		var s string
		if err := gojson.Unmarshal(raw, &s); err != nil {
			return metadata.Value{}, &ParseError{Row: row, Column: column, Token: snippet(raw), cause: err}
		}
		return metadata.String(s), nil
	case 't', 'f':
		var b bool
		if err := gojson.Unmarshal(raw, &b); err != nil {
			return metadata.Value{}, &ParseError{Row: row, Column: column, Token: snippet(raw), cause: err}
		}
		return metadata.Bool(b), nil
	case 'n':
		return metadata.Null(), nil
	case '[', '{':
		return metadata.Value{}, &ParseError{Row: row, Column: column, Token: snippet(raw), cause: fmt.Errorf("nested values are not scalar metadata")}
	default:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return metadata.Int(n), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return metadata.Value{}, &ParseError{Row: row, Column: column, Token: text, cause: err}
		}
		return metadata.Float(f), nil
	}
}

func snippet(raw []byte) string {
	const max = 40
	s := string(raw)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
