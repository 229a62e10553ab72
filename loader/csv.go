package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paucablop/spectrago/dataset"
	"github.com/paucablop/spectrago/metadata"
)

// csvBackend parses delimited text. The header row declares column names in
// file order; the x and y cells hold their float sequences joined by a
// semicolon, which is reserved and never appears inside a numeric token.
type csvBackend struct {
	opts Options
}

func (b *csvBackend) Format() Format { return FormatCSV }

func (b *csvBackend) Parse(ctx context.Context, data []byte) (*dataset.Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	xIdx, yIdx := -1, -1
	for i, name := range header {
		switch name {
		case "x":
			xIdx = i
		case "y":
			yIdx = i
		}
	}
	if xIdx < 0 {
		return nil, &SchemaError{Column: "x", Expected: "semicolon-joined float column", Found: "missing"}
	}
	if yIdx < 0 {
		return nil, &SchemaError{Column: "y", Expected: "semicolon-joined float column", Found: "missing"}
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(rows), err)
		}
		rows = append(rows, record)
	}

	spectra := make([]dataset.Spectrum, len(rows))
	for row, record := range rows {
		x, err := parseFloatList(record[xIdx], row, "x")
		if err != nil {
			return nil, err
		}
		y, err := parseFloatList(record[yIdx], row, "y")
		if err != nil {
			return nil, err
		}
		if len(x) != len(y) {
			return nil, &LengthMismatchError{Row: row, XLen: len(x), YLen: len(y)}
		}
		spectra[row] = dataset.Spectrum{X: x, Y: y}
	}

	var columnNames []string
	for i, name := range header {
		if i == xIdx || i == yIdx {
			continue
		}
		cells := make([]string, len(rows))
		for row := range rows {
			cells[row] = rows[row][i]
		}
		values := sniffColumn(cells)
		for row := range spectra {
			if spectra[row].Metadata == nil {
				spectra[row].Metadata = make(metadata.Document, len(header)-2)
			}
			spectra[row].Metadata[name] = values[row]
		}
		columnNames = append(columnNames, name)
	}

	return dataset.New(spectra, columnNames), nil
}

// parseFloatList splits a curve cell on the reserved semicolon and parses
// each token as a float64.
func parseFloatList(cell string, row int, column string) ([]float64, error) {
	tokens := strings.Split(cell, ";")
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, &ParseError{Row: row, Column: column, Token: tok, cause: err}
		}
		values[i] = v
	}
	return values, nil
}

// sniffColumn decides one type for a whole metadata column by attempting
// the narrowest type against every non-empty cell: int, then float, then
// bool, then string. A column is never mixed-type; empty cells are Null
// regardless of the sniffed type.
func sniffColumn(cells []string) []metadata.Value {
	allInt, allFloat, allBool := true, true, true
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if allInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			if !isBoolToken(cell) {
				allBool = false
			}
		}
	}

	values := make([]metadata.Value, len(cells))
	for i, cell := range cells {
		if cell == "" {
			values[i] = metadata.Null()
			continue
		}
		switch {
		case allInt:
			n, _ := strconv.ParseInt(cell, 10, 64)
			values[i] = metadata.Int(n)
		case allFloat:
			f, _ := strconv.ParseFloat(cell, 64)
			values[i] = metadata.Float(f)
		case allBool:
			values[i] = metadata.Bool(strings.EqualFold(cell, "true"))
		default:
			values[i] = metadata.String(cell)
		}
	}
	return values
}

func isBoolToken(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}
