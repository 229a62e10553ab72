package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paucablop/spectrago/metadata"
)

func TestCSVParse(t *testing.T) {
	input := "x,y,sample,concentration\n" +
		"1;2;3,0.1;0.2;0.3,Sample_A,0.5\n" +
		"1;2;3,0.4;0.5;0.6,Sample_B,1.0\n"

	ds, err := Parse(context.Background(), []byte(input), FormatCSV)
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"sample", "concentration"}, ds.ColumnNames)
	assert.Equal(t, []float64{1, 2, 3}, ds.Spectra[0].X)
	assert.Equal(t, []float64{0.4, 0.5, 0.6}, ds.Spectra[1].Y)
	assert.Equal(t, metadata.String("Sample_A"), ds.Spectra[0].Metadata["sample"])
	assert.Equal(t, metadata.Float(1.0), ds.Spectra[1].Metadata["concentration"])
}

func TestCSVColumnSniffing(t *testing.T) {
	// One type per column, decided over all non-empty cells.
	input := "x,y,run,dose,ok,label,mixed\n" +
		"1,1,1,0.5,true,alpha,7\n" +
		"1,1,2,2,false,beta,seven\n" +
		"1,1,,1.5,true,gamma,8\n"

	ds, err := Parse(context.Background(), []byte(input), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	// run: integers with an empty cell, which stays Null.
	assert.Equal(t, metadata.Int(1), ds.Spectra[0].Metadata["run"])
	assert.Equal(t, metadata.Null(), ds.Spectra[2].Metadata["run"])

	// dose: "2" alone would be an int, but the column as a whole is float.
	assert.Equal(t, metadata.Float(2), ds.Spectra[1].Metadata["dose"])

	assert.Equal(t, metadata.Bool(false), ds.Spectra[1].Metadata["ok"])
	assert.Equal(t, metadata.String("beta"), ds.Spectra[1].Metadata["label"])

	// mixed: one non-numeric cell demotes the whole column to string.
	assert.Equal(t, metadata.String("7"), ds.Spectra[0].Metadata["mixed"])
	assert.Equal(t, metadata.String("seven"), ds.Spectra[1].Metadata["mixed"])
}

func TestCSVMissingCurveColumns(t *testing.T) {
	var schemaErr *SchemaError

	_, err := Parse(context.Background(), []byte("y,sample\n1;2,a\n"), FormatCSV)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "x", schemaErr.Column)

	_, err = Parse(context.Background(), []byte("x,sample\n1;2,a\n"), FormatCSV)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "y", schemaErr.Column)
}

func TestCSVLengthMismatch(t *testing.T) {
	_, err := Parse(context.Background(), []byte("x,y\n1;2,0.1\n"), FormatCSV)

	var mismatch *LengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Row)
	assert.Equal(t, 2, mismatch.XLen)
	assert.Equal(t, 1, mismatch.YLen)
}

func TestCSVBadCurveToken(t *testing.T) {
	input := "x,y\n1;2,0.1;0.2\n1;oops,0.1;0.2\n"
	_, err := Parse(context.Background(), []byte(input), FormatCSV)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Row)
	assert.Equal(t, "x", parseErr.Column)
	assert.Equal(t, "oops", parseErr.Token)
}

func TestCSVEmptyInput(t *testing.T) {
	_, err := Parse(context.Background(), nil, FormatCSV)
	require.Error(t, err)

	// A header-only file is a valid empty dataset.
	ds, err := Parse(context.Background(), []byte("x,y,sample\n"), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, []string{"sample"}, ds.ColumnNames)
}
