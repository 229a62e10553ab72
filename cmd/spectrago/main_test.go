package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateAndInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")

	out, err := runCmd(t, "generate", path, "--points", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 30 spectra")

	out, err = runCmd(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "spectra: 30")
	assert.Contains(t, out, "sample (string, 3 unique)")
	assert.Contains(t, out, "concentration (float, 5 unique)")
	assert.Contains(t, out, "measurement_id (int, 30 unique)")
}

func TestGenerateWithConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "gen.toml")
	require.NoError(t, os.WriteFile(config, []byte(`
seed = 7
points = 10
concentrations = [1.0]
operators = ["Alice"]
`), 0o644))

	path := filepath.Join(dir, "small.json")
	out, err := runCmd(t, "generate", path, "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 spectra")
}

func TestColorsLegend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	_, err := runCmd(t, "generate", path)
	require.NoError(t, err)

	out, err := runCmd(t, "colors", path, "--column", "operator")
	require.NoError(t, err)
	assert.Contains(t, out, "operator")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "#")

	_, err = runCmd(t, "colors", path, "--column", "missing")
	require.Error(t, err)
}

func TestInspectUnknownExtension(t *testing.T) {
	_, err := runCmd(t, "inspect", "spectra.xlsx")
	require.Error(t, err)
}
