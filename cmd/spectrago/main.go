// Command spectrago inspects spectral data files, previews filter and color
// assignments, and generates synthetic sample files for testing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
