package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/paucablop/spectrago"
)

type rootFlags struct {
	logLevel    string
	parallelism int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "spectrago",
		Short: "Inspect, filter and color spectral data files",
		Long: `spectrago loads spectral files (parquet, json, csv, optionally gzip,
zstd or lz4 compressed) into the shared in-memory model and exposes the
derived views: schema and unique metadata values, filter results, and the
deterministic value-to-color assignment used by plots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().IntVar(&flags.parallelism, "parallelism", 0, "record parse workers (0 = number of CPUs)")

	cmd.AddCommand(
		newInspectCmd(flags),
		newColorsCmd(flags),
		newGenerateCmd(),
	)
	return cmd
}

// newSession builds a Session from the persistent flags.
func (f *rootFlags) newSession() (*spectrago.Session, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", f.logLevel, err)
	}

	opts := []spectrago.Option{spectrago.WithLogLevel(level)}
	if f.parallelism > 0 {
		opts = append(opts, spectrago.WithParallelism(f.parallelism))
	}
	return spectrago.New(opts...), nil
}
