package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newColorsCmd(flags *rootFlags) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "colors <file>",
		Short: "Print the value-to-color legend for a metadata column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.newSession()
			if err != nil {
				return err
			}
			if err := session.Load(cmd.Context(), args[0]); err != nil {
				return err
			}

			if column != "" {
				if err := session.SetColorColumn(column); err != nil {
					return fmt.Errorf("column %q: %w", column, err)
				}
			}
			m := session.ColorMap()
			if m == nil {
				return fmt.Errorf("%s has no metadata columns", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", m.Column)
			for _, entry := range m.Legend() {
				fmt.Fprintf(out, "  %-24s %s\n", entry.Value, entry.Color.Hex())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "metadata column (default: first column)")
	return cmd
}
