package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paucablop/spectrago/metadata"
)

func newInspectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the schema and unique metadata values of a spectral file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.newSession()
			if err != nil {
				return err
			}
			if err := session.Load(cmd.Context(), args[0]); err != nil {
				return err
			}

			ds := session.Dataset()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", args[0])
			fmt.Fprintf(out, "  spectra: %d\n", ds.Len())
			fmt.Fprintf(out, "  points:  %d\n", ds.Points())
			fmt.Fprintf(out, "  columns: %d\n", len(ds.ColumnNames))

			for _, col := range ds.ColumnNames {
				values := ds.UniqueValues[col]
				fmt.Fprintf(out, "\n  %s (%s, %d unique)\n", col, columnKind(values), len(values))
				for _, v := range values {
					fmt.Fprintf(out, "    %s\n", v)
				}
			}
			return nil
		},
	}
}

// columnKind summarizes the value kinds present in a column, e.g. "int" or
// "string+null".
func columnKind(values []metadata.Value) string {
	hasNull := false
	kind := metadata.KindInvalid
	for _, v := range values {
		if v.IsNull() {
			hasNull = true
			continue
		}
		kind = v.Kind
	}

	name := "null"
	switch kind {
	case metadata.KindBool:
		name = "bool"
	case metadata.KindInt:
		name = "int"
	case metadata.KindFloat:
		name = "float"
	case metadata.KindString:
		name = "string"
	case metadata.KindInvalid:
		return "null"
	}
	if hasNull {
		return strings.Join([]string{name, "null"}, "+")
	}
	return name
}
