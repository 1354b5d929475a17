package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnodel/jsontable/cell"
	"github.com/arnodel/jsontable/internal/format"
)

func newHeadersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "headers FILE",
		Short: "Print the column names of a document with their ordinal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openReader(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()
			for i, name := range r.Headers() {
				if _, err := fmt.Fprintf(a.stdout, "%d\t%s\n", i, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCatCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Print the rows of a document",
		Long: `Print the rows of a document, FILE being "-" for standard input.

Output formats:
  json    one JSON object per row, in column order (default)
  pretty  one indented JSON object per row
  table   aligned columns under a header line
  csv     CSV records under a header record`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder, err := a.rowEncoder(outputFormat)
			if err != nil {
				return err
			}
			r, err := a.openReader(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			if err := encoder.Header(r.Headers()); err != nil {
				return err
			}
			row := make([]cell.Value, r.FieldCount())
			for r.Read() {
				r.Values(row)
				if err := encoder.Row(row); err != nil {
					return err
				}
			}
			if err := r.Err(); err != nil {
				return err
			}
			return encoder.Close()
		},
	}
	cmd.Flags().StringVar(&outputFormat, "out", "json", "output format: json, pretty, table, csv")
	return cmd
}

func (a *app) rowEncoder(outputFormat string) (format.RowEncoder, error) {
	out, colorizer := a.output()
	switch outputFormat {
	case "json", "pretty":
		return &format.JSONEncoder{
			Printer:   &format.DefaultPrinter{Writer: out, IndentSize: 2},
			Colorizer: colorizer,
			Pretty:    outputFormat == "pretty",
		}, nil
	case "table":
		return format.NewTableEncoder(out), nil
	case "csv":
		return format.NewCSVEncoder(a.stdout), nil
	default:
		return nil, fmt.Errorf("invalid output format: %q", outputFormat)
	}
}
