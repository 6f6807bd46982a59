package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/importer"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	var (
		rows      int
		delimiter string
		encoding  string
		noHeader  bool
		skipRows  int
	)

	cmd := &cobra.Command{
		Use:   "preview <csv-file>",
		Short: "Preview the first rows of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}

			opts := importer.Options{
				Delimiter:   delimiter,
				Encoding:    encoding,
				Header:      !noHeader,
				SkipRows:    skipRows,
				Decimal:     cfg.Import.Decimal,
				Thousands:   cfg.Import.Thousands,
				PreviewRows: rows,
			}
			if opts.Encoding == "" {
				opts.Encoding = cfg.Import.Encoding
			}

			tbl, err := importer.Preview(args[0], opts)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			header := make(table.Row, tbl.ColumnCount())
			for i, name := range tbl.Columns() {
				header[i] = name
			}
			t.AppendHeader(header)
			for i := 0; i < tbl.RowCount(); i++ {
				row := make(table.Row, tbl.ColumnCount())
				for j, v := range tbl.Row(i) {
					row[j] = v.String()
				}
				t.AppendRow(row)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "r", 5, "number of rows to preview")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "column delimiter (default: detect)")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "file encoding")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first row as data")
	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "rows to skip before the header")
	return cmd
}
