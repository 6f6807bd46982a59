package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/store"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project-file>",
		Short: "Show a project summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			touchRecent(cmd, p.FilePath, p.Name)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:  %s\n", p.Name)
			fmt.Fprintf(out, "ID:       %s\n", p.ID)
			fmt.Fprintf(out, "Created:  %s\n", p.Created.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Modified: %s\n", p.Modified.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Sources:  %d\n\n", p.DataSourceCount())

			if p.DataSourceCount() == 0 {
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Type", "Rows", "Columns", "Visualizations"})
			for _, d := range p.DataSources() {
				t.AppendRow(table.Row{
					d.ID, d.Name, d.SourceType,
					d.Dataset.RowCount(), d.Dataset.ColumnCount(),
					len(d.Visualizations()),
				})
			}
			t.Render()
			return nil
		},
	}
}
