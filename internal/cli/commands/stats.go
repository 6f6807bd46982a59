package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/store"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <project-file> <source-id>",
		Short: "Show column types and statistics for a data source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			d, ok := p.DataSource(args[1])
			if !ok {
				return fmt.Errorf("data source %q not found", args[1])
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Column", "Type", "Count", "Missing", "Distinct", "Min", "Max", "Mean", "Median", "Std dev", "Most frequent"})
			for _, c := range d.Dataset.Columns {
				t.AppendRow(table.Row{
					c.Name, c.DataType,
					c.Stats.Count, c.Stats.MissingCount, c.Stats.DistinctCount,
					fmtStat(c.Stats.Min), fmtStat(c.Stats.Max), fmtStat(c.Stats.Mean),
					fmtStat(c.Stats.Median), fmtStat(c.Stats.StdDev),
					strings.Join(c.Stats.MostFrequent, ", "),
				})
			}
			t.Render()
			return nil
		},
	}
}

// fmtStat renders an optional aggregate; absent values print as a dash.
func fmtStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}
