package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/model"
	"github.com/datainspect/datainspect/internal/render"
	"github.com/datainspect/datainspect/internal/store"
)

// NewVizCommand creates the viz command group.
func NewVizCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Manage the visualizations of a data source",
	}
	cmd.AddCommand(newVizAddCommand(), newVizListCommand(), newVizRemoveCommand(), newVizValidateCommand())
	return cmd
}

func newVizAddCommand() *cobra.Command {
	var (
		name      string
		chartType string
		xAxis     string
		yAxes     []string
		value     string
		title     string
		scheme    string
	)

	cmd := &cobra.Command{
		Use:   "add <project-file> <source-id>",
		Short: "Add a visualization to a data source",
		Args:  cobra.ExactArgs(2),
		Example: `  # Bar chart of revenue per region
  datainspect viz add sales.dinsp <source-id> --name "Revenue" --type bar -x region -y revenue

  # Scatter with a colored series
  datainspect viz add sales.dinsp <source-id> --name "Price vs qty" --type scatter -x price -y "quantity:#3D78D6"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			d, ok := p.DataSource(args[1])
			if !ok {
				return fmt.Errorf("data source %q not found", args[1])
			}

			cfg := model.VizConfig{
				XAxis:       xAxis,
				Value:       value,
				Title:       title,
				ColorScheme: scheme,
			}
			for _, y := range yAxes {
				binding := model.AxisBinding{Column: y}
				if col, color, found := strings.Cut(y, ":"); found {
					binding = model.AxisBinding{Column: col, Color: color}
				}
				cfg.YAxes = append(cfg.YAxes, binding)
			}

			viz := model.NewVisualization(name, model.ChartType(chartType), cfg)
			if err := viz.Validate(d.Dataset); err != nil {
				return err
			}
			if err := d.AddVisualization(viz); err != nil {
				return err
			}
			if _, err := store.Save(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s visualization %q, id %s\n", chartType, name, viz.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "visualization name")
	cmd.Flags().StringVarP(&chartType, "type", "t", "", "chart type (bar, line, pie, scatter, heatmap)")
	cmd.Flags().StringVarP(&xAxis, "x", "x", "", "X axis column")
	cmd.Flags().StringSliceVarP(&yAxes, "y", "y", nil, "Y columns, optionally column:color")
	cmd.Flags().StringVar(&value, "value", "", "value column (heatmap)")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().StringVar(&scheme, "color-scheme", "", "color scheme name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newVizListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <project-file> <source-id>",
		Short: "List visualizations",
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
			t.AppendHeader(table.Row{"ID", "Name", "Type", "X", "Y"})
			for _, v := range d.Visualizations() {
				var ys []string
				for _, y := range v.Config.YAxes {
					ys = append(ys, y.Column)
				}
				t.AppendRow(table.Row{v.ID, v.Name, v.ChartType, v.Config.XAxis, strings.Join(ys, ", ")})
			}
			t.Render()
			return nil
		},
	}
}

func newVizRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-file> <source-id> <viz-id>",
		Short: "Remove a visualization",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			d, ok := p.DataSource(args[1])
			if !ok {
				return fmt.Errorf("data source %q not found", args[1])
			}
			if !d.RemoveVisualization(args[2]) {
				return fmt.Errorf("visualization %q not found", args[2])
			}
			if _, err := store.Save(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed visualization %s\n", args[2])
			return nil
		},
	}
}

func newVizValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project-file> <source-id> <viz-id>",
		Short: "Validate a visualization and resolve its render request",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			d, ok := p.DataSource(args[1])
			if !ok {
				return fmt.Errorf("data source %q not found", args[1])
			}
			req, found, err := render.BuildRequest(d, args[2])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("visualization %q not found", args[2])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Visualization is renderable: %s chart, %d series\n", req.ChartType, len(req.Series))
			if req.XBounds != nil {
				fmt.Fprintf(out, "X bounds: [%g, %g]\n", req.XBounds.Min, req.XBounds.Max)
			}
			if req.YBounds != nil {
				fmt.Fprintf(out, "Y bounds: [%g, %g]\n", req.YBounds.Min, req.YBounds.Max)
			}
			return nil
		},
	}
}
