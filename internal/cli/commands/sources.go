package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/store"
)

// NewSourcesCommand creates the sources command group.
func NewSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage the data sources of a project",
	}
	cmd.AddCommand(newSourcesListCommand(), newSourcesRemoveCommand(), newSourcesRenameCommand())
	return cmd
}

func newSourcesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <project-file>",
		Short: "List data sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Type", "File", "Imported"})
			for _, d := range p.DataSources() {
				t.AppendRow(table.Row{
					d.ID, d.Name, d.SourceType, d.FilePath,
					d.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newSourcesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-file> <source-id>",
		Short: "Remove a data source and everything it owns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if !p.RemoveDataSource(args[1]) {
				return fmt.Errorf("data source %q not found", args[1])
			}
			if _, err := store.Save(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed data source %s\n", args[1])
			return nil
		},
	}
}

func newSourcesRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <project-file> <source-id> <new-name>",
		Short: "Rename a data source",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if !p.RenameDataSource(args[1], args[2]) {
				return fmt.Errorf("data source %q not found", args[1])
			}
			if _, err := store.Save(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed data source %s to %q\n", args[1], args[2])
			return nil
		},
	}
}
