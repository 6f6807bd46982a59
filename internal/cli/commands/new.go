package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/model"
	"github.com/datainspect/datainspect/internal/store"
)

// NewNewCommand creates the new command.
func NewNewCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new project file",
		Args:  cobra.ExactArgs(1),
		Example: `  # Create an empty project
  datainspect new "Sales 2026" --out sales.dinsp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if out == "" {
				out = name + store.Extension
			}

			p, err := model.NewProject(name)
			if err != nil {
				return err
			}
			path, err := store.Save(p, out)
			if err != nil {
				return err
			}
			touchRecent(cmd, path, p.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q at %s\n", p.Name, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <name>.dinsp)")
	return cmd
}
