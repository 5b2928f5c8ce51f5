package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/schichtkit/planq/internal/source"
)

// NewTablesCommand creates the tables command, listing the registered
// table names with their descriptions.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the known tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range source.TableNames() {
				fmt.Fprintf(w, "%s\t%s\n", name, source.Describe(name))
			}
			return w.Flush()
		},
	}
}
