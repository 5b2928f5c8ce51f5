package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schichtkit/planq/internal/source"
)

// NewInfoCommand creates the info command, summarizing the configured
// data directory.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the data directory and the table files found in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.DataDir == "" {
				return fmt.Errorf("no data directory: set --data-dir or data_dir in the config file")
			}

			provider := source.NewCSVDir(rootOpts.DataDir)
			names, err := provider.TableNames()
			if err != nil {
				return fmt.Errorf("provider.TableNames: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data directory: %s\n", rootOpts.DataDir)
			fmt.Fprintf(out, "tables found: %d\n", len(names))
			for _, name := range names {
				marker := ""
				if !source.KnownTable(name) {
					marker = " (unregistered)"
				}
				fmt.Fprintf(out, "  %s%s\n", name, marker)
			}
			return nil
		},
	}
}
