// Package cli wires the planq commands. All engine errors surface here
// as messages on stderr and a non-zero exit code; nothing panics on bad
// user input.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/schichtkit/planq/internal/config"
	"github.com/schichtkit/planq/internal/format"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Format     string
	Verbose    bool

	Config *config.Config
}

// NewRootCommand creates the planq root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "planq",
		Short: "Query shift-planning tables from the command line",
		Long: `planq queries personnel, shift and absence tables exported from a
Schichtplaner5 database with a small filter language and renders the
results as a table, JSON, YAML or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadOptions(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory with exported table files")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (table|json|yaml|csv)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// loadOptions merges the config file with the global flags. Flags win.
func loadOptions(opts *RootOptions) error {
	path := opts.ConfigPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if opts.DataDir == "" {
		opts.DataDir = cfg.DataDir
	}
	if opts.Format == "" {
		opts.Format = cfg.DefaultFormat
	}
	opts.Verbose = opts.Verbose || cfg.Verbose
	opts.Config = cfg

	if !slices.Contains(format.Names, opts.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, format.Names)
	}

	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "planq: %v\n", err)
		return 1
	}
	return 0
}
