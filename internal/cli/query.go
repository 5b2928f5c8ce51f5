package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schichtkit/planq/internal/format"
	"github.com/schichtkit/planq/internal/query"
	"github.com/schichtkit/planq/internal/source"
)

// QueryOptions holds the flags of the query command.
type QueryOptions struct {
	*RootOptions

	Table   string
	Filters []string
	Join    string
	On      string
	Fields  string
	Order   string
	Limit   int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a filtered query against one table, with an optional join",
		Long: `Run a query against one table. Filters are "field<op>value" clauses
combined with AND; recognized operators are =, !=, >, >=, <, <=,
contains and startswith.

Examples:
  planq query --table 5EMPL --filter "name=Schmidt"
  planq query --table 5EMPL --filter "age>=25" --order "name" --limit 10
  planq query --table 5GRASG --join 5GROUP --on group_id=id --fields name,position`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table to query (e.g. 5EMPL)")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, `filter clause (e.g. "age>=25"), repeatable`)
	cmd.Flags().StringVar(&opts.Join, "join", "", "table to inner-join")
	cmd.Flags().StringVar(&opts.On, "on", "", "join keys as leftfield=rightfield")
	cmd.Flags().StringVar(&opts.Fields, "fields", "", "comma-separated projection list")
	cmd.Flags().StringVar(&opts.Order, "order", "", `order key, optionally "field desc"`)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of result rows")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *QueryOptions) error {
	req, err := buildRequest(opts)
	if err != nil {
		return err
	}

	if opts.DataDir == "" {
		return fmt.Errorf("no data directory: set --data-dir or data_dir in the config file")
	}

	// load both sides of a join concurrently before the engine runs
	names := []string{req.Table}
	if req.Join != "" {
		names = append(names, req.Join)
	}
	loaded, err := source.LoadAll(cmd.Context(), source.NewCSVDir(opts.DataDir), names...)
	if err != nil {
		return fmt.Errorf("source.LoadAll: %w", err)
	}
	provider := source.NewMemory()
	for _, t := range loaded {
		provider.Add(t)
	}

	executor := query.NewExecutor(provider)
	call := query.NewCall(executor, req)

	select {
	case <-call.Done():
	case <-cmd.Context().Done():
		call.Cancel()
		<-call.Done()
	}

	result, err := call.GetResult()
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	slog.Debug("query executed",
		"call", call.GetID(),
		"rows", result.Len(),
		"elapsed", call.GetTimeTaken(),
	)

	if result.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found")
		return nil
	}

	formatter, err := format.New(opts.Format)
	if err != nil {
		return err
	}
	out, err := format.Render(formatter, result)
	if err != nil {
		return fmt.Errorf("format.Render: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
	return nil
}

// buildRequest validates the flags and maps them onto an engine request.
func buildRequest(opts *QueryOptions) (query.Request, error) {
	var req query.Request

	table := strings.ToUpper(strings.TrimSpace(opts.Table))
	if !source.KnownTable(table) {
		return req, fmt.Errorf("unknown table %q: available tables: %s",
			opts.Table, strings.Join(source.TableNames(), ", "))
	}
	req.Table = table

	if opts.Join != "" {
		join := strings.ToUpper(strings.TrimSpace(opts.Join))
		if !source.KnownTable(join) {
			return req, fmt.Errorf("unknown join table %q: available tables: %s",
				opts.Join, strings.Join(source.TableNames(), ", "))
		}
		left, right, ok := strings.Cut(opts.On, "=")
		if !ok || strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
			return req, fmt.Errorf("invalid --on %q: expected leftfield=rightfield", opts.On)
		}
		req.Join = join
		req.JoinSpec = query.JoinSpec{
			LeftKey:  strings.TrimSpace(left),
			RightKey: strings.TrimSpace(right),
		}
	} else if opts.On != "" {
		return req, fmt.Errorf("--on requires --join")
	}

	req.Filters = opts.Filters

	if opts.Fields != "" {
		for _, f := range strings.Split(opts.Fields, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			req.Fields = append(req.Fields, f)
		}
	}

	if opts.Order != "" {
		key, dir, err := parseOrder(opts.Order)
		if err != nil {
			return req, err
		}
		req.OrderBy = key
		req.OrderDir = dir
	}

	if opts.Limit < 0 {
		return req, fmt.Errorf("limit must be positive, got %d", opts.Limit)
	}
	req.Limit = opts.Limit
	if req.Limit == 0 && opts.Config != nil {
		req.Limit = opts.Config.MaxDisplayRows
	}

	return req, nil
}

// parseOrder splits an order clause like "name" or "name desc".
func parseOrder(clause string) (string, query.Direction, error) {
	parts := strings.Fields(clause)
	switch len(parts) {
	case 1:
		return parts[0], query.Ascending, nil
	case 2:
		switch strings.ToLower(parts[1]) {
		case "asc":
			return parts[0], query.Ascending, nil
		case "desc":
			return parts[0], query.Descending, nil
		}
		return "", 0, fmt.Errorf("order direction must be 'asc' or 'desc', got %q", parts[1])
	default:
		return "", 0, fmt.Errorf("order clause format: 'field' or 'field desc'")
	}
}
