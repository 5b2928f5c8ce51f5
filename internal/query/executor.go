package query

import (
	"context"
	"fmt"
	"strings"
)

// Provider supplies named, immutable tables. The engine trusts the
// declared schema but tolerates ragged rows.
type Provider interface {
	Load(ctx context.Context, name string) (*Table, error)
}

// Request is one query: a table, optional join, optional AND-combined
// filters, optional projection, ordering and limit.
type Request struct {
	Table string

	// Join names a second table joined onto Table.
	Join     string
	JoinSpec JoinSpec

	Filters []string
	Fields  []string

	OrderBy  string
	OrderDir Direction

	Limit int
}

// ResultSet is the format-agnostic query output: an ordered header and
// rectangular rows of typed values. It is produced once per query and
// read-only afterwards.
type ResultSet struct {
	header Header
	rows   []Row
}

func (rs *ResultSet) Header() Header { return rs.header }

func (rs *ResultSet) Rows() []Row { return rs.rows }

func (rs *ResultSet) Len() int { return len(rs.rows) }

// Executor runs requests against a table provider. It holds no state
// between queries; the provider decides whether tables are cached.
type Executor struct {
	provider Provider
}

func NewExecutor(provider Provider) *Executor {
	return &Executor{provider: provider}
}

// Execute runs the pipeline: load, join, filter, project, order, limit.
// Stages without input fall through. Filters are parsed before any row
// is evaluated, so a malformed clause aborts with no partial result.
func (e *Executor) Execute(ctx context.Context, req Request) (*ResultSet, error) {
	clauses, err := ParseFilters(req.Filters)
	if err != nil {
		return nil, err
	}

	t, err := e.provider.Load(ctx, req.Table)
	if err != nil {
		return nil, fmt.Errorf("provider.Load: %w", err)
	}

	if req.Join != "" {
		right, err := e.provider.Load(ctx, req.Join)
		if err != nil {
			return nil, fmt.Errorf("provider.Load: %w", err)
		}
		t, err = Join(t, right, req.JoinSpec)
		if err != nil {
			return nil, err
		}
	}

	// schema errors surface before any row is evaluated. The order key
	// is resolved against the projected schema, since ordering runs
	// after projection has dropped the other fields.
	for _, field := range req.Fields {
		if _, ok := t.Column(field); !ok {
			return nil, &UnknownFieldError{Field: field, Table: t.Name()}
		}
	}
	if req.OrderBy != "" {
		if !orderable(t, req.Fields, req.OrderBy) {
			return nil, &UnknownFieldError{Field: req.OrderBy, Table: t.Name()}
		}
	}

	t = Filter(t, clauses)

	if len(req.Fields) > 0 {
		t, err = Project(t, req.Fields)
		if err != nil {
			return nil, err
		}
	}

	if req.OrderBy != "" {
		t, err = Order(t, req.OrderBy, req.OrderDir)
		if err != nil {
			return nil, err
		}
	}

	t = Limit(t, req.Limit)

	return &ResultSet{
		header: t.Header(),
		rows:   t.Rows(),
	}, nil
}

// orderable reports whether key names a field ordering can use: one of
// the projected fields when a projection is requested, otherwise any
// field of the table.
func orderable(t *Table, fields []string, key string) bool {
	if len(fields) == 0 {
		_, ok := t.Column(key)
		return ok
	}
	for _, f := range fields {
		if strings.EqualFold(f, key) {
			return true
		}
	}
	return false
}
