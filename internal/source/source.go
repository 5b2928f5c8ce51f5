// Package source supplies named tables to the query engine. The engine
// never sees where rows come from; providers own loading and caching.
package source

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/schichtkit/planq/internal/query"
)

// Memory is a provider over preloaded tables, used by tests and by
// callers that assemble tables themselves.
type Memory struct {
	tables map[string]*query.Table
}

var _ query.Provider = (*Memory)(nil)

func NewMemory(tables ...*query.Table) *Memory {
	m := &Memory{tables: make(map[string]*query.Table, len(tables))}
	for _, t := range tables {
		m.Add(t)
	}
	return m
}

// Add registers a table under its own name.
func (m *Memory) Add(t *query.Table) {
	m.tables[t.Name()] = t
}

func (m *Memory) Load(_ context.Context, name string) (*query.Table, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table: %q", name)
	}
	return t, nil
}

// LoadAll fetches several tables concurrently. One failed load fails
// the whole batch.
func LoadAll(ctx context.Context, p query.Provider, names ...string) (map[string]*query.Table, error) {
	tables := make([]*query.Table, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			t, err := p.Load(ctx, name)
			if err != nil {
				return fmt.Errorf("p.Load: %w", err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := make(map[string]*query.Table, len(names))
	for i, name := range names {
		loaded[name] = tables[i]
	}
	return loaded, nil
}
