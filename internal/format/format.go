// Package format renders query result sets into output bytes. Renderers
// only rely on the value's type tag; Null always renders distinctly from
// an empty string.
package format

import (
	"fmt"

	"github.com/schichtkit/planq/internal/query"
)

// Options provide renderer knobs shared by all formatters.
type Options struct {
	// ChunkStart offsets the row index column of paginated output.
	ChunkStart int
}

// Formatter converts a header and rows to bytes.
type Formatter interface {
	Format(header query.Header, rows []query.Row, opts *Options) ([]byte, error)
}

// Names lists the recognized formatter names.
var Names = []string{"table", "json", "yaml", "csv"}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch name {
	case "table":
		return NewTable(), nil
	case "json":
		return NewJSON(), nil
	case "yaml":
		return NewYAML(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", name)
	}
}

// Render is the convenience path from a result set to output bytes.
func Render(f Formatter, rs *query.ResultSet) ([]byte, error) {
	return f.Format(rs.Header(), rs.Rows(), &Options{})
}
