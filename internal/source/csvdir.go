package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schichtkit/planq/internal/query"
)

// CSVDir loads tables from a directory of csv exports, one file per
// table. The header row declares the schema as "name:type" cells, e.g.
// "id:int,name:string,hired:date". This is the file-backed stand-in for
// the DBF decoder; the engine only ever sees the provider interface.
type CSVDir struct {
	dir string

	mu    sync.Mutex
	cache map[string]*query.Table
}

var _ query.Provider = (*CSVDir)(nil)

func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{
		dir:   dir,
		cache: make(map[string]*query.Table),
	}
}

// Dir returns the backing directory.
func (c *CSVDir) Dir() string { return c.dir }

// TableNames lists the tables present in the directory.
func (c *CSVDir) TableNames() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".csv") {
			names = append(names, strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name))))
		}
	}
	return names, nil
}

func (c *CSVDir) Load(ctx context.Context, name string) (*query.Table, error) {
	name = strings.ToUpper(name)

	c.mu.Lock()
	cached, ok := c.cache[name]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := c.read(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[name] = t
	c.mu.Unlock()

	return t, nil
}

func (c *CSVDir) read(name string) (*query.Table, error) {
	path := filepath.Join(c.dir, name+".csv")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reader.ReadAll: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table file %q has no header row", path)
	}

	fields, err := parseSchema(records[0])
	if err != nil {
		return nil, fmt.Errorf("table file %q: %w", path, err)
	}

	rows := make([]query.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(query.Row, len(fields))
		for i := range fields {
			if i >= len(record) || record[i] == "" {
				row[i] = query.Null()
				continue
			}
			row[i] = query.CoerceLiteral(record[i], fields[i].Kind)
		}
		rows = append(rows, row)
	}

	return query.NewTable(name, fields, rows), nil
}

// parseSchema reads "name:type" header cells. A cell without a type
// declares a string field.
func parseSchema(header []string) ([]query.Field, error) {
	fields := make([]query.Field, len(header))
	for i, cell := range header {
		name, typ, _ := strings.Cut(cell, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty field name in header cell %d", i)
		}
		fields[i] = query.Field{
			Name: name,
			Kind: query.KindFromString(strings.TrimSpace(typ)),
		}
	}
	return fields, nil
}
