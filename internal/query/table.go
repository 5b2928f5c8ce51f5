package query

import "strings"

type (
	// Header is the ordered field-name list of a table or result.
	Header []string

	// Row is one record, aligned to its table's header.
	Row []Value

	// Field is one schema column with its declared kind.
	Field struct {
		Name string
		Kind Kind
	}
)

// Table is an immutable, arena-style table: an ordered schema plus flat
// rows. Field lookup is case-insensitive through the name index.
type Table struct {
	name   string
	fields []Field
	index  map[string]int
	rows   []Row
}

// NewTable builds a table from a schema and rows. Rows shorter than the
// schema are padded with Null so the table stays rectangular; longer rows
// are truncated.
func NewTable(name string, fields []Field, rows []Row) *Table {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.ToLower(f.Name)] = i
	}

	aligned := make([]Row, len(rows))
	for i, row := range rows {
		if len(row) == len(fields) {
			aligned[i] = row
			continue
		}
		padded := make(Row, len(fields))
		for j := range padded {
			if j < len(row) {
				padded[j] = row[j]
			} else {
				padded[j] = Null()
			}
		}
		aligned[i] = padded
	}

	return &Table{
		name:   name,
		fields: fields,
		index:  index,
		rows:   aligned,
	}
}

func (t *Table) Name() string { return t.name }

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Fields() []Field { return t.fields }

func (t *Table) Header() Header {
	header := make(Header, len(t.fields))
	for i, f := range t.fields {
		header[i] = f.Name
	}
	return header
}

func (t *Table) Rows() []Row { return t.rows }

// Column returns the index of a field by case-insensitive name.
func (t *Table) Column(field string) (int, bool) {
	i, ok := t.index[strings.ToLower(field)]
	return i, ok
}

// FieldKind returns the declared kind of a field, KindNull if unknown.
func (t *Table) FieldKind(field string) Kind {
	i, ok := t.Column(field)
	if !ok {
		return KindNull
	}
	return t.fields[i].Kind
}

// value returns the row's value for a column, Null when the row is
// ragged. Missing fields degrade instead of failing a whole scan.
func (t *Table) value(row Row, col int) Value {
	if col < 0 || col >= len(row) {
		return Null()
	}
	return row[col]
}

// derive builds a new table sharing this table's schema with a subset of
// its rows. Source rows are never copied or mutated.
func (t *Table) derive(rows []Row) *Table {
	return &Table{
		name:   t.name,
		fields: t.fields,
		index:  t.index,
		rows:   rows,
	}
}
