package query

import "sort"

// Direction is the sort direction of an order key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Project returns a table narrowed to the requested fields, in the
// requested order. Unknown field names fail eagerly, before any row is
// touched.
func Project(t *Table, fields []string) (*Table, error) {
	cols := make([]int, len(fields))
	schema := make([]Field, len(fields))
	for i, name := range fields {
		col, ok := t.Column(name)
		if !ok {
			return nil, &UnknownFieldError{Field: name, Table: t.Name()}
		}
		cols[i] = col
		// keep the caller's spelling of the field name
		schema[i] = Field{Name: name, Kind: t.Fields()[col].Kind}
	}

	rows := make([]Row, t.Len())
	for i, row := range t.Rows() {
		projected := make(Row, len(cols))
		for j, col := range cols {
			projected[j] = t.value(row, col)
		}
		rows[i] = projected
	}

	return NewTable(t.Name(), schema, rows), nil
}

// Order returns a table sorted by one key. The sort is stable so that
// repeated queries over unmodified data stay deterministic; rows whose
// key values are incomparable keep their input position among ties.
func Order(t *Table, key string, dir Direction) (*Table, error) {
	col, ok := t.Column(key)
	if !ok {
		return nil, &UnknownFieldError{Field: key, Table: t.Name()}
	}

	rows := make([]Row, t.Len())
	copy(rows, t.Rows())

	sort.SliceStable(rows, func(i, j int) bool {
		c := compare(t.value(rows[i], col), t.value(rows[j], col))
		if dir == Descending {
			return c == compareGreater
		}
		return c == compareLess
	})

	return t.derive(rows), nil
}

// Limit returns at most n leading rows. Zero or negative n means no
// limit.
func Limit(t *Table, n int) *Table {
	if n <= 0 || n >= t.Len() {
		return t
	}
	return t.derive(t.Rows()[:n])
}
