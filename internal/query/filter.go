package query

import "strings"

// Operator is one recognized filter comparison.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpContains     Operator = "contains"
	OpStartsWith   Operator = "startswith"
)

// operators is scanned longest-token-first so that ">=" wins over ">"
// and "!=" over "=".
var operators = []Operator{
	OpStartsWith,
	OpContains,
	OpGreaterEqual,
	OpLessEqual,
	OpNotEqual,
	OpEqual,
	OpGreater,
	OpLess,
}

// FilterClause is one parsed "field<op>value" condition. The literal is
// kept as written; coercion happens at evaluation time against the
// field's declared kind.
type FilterClause struct {
	Field    string
	Operator Operator
	Literal  string
}

// ParseFilter parses a single clause like "name=Schmidt" or "age>=25".
// Quotes are not interpreted; shell quoting is the caller's business.
func ParseFilter(clause string) (FilterClause, error) {
	var (
		found Operator
		at    = -1
	)
	for _, op := range operators {
		if i := strings.Index(clause, string(op)); i >= 0 {
			found = op
			at = i
			break
		}
	}
	if at < 0 {
		return FilterClause{}, &MalformedFilterError{Clause: clause, Reason: "no operator found"}
	}

	field := strings.TrimSpace(clause[:at])
	if field == "" {
		return FilterClause{}, &MalformedFilterError{Clause: clause, Reason: "empty field name"}
	}

	return FilterClause{
		Field:    field,
		Operator: found,
		Literal:  strings.TrimSpace(clause[at+len(found):]),
	}, nil
}

// ParseFilters parses each clause of a list. The clauses are combined
// with AND during evaluation.
func ParseFilters(clauses []string) ([]FilterClause, error) {
	parsed := make([]FilterClause, 0, len(clauses))
	for _, clause := range clauses {
		fc, err := ParseFilter(clause)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, fc)
	}
	return parsed, nil
}

// matches reports whether a row satisfies every clause. A field absent
// from the table fails its clause, it does not fail the query.
func matches(t *Table, row Row, clauses []FilterClause) bool {
	for _, clause := range clauses {
		col, ok := t.Column(clause.Field)
		if !ok {
			return false
		}

		left := t.value(row, col)
		right := CoerceLiteral(clause.Literal, left.Kind())

		if !evaluate(clause.Operator, left, right) {
			return false
		}
	}
	return true
}

func evaluate(op Operator, left, right Value) bool {
	switch op {
	case OpEqual:
		return equalValues(left, right)
	case OpNotEqual:
		return !equalValues(left, right)
	case OpGreater:
		return compare(left, right) == compareGreater
	case OpGreaterEqual:
		c := compare(left, right)
		return c == compareGreater || c == compareEqual
	case OpLess:
		return compare(left, right) == compareLess
	case OpLessEqual:
		c := compare(left, right)
		return c == compareLess || c == compareEqual
	case OpContains:
		return strings.Contains(lower(left), lower(right))
	case OpStartsWith:
		return strings.HasPrefix(lower(left), lower(right))
	default:
		return false
	}
}

// lower is the case-folded string coercion used by the substring
// operators. Null folds to the empty string on purpose: "contains"
// against nothing never matches a non-empty needle.
func lower(v Value) string {
	if v.IsNull() {
		return ""
	}
	return strings.ToLower(v.String())
}

// Filter returns a table with the rows matching all clauses, preserving
// row order. With no clauses the input table is returned as is.
func Filter(t *Table, clauses []FilterClause) *Table {
	if len(clauses) == 0 {
		return t
	}

	var kept []Row
	for _, row := range t.Rows() {
		if matches(t, row, clauses) {
			kept = append(kept, row)
		}
	}
	return t.derive(kept)
}
