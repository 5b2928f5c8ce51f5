package query

import "fmt"

// MalformedFilterError reports a filter clause that could not be parsed.
// The offending clause text is carried verbatim for the CLI to show.
type MalformedFilterError struct {
	Clause string
	Reason string
}

func (e *MalformedFilterError) Error() string {
	return fmt.Sprintf("malformed filter %q: %s", e.Clause, e.Reason)
}

// UnknownFieldError reports a projection, order or join key that matches
// no column of the table it was applied to.
type UnknownFieldError struct {
	Field string
	Table string
}

func (e *UnknownFieldError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("unknown field %q in table %q", e.Field, e.Table)
	}
	return fmt.Sprintf("unknown field %q", e.Field)
}
