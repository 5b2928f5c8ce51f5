package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind is the type tag of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// KindFromString maps a declared schema type name to a Kind. Unknown
// names fall back to string, the permissive default.
func KindFromString(name string) Kind {
	switch strings.ToLower(name) {
	case "int", "integer":
		return KindInt
	case "float", "numeric":
		return KindFloat
	case "bool", "boolean":
		return KindBool
	case "date":
		return KindDate
	default:
		return KindString
	}
}

// Value is a coerced, comparison-ready field value.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

const dateLayout = "2006-01-02"

var (
	intPattern   = regexp.MustCompile(`^-?\d+$`)
	floatPattern = regexp.MustCompile(`^-?\d+\.\d+$`)
)

func Null() Value { return Value{kind: KindNull} }

func String(s string) Value { return Value{kind: KindString, s: s} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Native returns the value as a plain Go type, for serialization.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindDate:
		return v.t.Format(dateLayout)
	default:
		return nil
	}
}

// String renders the value for text output. Null renders as "NULL" so
// that it stays distinguishable from an empty string field.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.Format(dateLayout)
	default:
		return ""
	}
}

// Coerce converts a raw field value from a table provider into a Value.
// Strings are passed through untouched, provider-typed values keep their
// type tag.
func Coerce(raw any) Value {
	switch r := raw.(type) {
	case nil:
		return Null()
	case Value:
		return r
	case string:
		return String(r)
	case int:
		return Int(int64(r))
	case int32:
		return Int(int64(r))
	case int64:
		return Int(r)
	case float32:
		return Float(float64(r))
	case float64:
		return Float(r)
	case bool:
		return Bool(r)
	case time.Time:
		return Date(r)
	default:
		return String(fmt.Sprint(r))
	}
}

// CoerceLiteral converts literal text from a filter clause into a Value.
// When hint is a concrete kind, that conversion is attempted first; on
// failure the literal degrades to a plain string instead of erroring, so
// malformed filter input never aborts a query.
func CoerceLiteral(text string, hint Kind) Value {
	if hint != KindNull && hint != KindString {
		if v, ok := convert(text, hint); ok {
			return v
		}
		return String(text)
	}
	return detect(text)
}

// detect infers a literal's kind: int, float, bool, ISO date, then string.
func detect(text string) Value {
	if intPattern.MatchString(text) {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i)
		}
	}
	if floatPattern.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Float(f)
		}
	}
	switch strings.ToLower(text) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if t, err := time.Parse(dateLayout, text); err == nil {
		return Date(t)
	}
	return String(text)
}

// convert attempts a conversion of text to the given kind.
func convert(text string, kind Kind) (Value, bool) {
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return Int(i), true
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, false
		}
		return Float(f), true
	case KindBool:
		switch strings.ToLower(text) {
		case "true":
			return Bool(true), true
		case "false":
			return Bool(false), true
		}
		return Value{}, false
	case KindDate:
		t, err := time.Parse(dateLayout, text)
		if err != nil {
			return Value{}, false
		}
		return Date(t), true
	case KindString:
		return String(text), true
	default:
		return Value{}, false
	}
}

// compareResult is the outcome of comparing two values. Incomparable is
// the explicit no-match sentinel for mixed types that cannot be aligned.
type compareResult int

const (
	compareLess compareResult = iota
	compareEqual
	compareGreater
	compareIncomparable
)

// compare orders a against b. When tags differ, a is re-coerced to b's
// tag, so a stray text cell never matches a numeric literal while a
// failed literal coercion still degrades to a plain string comparison.
// Incomparable values make every ordering operator (and equality)
// evaluate false.
func compare(a, b Value) compareResult {
	if a.kind == KindNull || b.kind == KindNull {
		if a.kind == b.kind {
			return compareEqual
		}
		return compareIncomparable
	}

	if a.kind != b.kind {
		aligned, ok := convert(a.String(), b.kind)
		if !ok {
			return compareIncomparable
		}
		a = aligned
	}

	switch a.kind {
	case KindString:
		return ordering(strings.Compare(a.s, b.s))
	case KindInt:
		switch {
		case a.i < b.i:
			return compareLess
		case a.i > b.i:
			return compareGreater
		}
		return compareEqual
	case KindFloat:
		switch {
		case a.f < b.f:
			return compareLess
		case a.f > b.f:
			return compareGreater
		}
		return compareEqual
	case KindBool:
		switch {
		case !a.b && b.b:
			return compareLess
		case a.b && !b.b:
			return compareGreater
		}
		return compareEqual
	case KindDate:
		switch {
		case a.t.Before(b.t):
			return compareLess
		case a.t.After(b.t):
			return compareGreater
		}
		return compareEqual
	default:
		return compareIncomparable
	}
}

func ordering(cmp int) compareResult {
	switch {
	case cmp < 0:
		return compareLess
	case cmp > 0:
		return compareGreater
	default:
		return compareEqual
	}
}

// equalValues is cross-tag equality. A failed re-coercion means the
// values never match, it is not an error.
func equalValues(a, b Value) bool {
	return compare(a, b) == compareEqual
}
