package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceLiteral_Detection(t *testing.T) {
	type testCase struct {
		name     string
		literal  string
		expected Kind
	}

	testCases := []testCase{
		{name: "integer", literal: "42", expected: KindInt},
		{name: "negative integer", literal: "-7", expected: KindInt},
		{name: "float", literal: "3.14", expected: KindFloat},
		{name: "negative float", literal: "-0.5", expected: KindFloat},
		{name: "bool true", literal: "true", expected: KindBool},
		{name: "bool mixed case", literal: "False", expected: KindBool},
		{name: "iso date", literal: "2024-01-15", expected: KindDate},
		{name: "plain string", literal: "Schmidt", expected: KindString},
		{name: "leading dot is not a float", literal: ".5", expected: KindString},
		{name: "trailing garbage stays string", literal: "42abc", expected: KindString},
		{name: "non-iso date stays string", literal: "15.01.2024", expected: KindString},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := CoerceLiteral(tc.literal, KindNull)
			assert.Equal(t, tc.expected, v.Kind())
		})
	}
}

func TestCoerceLiteral_HintFallsBackToString(t *testing.T) {
	r := require.New(t)

	// hint honored when it converts
	v := CoerceLiteral("25", KindInt)
	r.Equal(KindInt, v.Kind())

	// failed hint conversion degrades to string, never errors
	v = CoerceLiteral("abc", KindInt)
	r.Equal(KindString, v.Kind())
	r.Equal("abc", v.String())

	// date hint
	v = CoerceLiteral("2024-02-29", KindDate)
	r.Equal(KindDate, v.Kind())
	v = CoerceLiteral("2024-13-01", KindDate)
	r.Equal(KindString, v.Kind())
}

func TestCoerce_RawValues(t *testing.T) {
	r := require.New(t)

	r.Equal(KindNull, Coerce(nil).Kind())
	r.Equal(KindString, Coerce("x").Kind())
	r.Equal(KindInt, Coerce(5).Kind())
	r.Equal(KindInt, Coerce(int64(5)).Kind())
	r.Equal(KindFloat, Coerce(2.5).Kind())
	r.Equal(KindBool, Coerce(true).Kind())
	r.Equal(KindDate, Coerce(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Kind())

	// a coerced value passes through untouched
	v := Int(9)
	r.Equal(v, Coerce(v))
}

func TestCompare_SameKind(t *testing.T) {
	r := require.New(t)

	r.Equal(compareLess, compare(Int(1), Int(2)))
	r.Equal(compareGreater, compare(Float(2.5), Float(1.5)))
	r.Equal(compareEqual, compare(String("a"), String("a")))
	r.Equal(compareLess, compare(Bool(false), Bool(true)))

	earlier := Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := Date(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	r.Equal(compareLess, compare(earlier, later))
}

func TestCompare_MixedKinds(t *testing.T) {
	r := require.New(t)

	// the left side re-coerces to the right side's tag
	r.Equal(compareEqual, compare(String("5"), Int(5)))
	r.Equal(compareGreater, compare(String("30"), Int(25)))

	// failed re-coercion is the incomparable sentinel, not an error
	r.Equal(compareIncomparable, compare(String("abc"), Int(25)))
	r.Equal(compareIncomparable, compare(Date(time.Now()), Bool(true)))

	// a typed left against a non-numeric literal degrades to a string
	// comparison instead of failing
	r.Equal(compareLess, compare(Int(5), String("abc")))

	// null only equals null
	r.Equal(compareEqual, compare(Null(), Null()))
	r.Equal(compareIncomparable, compare(Null(), Int(1)))
	r.Equal(compareIncomparable, compare(String(""), Null()))
}

func TestValue_StringRendersNullDistinctly(t *testing.T) {
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "", String("").String())
}

func TestKindFromString(t *testing.T) {
	assert.Equal(t, KindInt, KindFromString("int"))
	assert.Equal(t, KindInt, KindFromString("INTEGER"))
	assert.Equal(t, KindFloat, KindFromString("float"))
	assert.Equal(t, KindBool, KindFromString("bool"))
	assert.Equal(t, KindDate, KindFromString("date"))
	assert.Equal(t, KindString, KindFromString(""))
	assert.Equal(t, KindString, KindFromString("whatever"))
}
