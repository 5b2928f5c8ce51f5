package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groups() *Table {
	fields := []Field{
		{Name: "id", Kind: KindInt},
		{Name: "name", Kind: KindString},
	}
	rows := []Row{
		{Int(5), String("A")},
		{Int(5), String("B")},
		{Int(7), String("C")},
	}
	return NewTable("5GROUP", fields, rows)
}

func assignments() *Table {
	fields := []Field{
		{Name: "empl_id", Kind: KindInt},
		{Name: "group_id", Kind: KindInt},
	}
	rows := []Row{
		{Int(1), Int(5)},
		{Int(2), Int(9)},
	}
	return NewTable("5GRASG", fields, rows)
}

func TestJoin_OneToMany(t *testing.T) {
	r := require.New(t)

	joined, err := Join(assignments(), groups(), JoinSpec{LeftKey: "group_id", RightKey: "id"})
	r.NoError(err)

	// one left row with two matches emits two rows, the unmatched left
	// row emits none
	r.Equal(2, joined.Len())
	r.Equal(Header{"empl_id", "group_id", "id", "name"}, joined.Header())

	// right tie order preserved
	r.Equal(String("A"), joined.Rows()[0][3])
	r.Equal(String("B"), joined.Rows()[1][3])
}

func TestJoin_Cardinality(t *testing.T) {
	r := require.New(t)

	left := assignments()
	right := groups()
	spec := JoinSpec{LeftKey: "group_id", RightKey: "id"}

	joined, err := Join(left, right, spec)
	r.NoError(err)

	// |join| = sum over left rows of their match counts
	rightCol, ok := right.Column(spec.RightKey)
	r.True(ok)
	leftCol, ok := left.Column(spec.LeftKey)
	r.True(ok)

	expected := 0
	for _, lrow := range left.Rows() {
		for _, rrow := range right.Rows() {
			if equalValues(lrow[leftCol], rrow[rightCol]) {
				expected++
			}
		}
	}
	r.Equal(expected, joined.Len())
}

func TestJoin_CoercedKeys(t *testing.T) {
	r := require.New(t)

	// numeric id stored as text on the left still meets the numeric id
	left := NewTable("L", []Field{{Name: "group_id", Kind: KindString}}, []Row{
		{String("5")},
	})

	joined, err := Join(left, groups(), JoinSpec{LeftKey: "group_id", RightKey: "id"})
	r.NoError(err)
	r.Equal(2, joined.Len())
}

func TestJoin_CollidingFieldNamesQualified(t *testing.T) {
	r := require.New(t)

	left := NewTable("L", []Field{
		{Name: "id", Kind: KindInt},
		{Name: "name", Kind: KindString},
	}, []Row{
		{Int(5), String("left")},
	})

	joined, err := Join(left, groups(), JoinSpec{LeftKey: "id", RightKey: "id"})
	r.NoError(err)
	r.Equal(Header{"id", "name", "5GROUP.id", "5GROUP.name"}, joined.Header())
	r.Equal(2, joined.Len())
}

func TestJoin_UnknownKey(t *testing.T) {
	r := require.New(t)

	_, err := Join(assignments(), groups(), JoinSpec{LeftKey: "nope", RightKey: "id"})
	var unknown *UnknownFieldError
	r.ErrorAs(err, &unknown)
	r.Equal("nope", unknown.Field)

	_, err = Join(assignments(), groups(), JoinSpec{LeftKey: "group_id", RightKey: "nope"})
	r.ErrorAs(err, &unknown)
}

func TestJoin_StringKeysMatchLikeEquality(t *testing.T) {
	r := require.New(t)

	left := NewTable("L", []Field{{Name: "code", Kind: KindString}}, []Row{
		{String("ABC")},
	})
	right := NewTable("R", []Field{
		{Name: "key", Kind: KindString},
		{Name: "tag", Kind: KindString},
	}, []Row{
		{String("abc"), String("lower")},
		{String("ABC"), String("exact")},
	})

	joined, err := Join(left, right, JoinSpec{LeftKey: "code", RightKey: "key"})
	r.NoError(err)

	// join equality agrees with the = operator: "ABC" does not meet
	// "abc", only the exact-case row pairs up
	r.Equal(1, joined.Len())
	r.Equal(String("exact"), joined.Rows()[0][2])

	// and the cardinality stays |join| = sum of equalValues matches
	leftCol, _ := left.Column("code")
	rightCol, _ := right.Column("key")
	expected := 0
	for _, lrow := range left.Rows() {
		for _, rrow := range right.Rows() {
			if equalValues(lrow[leftCol], rrow[rightCol]) {
				expected++
			}
		}
	}
	r.Equal(expected, joined.Len())
}

func TestJoin_NullKeysNeverMatch(t *testing.T) {
	r := require.New(t)

	left := NewTable("L", []Field{{Name: "group_id", Kind: KindInt}}, []Row{
		{Null()},
	})
	right := NewTable("R", []Field{{Name: "gid", Kind: KindInt}}, []Row{
		{Null()},
		{Int(1)},
	})

	joined, err := Join(left, right, JoinSpec{LeftKey: "group_id", RightKey: "gid"})
	r.NoError(err)
	r.Equal(0, joined.Len())
}

func TestJoin_IncompatibleKeyTypesDegradeToNoMatch(t *testing.T) {
	r := require.New(t)

	left := NewTable("L", []Field{{Name: "k", Kind: KindString}}, []Row{
		{String("abc")},
	})

	joined, err := Join(left, groups(), JoinSpec{LeftKey: "k", RightKey: "id"})
	r.NoError(err)
	assert.Equal(t, 0, joined.Len())
}

func TestJoin_SourceTablesUntouched(t *testing.T) {
	r := require.New(t)

	left := assignments()
	right := groups()
	leftRows := left.Len()
	rightRows := right.Len()

	_, err := Join(left, right, JoinSpec{LeftKey: "group_id", RightKey: "id"})
	r.NoError(err)

	r.Equal(leftRows, left.Len())
	r.Equal(rightRows, right.Len())
	r.Equal(Header{"empl_id", "group_id"}, left.Header())
}
