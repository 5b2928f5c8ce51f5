package query

// JoinSpec declares an inner join between two loaded tables on one key
// pair. Key values are compared after coercion, so a numeric id stored
// as text on one side still meets its numeric counterpart.
type JoinSpec struct {
	LeftKey  string
	RightKey string
}

// joinKey normalizes a key value for hash lookup. Values of different
// tags that compare equal (int 5, string "5") must land in the same
// bucket, so everything keys on the detected form of its string
// rendering. The rendering is kept verbatim: two keys bucket together
// exactly when equalValues holds, so string keys stay case-sensitive
// like the = operator. Null never joins.
func joinKey(v Value) (string, bool) {
	if v.IsNull() {
		return "", false
	}
	d := detect(v.String())
	return d.Kind().String() + ":" + d.String(), true
}

// Join inner-joins left with right. The result's schema is the left
// schema followed by the right schema with right field names qualified
// as "<table>.<field>" whenever the plain name already exists on the
// left. Left row order is preserved; ties keep the right table's
// relative order.
func Join(left, right *Table, spec JoinSpec) (*Table, error) {
	leftCol, ok := left.Column(spec.LeftKey)
	if !ok {
		return nil, &UnknownFieldError{Field: spec.LeftKey, Table: left.Name()}
	}
	rightCol, ok := right.Column(spec.RightKey)
	if !ok {
		return nil, &UnknownFieldError{Field: spec.RightKey, Table: right.Name()}
	}

	fields := joinedFields(left, right)

	// index the right side once: O(R) build, O(L*k) emit
	index := make(map[string][]Row, right.Len())
	for _, row := range right.Rows() {
		key, ok := joinKey(right.value(row, rightCol))
		if !ok {
			continue
		}
		index[key] = append(index[key], row)
	}

	var rows []Row
	for _, lrow := range left.Rows() {
		key, ok := joinKey(left.value(lrow, leftCol))
		if !ok {
			continue
		}
		for _, rrow := range index[key] {
			combined := make(Row, 0, len(fields))
			combined = append(combined, lrow...)
			combined = append(combined, rrow...)
			rows = append(rows, combined)
		}
	}

	name := left.Name() + "+" + right.Name()
	return NewTable(name, fields, rows), nil
}

// joinedFields is the union schema: left fields as is, right fields
// qualified with the right table's name when they would collide.
func joinedFields(left, right *Table) []Field {
	fields := make([]Field, 0, len(left.Fields())+len(right.Fields()))
	fields = append(fields, left.Fields()...)

	for _, f := range right.Fields() {
		name := f.Name
		if _, taken := left.Column(name); taken {
			name = right.Name() + "." + name
		}
		fields = append(fields, Field{Name: name, Kind: f.Kind})
	}
	return fields
}
