package attr

import (
	"maps"
	"slices"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

// Kind identifies which value an Attribute carries.
type Kind int

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
	KindInts
	KindFloats
	KindStrings
)

var kindNames = map[Kind]string{
	KindInt:     "INT",
	KindFloat:   "FLOAT",
	KindString:  "STRING",
	KindInts:    "INTS",
	KindFloats:  "FLOATS",
	KindStrings: "STRINGS",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNDEFINED"
}

// Value is the set of Go types an Attribute can be read as with [As].
type Value interface {
	int64 | float32 | string | []int64 | []float32 | []string
}

// Attribute is a named leaf of typed data. The zero value has no kind and
// matches no type in [As].
type Attribute struct {
	name    string
	kind    Kind
	i       int64
	f       float32
	s       string
	ints    []int64
	floats  []float32
	strings []string
}

// Int returns an INT attribute.
func Int(name string, v int64) Attribute { return Attribute{name: name, kind: KindInt, i: v} }

// Float returns a FLOAT attribute.
func Float(name string, v float32) Attribute { return Attribute{name: name, kind: KindFloat, f: v} }

// String returns a STRING attribute.
func String(name, v string) Attribute { return Attribute{name: name, kind: KindString, s: v} }

// Ints returns an INTS attribute holding a copy of v.
func Ints(name string, v []int64) Attribute {
	return Attribute{name: name, kind: KindInts, ints: slices.Clone(v)}
}

// Floats returns a FLOATS attribute holding a copy of v.
func Floats(name string, v []float32) Attribute {
	return Attribute{name: name, kind: KindFloats, floats: slices.Clone(v)}
}

// Strings returns a STRINGS attribute holding a copy of v.
func Strings(name string, v []string) Attribute {
	return Attribute{name: name, kind: KindStrings, strings: slices.Clone(v)}
}

// Name returns the attribute name.
func (a Attribute) Name() string { return a.name }

// Kind returns which value the attribute carries.
func (a Attribute) Kind() Kind { return a.kind }

// Len returns the number of elements of a list attribute, or 1 for a scalar.
func (a Attribute) Len() int {
	switch a.kind {
	case KindInts:
		return len(a.ints)
	case KindFloats:
		return len(a.floats)
	case KindStrings:
		return len(a.strings)
	}
	return 1
}

// As returns the attribute's value as T. It fails with
// ErrCodeAttributeTypeMismatch when T does not match the stored kind.
// List values are returned as copies.
func As[T Value](a Attribute) (T, error) {
	var out T
	want := kindOf(out)
	if a.kind != want {
		return out, errors.New(errors.ErrCodeAttributeTypeMismatch,
			"attribute %q is %s, not %s", a.name, a.kind, want)
	}
	switch p := any(&out).(type) {
	case *int64:
		*p = a.i
	case *float32:
		*p = a.f
	case *string:
		*p = a.s
	case *[]int64:
		*p = slices.Clone(a.ints)
	case *[]float32:
		*p = slices.Clone(a.floats)
	case *[]string:
		*p = slices.Clone(a.strings)
	}
	return out, nil
}

func kindOf(v any) Kind {
	switch v.(type) {
	case int64:
		return KindInt
	case float32:
		return KindFloat
	case string:
		return KindString
	case []int64:
		return KindInts
	case []float32:
		return KindFloats
	case []string:
		return KindStrings
	}
	return 0
}

// Equal reports whether two attributes have the same name, kind and value.
func (a Attribute) Equal(b Attribute) bool {
	return a.name == b.name && a.kind == b.kind &&
		a.i == b.i && a.f == b.f && a.s == b.s &&
		slices.Equal(a.ints, b.ints) &&
		slices.Equal(a.floats, b.floats) &&
		slices.Equal(a.strings, b.strings)
}

// Map holds the attributes of one operation keyed by name.
type Map map[string]Attribute

// Find returns the attribute with the given name, if present.
func Find(m Map, name string) (Attribute, bool) {
	a, ok := m[name]
	return a, ok
}

// Names returns the attribute names in sorted order.
func (m Map) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Sorted returns the attributes ordered by name.
func (m Map) Sorted() []Attribute {
	out := make([]Attribute, 0, len(m))
	for _, name := range m.Names() {
		out = append(out, m[name])
	}
	return out
}
