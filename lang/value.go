package lang

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant of a runtime [Value].
type Kind int

const (
	KindNone Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
	KindFunction
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindFunction:
		return "function"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a runtime object. String returns its display form.
//
// Integer, Float, String, Boolean and None are value types. List, Map and
// Function are pointers, so copying a Value that holds one of them copies
// the reference and every alias observes mutation.
type Value interface {
	Kind() Kind
	String() string
}

type (
	// Integer is a 64-bit signed integer value.
	Integer int64
	// Float is a 64-bit floating point value.
	Float float64
	// String is a text value.
	String string
	// Boolean is a truth value.
	Boolean bool
	// None is the unit value.
	None struct{}
)

func (Integer) Kind() Kind { return KindInteger }
func (Float) Kind() Kind   { return KindFloat }
func (String) Kind() Kind  { return KindString }
func (Boolean) Kind() Kind { return KindBoolean }
func (None) Kind() Kind    { return KindNone }

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }
func (s String) String() string  { return string(s) }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }
func (None) String() string      { return "None" }

// String formats f in its shortest form, keeping a trailing ".0" on
// integral values so they remain distinguishable from integers.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return s
	}

	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// List is an ordered, mutable sequence of values.
type List struct {
	items []Value
}

// NewList returns a new list holding items.
func NewList(items ...Value) *List {
	return &List{items: items}
}

func (*List) Kind() Kind { return KindList }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the element at index i. The caller must bounds-check.
func (l *List) At(i int) Value { return l.items[i] }

// Append adds values to the end of the list in place.
func (l *List) Append(v ...Value) { l.items = append(l.items, v...) }

// All returns an iterator over the list elements.
func (l *List) All() iter.Seq2[int, Value] { return slices.All(l.items) }

// Values returns a copy of the list elements.
func (l *List) Values() []Value { return slices.Clone(l.items) }

func (l *List) String() string {
	var b strings.Builder

	b.WriteByte('[')

	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(repr(v))
	}

	b.WriteByte(']')

	return b.String()
}

// Map is a mutable association of hashable keys to values.
type Map struct {
	items map[Value]Value
}

// NewMap returns a new empty map.
func NewMap() *Map {
	return &Map{items: make(map[Value]Value)}
}

func (*Map) Kind() Kind { return KindMap }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.items) }

// Get returns the value bound to key.
func (m *Map) Get(key Value) (Value, bool) {
	if !hashable(key) {
		return nil, false
	}

	v, ok := m.items[mapKey(key)]

	return v, ok
}

// Put binds key to value, overwriting any existing entry.
func (m *Map) Put(key, value Value) error {
	if !hashable(key) {
		return invalidOperation("unhashable map key of type %s", key.Kind())
	}

	m.items[mapKey(key)] = value

	return nil
}

// Keys returns the map keys ordered by kind, then by display form.
func (m *Map) Keys() []Value {
	return slices.SortedFunc(maps.Keys(m.items), func(a, b Value) int {
		if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
			return c
		}

		return strings.Compare(a.String(), b.String())
	})
}

// All returns an iterator over the map entries in [Map.Keys] order.
func (m *Map) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

func (m *Map) String() string {
	var b strings.Builder

	b.WriteByte('{')

	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteString(", ")
		}

		first = false

		b.WriteString(repr(k))
		b.WriteString(": ")
		b.WriteString(repr(v))
	}

	b.WriteByte('}')

	return b.String()
}

// hashable reports whether v can be used as a map key.
func hashable(v Value) bool {
	switch v.(type) {
	case Integer, Float, String, Boolean, None:
		return true
	default:
		return false
	}
}

// repr is the display form used for values nested in containers.
func repr(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}

	return v.String()
}

// Equal reports whether a and b are structurally equal. Unlike the ==
// operator it never coerces: values of different kinds are unequal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *List:
		y, ok := b.(*List)
		if !ok || x.Len() != y.Len() {
			return false
		}

		if x == y {
			return true
		}

		return slices.EqualFunc(x.items, y.items, Equal)

	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for k, v := range x.items {
			w, ok := y.items[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}

		return true

	case *Function:
		y, ok := b.(*Function)

		return ok && x.Equal(y)

	default:
		return a == b
	}
}

// ToNative converts v into plain Go data: int64, float64, string, bool,
// nil, []any and map[string]any. Map keys use their display form and
// functions become their display string.
func ToNative(v Value) any {
	switch x := v.(type) {
	case Integer:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case Boolean:
		return bool(x)
	case None, nil:
		return nil
	case *List:
		out := make([]any, 0, x.Len())
		for _, e := range x.items {
			out = append(out, ToNative(e))
		}

		return out
	case *Map:
		out := make(map[string]any, x.Len())
		for k, e := range x.All() {
			out[k.String()] = ToNative(e)
		}

		return out
	default:
		return v.String()
	}
}

// FromNative converts plain Go data into a [Value].
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return None{}, nil
	case Value:
		return x, nil
	case bool:
		return Boolean(x), nil
	case string:
		return String(x), nil
	case int:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, invalidOperation("integer %d overflows", x)
		}

		return Integer(x), nil
	case float64:
		return Float(x), nil
	case []any:
		list := NewList()
		for _, e := range x {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			list.Append(ev)
		}

		return list, nil
	case map[string]any:
		m := NewMap()
		for k, e := range x {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			m.items[String(k)] = ev
		}

		return m, nil
	}

	// Remaining numeric and container kinds (int32, map[any]any, ...).
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Integer(int64(rv.Uint())), nil
	case reflect.Float32:
		return Float(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		list := NewList()
		for i := range rv.Len() {
			ev, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}

			list.Append(ev)
		}

		return list, nil
	case reflect.Map:
		m := NewMap()
		for it := rv.MapRange(); it.Next(); {
			kv, err := FromNative(it.Key().Interface())
			if err != nil {
				return nil, err
			}

			ev, err := FromNative(it.Value().Interface())
			if err != nil {
				return nil, err
			}

			if err := m.Put(kv, ev); err != nil {
				return nil, err
			}
		}

		return m, nil
	}

	return nil, invalidOperation("cannot convert %T to a value", v)
}

func typeName(v Value) string {
	if v == nil {
		return "nil"
	}

	return v.Kind().String()
}

// describe renders a value for error messages.
func describe(v Value) string {
	return fmt.Sprintf("%s(%s)", typeName(v), repr(v))
}
