package lang

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Binary applies op to the operands as left OP right.
func Binary(op BinaryOp, left, right Value) (Value, error) {
	switch op {
	case OpAdd:
		return Add(left, right)
	case OpSubtract, OpDivide:
		return arithmetic(op, left, right)
	case OpMultiply:
		return Multiply(left, right)
	case OpEquals, OpNotEquals, OpLess, OpGreater, OpLessEquals, OpGreaterEquals:
		return Compare(op, left, right)
	case OpIndex:
		return Index(left, right)
	default:
		return nil, invalidOperation("unknown binary operator %s", op)
	}
}

// numeric classifies v for arithmetic and ordering. Booleans coerce to
// Integer 0 or 1; every other non-number is rejected.
func numeric(v Value) (Value, bool) {
	switch x := v.(type) {
	case Integer, Float:
		return x, true
	case Boolean:
		if x {
			return Integer(1), true
		}

		return Integer(0), true
	default:
		return nil, false
	}
}

func toFloat(v Value) float64 {
	if i, ok := v.(Integer); ok {
		return float64(i)
	}

	return float64(v.(Float))
}

func arithmetic(op BinaryOp, left, right Value) (Value, error) {
	a, okA := numeric(left)
	b, okB := numeric(right)

	if !okA || !okB {
		return nil, unsupported(op, left, right)
	}

	if op == OpDivide {
		return Float(toFloat(a) / toFloat(b)), nil
	}

	ai, intA := a.(Integer)
	bi, intB := b.(Integer)

	if intA && intB {
		switch op {
		case OpAdd:
			return ai + bi, nil
		case OpSubtract:
			return ai - bi, nil
		case OpMultiply:
			return ai * bi, nil
		}
	}

	af, bf := toFloat(a), toFloat(b)

	switch op {
	case OpAdd:
		return Float(af + bf), nil
	case OpSubtract:
		return Float(af - bf), nil
	case OpMultiply:
		return Float(af * bf), nil
	}

	return nil, unsupported(op, left, right)
}

// Add implements +. Lists are concatenated into the left operand's
// storage, which is then returned.
func Add(left, right Value) (Value, error) {
	switch x := left.(type) {
	case String:
		return String(string(x) + right.String()), nil

	case *List:
		if y, ok := right.(*List); ok {
			x.Append(y.items...)

			return x, nil
		}
	}

	if y, ok := right.(String); ok {
		return String(left.String() + string(y)), nil
	}

	return arithmetic(OpAdd, left, right)
}

// Multiply implements *, including string repetition and list cycling.
func Multiply(left, right Value) (Value, error) {
	switch x := left.(type) {
	case String:
		if n, ok := right.(Integer); ok {
			return repeatString(x, n)
		}

	case *List:
		if n, ok := right.(Integer); ok {
			return cycleList(x, n)
		}

	case Integer:
		switch y := right.(type) {
		case String:
			return repeatString(y, x)
		case *List:
			return cycleList(y, x)
		}
	}

	return arithmetic(OpMultiply, left, right)
}

// maxRepeatLen bounds the length of a repeated string (bytes) or cycled
// list (elements).
const maxRepeatLen = 1 << 30

// repeatCount returns n as a count of copies of something size long, or an
// error if the result would exceed maxRepeatLen.
func repeatCount(size int, n Integer) (int, error) {
	if n <= 0 || size == 0 {
		return 0, nil
	}

	if n > Integer(maxRepeatLen/size) {
		return 0, invalidOperation("repetition count %d too large", n)
	}

	return int(n), nil
}

func repeatString(s String, n Integer) (Value, error) {
	count, err := repeatCount(len(s), n)
	if err != nil {
		return nil, err
	}

	return String(strings.Repeat(string(s), count)), nil
}

func cycleList(l *List, n Integer) (Value, error) {
	count, err := repeatCount(l.Len(), n)
	if err != nil {
		return nil, err
	}

	out := make([]Value, 0, l.Len()*count)
	for range count {
		out = append(out, l.items...)
	}

	return NewList(out...), nil
}

// Compare implements the six comparison operators.
func Compare(op BinaryOp, left, right Value) (Value, error) {
	a, okA := numeric(left)
	b, okB := numeric(right)

	if okA && okB {
		var c int

		ai, intA := a.(Integer)
		bi, intB := b.(Integer)

		if intA && intB {
			c = compareOrdered(ai, bi)
		} else {
			af, bf := toFloat(a), toFloat(b)
			if math.IsNaN(af) || math.IsNaN(bf) {
				return Boolean(op == OpNotEquals), nil
			}

			c = compareOrdered(af, bf)
		}

		switch op {
		case OpEquals:
			return Boolean(c == 0), nil
		case OpNotEquals:
			return Boolean(c != 0), nil
		case OpLess:
			return Boolean(c < 0), nil
		case OpGreater:
			return Boolean(c > 0), nil
		case OpLessEquals:
			return Boolean(c <= 0), nil
		case OpGreaterEquals:
			return Boolean(c >= 0), nil
		}
	}

	if op != OpEquals && op != OpNotEquals {
		return nil, unsupported(op, left, right)
	}

	if left.Kind() != right.Kind() {
		return nil, unsupported(op, left, right)
	}

	switch left.Kind() {
	case KindString, KindList, KindMap, KindNone, KindFunction:
		eq := Equal(left, right)
		if op == OpNotEquals {
			eq = !eq
		}

		return Boolean(eq), nil
	}

	return nil, unsupported(op, left, right)
}

func compareOrdered[T Integer | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Negate implements unary minus. Booleans are logically inverted.
func Negate(v Value) (Value, error) {
	switch x := v.(type) {
	case Integer:
		return -x, nil
	case Float:
		return -x, nil
	case Boolean:
		return !x, nil
	default:
		return nil, invalidOperation("negation for %s not supported", describe(v))
	}
}

// mapKey returns the key v is stored under. Booleans coerce to 0 or 1.
func mapKey(v Value) Value {
	if b, ok := v.(Boolean); ok {
		if b {
			return Integer(1)
		}

		return Integer(0)
	}

	return v
}

// indexPosition converts an index operand to a position. Booleans coerce
// to 0 or 1.
func indexPosition(v Value) (int, bool) {
	switch x := v.(type) {
	case Integer:
		return int(x), true
	case Boolean:
		if x {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// Index reads container[index].
func Index(container, index Value) (Value, error) {
	switch x := container.(type) {
	case String:
		i, ok := indexPosition(index)
		if !ok {
			return nil, invalidIndex(container, index)
		}

		if i < 0 || i >= utf8.RuneCountInString(string(x)) {
			return nil, outOfBounds(i)
		}

		return String([]rune(string(x))[i]), nil

	case *List:
		i, ok := indexPosition(index)
		if !ok {
			return nil, invalidIndex(container, index)
		}

		if i < 0 || i >= x.Len() {
			return nil, outOfBounds(i)
		}

		return x.items[i], nil

	case *Map:
		if !hashable(index) {
			return nil, invalidIndex(container, index)
		}

		v, ok := x.Get(index)
		if !ok {
			return nil, ErrKey.Wrap(keyError{index})
		}

		return v, nil

	default:
		return nil, invalidIndex(container, index)
	}
}

// SetIndex writes container[index] = value. Map writes always insert or
// overwrite.
func SetIndex(container, index, value Value) error {
	switch x := container.(type) {
	case *List:
		i, ok := indexPosition(index)
		if !ok {
			return invalidIndex(container, index)
		}

		if i < 0 || i >= x.Len() {
			return outOfBounds(i)
		}

		x.items[i] = value

		return nil

	case *Map:
		return x.Put(index, value)

	default:
		return invalidOperation(
			"assigning to an index of %s not supported", describe(container),
		)
	}
}

type keyError struct{ key Value }

func (e keyError) Error() string { return repr(e.key) }

func outOfBounds(i int) error {
	return ErrIndexOutOfBounds.Wrap(positionError(i))
}

type positionError int

func (e positionError) Error() string { return "position " + Integer(e).String() }

func invalidIndex(container, index Value) error {
	return invalidOperation(
		"indexing %s with %s not supported", describe(container), describe(index),
	)
}

func unsupported(op BinaryOp, left, right Value) error {
	return invalidOperation(
		"%s between %s and %s not supported", op.verb(), describe(left), describe(right),
	)
}
