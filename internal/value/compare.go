package value

import (
	"strings"

	"github.com/funvibe/bprog/internal/diagnostics"
)

// Less, Greater and Equal compare after numeric coercion. They are defined
// over Integer, Float, Boolean, String and List operands.
func Less(left, right Value) (Value, error) {
	c, ok, err := compareOperands(left, right)
	if err != nil {
		return nil, err
	}
	return NativeBool(ok && c < 0), nil
}

func Greater(left, right Value) (Value, error) {
	c, ok, err := compareOperands(left, right)
	if err != nil {
		return nil, err
	}
	return NativeBool(ok && c > 0), nil
}

func Equal(left, right Value) (Value, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return nil, err
	}
	switch l.Kind() {
	case INTEGER_VAL, FLOAT_VAL, BOOLEAN_VAL, STRING_VAL, LIST_VAL:
		return NativeBool(Equals(l, r)), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedBoolOrNumber)
}

func compareOperands(left, right Value) (int, bool, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return 0, false, err
	}
	switch l.Kind() {
	case INTEGER_VAL, FLOAT_VAL, BOOLEAN_VAL, STRING_VAL, LIST_VAL:
		c, ok := order(l, r)
		return c, ok, nil
	}
	return 0, false, diagnostics.NewRuntimeError(diagnostics.ExpectedBoolOrNumber)
}

// Equals is structural equality without coercion: Integer 1 and Float 1.0
// are different values. NaN is not equal to itself.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *String:
		return a.Value == b.(*String).Value
	case *Integer:
		return a.Value == b.(*Integer).Value
	case *Float:
		return a.Value == b.(*Float).Value
	case *Boolean:
		return a.Value == b.(*Boolean).Value
	case *Symbol:
		return a.Name == b.(*Symbol).Name
	case *List:
		return equalItems(a.Items, b.(*List).Items)
	case *Block:
		return equalItems(a.Items, b.(*Block).Items)
	}
	return false
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

// order returns the sign of a compared to b. Values of different variants
// order by Kind; sequences order lexicographically. ok is false when the
// values are unordered (a NaN was involved).
func order(a, b Value) (int, bool) {
	if a.Kind() != b.Kind() {
		return sign(int(a.Kind()) - int(b.Kind())), true
	}
	switch a := a.(type) {
	case *String:
		return strings.Compare(a.Value, b.(*String).Value), true
	case *Symbol:
		return strings.Compare(a.Name, b.(*Symbol).Name), true
	case *Integer:
		y := b.(*Integer).Value
		switch {
		case a.Value < y:
			return -1, true
		case a.Value > y:
			return 1, true
		}
		return 0, true
	case *Float:
		y := b.(*Float).Value
		switch {
		case a.Value < y:
			return -1, true
		case a.Value > y:
			return 1, true
		case a.Value == y:
			return 0, true
		}
		return 0, false
	case *Boolean:
		y := b.(*Boolean).Value
		if a.Value == y {
			return 0, true
		}
		if !a.Value {
			return -1, true
		}
		return 1, true
	case *List:
		return orderItems(a.Items, b.(*List).Items)
	case *Block:
		return orderItems(a.Items, b.(*Block).Items)
	}
	return 0, false
}

func orderItems(a, b []Value) (int, bool) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, ok := order(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	return sign(len(a) - len(b)), true
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
