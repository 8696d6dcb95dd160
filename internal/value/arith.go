package value

import (
	"math"

	"github.com/funvibe/bprog/internal/diagnostics"
)

// coerce brings two operands to a common variant. Operands of the same
// variant pass through; an Integer/Float pair promotes the Integer.
func coerce(left, right Value) (Value, Value, error) {
	if left.Kind() == right.Kind() {
		return left, right, nil
	}
	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Float); ok {
			return NewFloat(float32(l.Value)), r, nil
		}
	case *Float:
		if r, ok := right.(*Integer); ok {
			return l, NewFloat(float32(r.Value)), nil
		}
	}
	return nil, nil, diagnostics.NewRuntimeError(diagnostics.NumberConversionError)
}

// checked turns an overflowing Integer result into NumberConversionError.
func checked(i int64, ok bool) (Value, error) {
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.NumberConversionError)
	}
	return NewInteger(i), nil
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return c, false
	}
	return c, c/b == a
}

func Add(left, right Value) (Value, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return nil, err
	}
	switch l := l.(type) {
	case *Integer:
		return checked(addInt(l.Value, r.(*Integer).Value))
	case *Float:
		return NewFloat(l.Value + r.(*Float).Value), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedNumber)
}

func Sub(left, right Value) (Value, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return nil, err
	}
	switch l := l.(type) {
	case *Integer:
		return checked(subInt(l.Value, r.(*Integer).Value))
	case *Float:
		return NewFloat(l.Value - r.(*Float).Value), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedNumber)
}

func Mul(left, right Value) (Value, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return nil, err
	}
	switch l := l.(type) {
	case *Integer:
		return checked(mulInt(l.Value, r.(*Integer).Value))
	case *Float:
		return NewFloat(l.Value * r.(*Float).Value), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedNumber)
}

// isZero reports whether a coerced divisor is zero.
func isZero(v Value) bool {
	switch v := v.(type) {
	case *Integer:
		return v.Value == 0
	case *Float:
		return v.Value == 0
	}
	return false
}

// Div always produces a Float, even for two Integers.
func Div(left, right Value) (Value, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return nil, err
	}
	if isZero(r) {
		return nil, diagnostics.NewRuntimeError(diagnostics.DivisionByZero)
	}
	switch l := l.(type) {
	case *Integer:
		return NewFloat(float32(l.Value) / float32(r.(*Integer).Value)), nil
	case *Float:
		return NewFloat(l.Value / r.(*Float).Value), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedNumber)
}

// IntDiv floors the quotient of two Integers. A Float quotient is truncated
// toward zero.
func IntDiv(left, right Value) (Value, error) {
	l, r, err := coerce(left, right)
	if err != nil {
		return nil, err
	}
	if isZero(r) {
		return nil, diagnostics.NewRuntimeError(diagnostics.DivisionByZero)
	}
	switch l := l.(type) {
	case *Integer:
		x, y := l.Value, r.(*Integer).Value
		if x == math.MinInt64 && y == -1 {
			return nil, diagnostics.NewRuntimeError(diagnostics.NumberConversionError)
		}
		q := x / y
		if x%y != 0 && (x < 0) != (y < 0) {
			q--
		}
		return NewInteger(q), nil
	case *Float:
		q := float64(l.Value / r.(*Float).Value)
		if math.IsNaN(q) || math.IsInf(q, 0) || q > math.MaxInt64 || q < math.MinInt64 {
			return nil, diagnostics.NewRuntimeError(diagnostics.NumberConversionError)
		}
		return NewInteger(int64(q)), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedNumber)
}
