package value

import "github.com/funvibe/bprog/internal/diagnostics"

// Logical operators take Boolean operands only; nothing is coerced.

func Not(v Value) (Value, error) {
	b, ok := v.(*Boolean)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedBool)
	}
	return NativeBool(!b.Value), nil
}

func And(left, right Value) (Value, error) {
	l, r, err := booleans(left, right)
	if err != nil {
		return nil, err
	}
	return NativeBool(l && r), nil
}

func Or(left, right Value) (Value, error) {
	l, r, err := booleans(left, right)
	if err != nil {
		return nil, err
	}
	return NativeBool(l || r), nil
}

func booleans(left, right Value) (bool, bool, error) {
	l, lok := left.(*Boolean)
	r, rok := right.(*Boolean)
	if !lok || !rok {
		return false, false, diagnostics.NewRuntimeError(diagnostics.ExpectedBool)
	}
	return l.Value, r.Value, nil
}
