package value

import (
	"strconv"

	"github.com/funvibe/bprog/internal/diagnostics"
)

// Length counts the elements of a List or Block, or the bytes of a String.
func Length(v Value) (Value, error) {
	switch v := v.(type) {
	case *List:
		return NewInteger(int64(len(v.Items))), nil
	case *Block:
		return NewInteger(int64(len(v.Items))), nil
	case *String:
		return NewInteger(int64(len(v.Value))), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedEnumerable)
}

func Empty(v Value) (Value, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	return NativeBool(len(l.Items) == 0), nil
}

func Head(v Value) (Value, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	if len(l.Items) == 0 {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedEnumerable)
	}
	return l.Items[0], nil
}

// Tail drops the first element; the tail of an empty list is empty.
func Tail(v Value) (Value, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	if len(l.Items) == 0 {
		return NewList(), nil
	}
	items := make([]Value, len(l.Items)-1)
	copy(items, l.Items[1:])
	return NewList(items...), nil
}

// Cons prepends item to list.
func Cons(list, item Value) (Value, error) {
	l, ok := list.(*List)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	items := make([]Value, 0, len(l.Items)+1)
	items = append(items, item)
	items = append(items, l.Items...)
	return NewList(items...), nil
}

func Append(left, right Value) (Value, error) {
	l, lok := left.(*List)
	r, rok := right.(*List)
	if !lok || !rok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	items := make([]Value, 0, len(l.Items)+len(r.Items))
	items = append(items, l.Items...)
	items = append(items, r.Items...)
	return NewList(items...), nil
}

func ParseInteger(v Value) (Value, error) {
	s, ok := v.(*String)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedString)
	}
	i, err := strconv.ParseInt(s.Value, 10, 64)
	if err != nil {
		return nil, diagnostics.NewRuntimeError(diagnostics.NumberConversionError)
	}
	return NewInteger(i), nil
}

func ParseFloat(v Value) (Value, error) {
	s, ok := v.(*String)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedString)
	}
	f, err := strconv.ParseFloat(s.Value, 32)
	if err != nil {
		return nil, diagnostics.NewRuntimeError(diagnostics.NumberConversionError)
	}
	return NewFloat(float32(f)), nil
}
