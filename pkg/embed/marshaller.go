package embed

import (
	"fmt"
	"reflect"

	"github.com/funvibe/bprog/internal/prettyprinter"
	"github.com/funvibe/bprog/internal/value"
)

// Symbol is how an unresolved bprog symbol appears on the Go side.
type Symbol string

// Marshaller handles conversion between Go and bprog values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a bprog Value. Integers become Integer,
// floats Float, strings String, slices and arrays List.
func (m *Marshaller) ToValue(val interface{}) (value.Value, error) {
	if val == nil {
		return nil, fmt.Errorf("cannot convert nil")
	}
	if v, ok := val.(value.Value); ok {
		return v, nil
	}
	if s, ok := val.(Symbol); ok {
		return value.NewSymbol(string(s)), nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NewInteger(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.NewInteger(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.NewFloat(float32(v.Float())), nil
	case reflect.Bool:
		return value.NativeBool(v.Bool()), nil
	case reflect.String:
		return value.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		items := make([]value.Value, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := m.ToValue(v.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = item
		}
		return value.NewList(items...), nil
	}
	return nil, fmt.Errorf("cannot convert %T", val)
}

// FromValue converts a bprog Value to a Go value. targetType is optional; if
// provided, the result is converted to it.
func (m *Marshaller) FromValue(v value.Value, targetType reflect.Type) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	if targetType != nil && targetType == reflect.TypeOf((*value.Value)(nil)).Elem() {
		return v, nil
	}

	var out interface{}
	switch o := v.(type) {
	case *value.Integer:
		out = o.Value
	case *value.Float:
		out = o.Value
	case *value.Boolean:
		out = o.Value
	case *value.String:
		out = o.Value
	case *value.Symbol:
		out = Symbol(o.Name)
	case *value.Block:
		// Quotations have no Go counterpart; hand back their source.
		out = prettyprinter.Source(o)
	case *value.List:
		return m.listFromValue(o, targetType)
	default:
		return nil, fmt.Errorf("unsupported value %s", v.Inspect())
	}

	if targetType == nil {
		return out, nil
	}
	rv := reflect.ValueOf(out)
	if !rv.Type().ConvertibleTo(targetType) {
		return nil, fmt.Errorf("cannot convert %s to %s", v.Inspect(), targetType)
	}
	return rv.Convert(targetType).Interface(), nil
}

func (m *Marshaller) listFromValue(l *value.List, targetType reflect.Type) (interface{}, error) {
	if targetType == nil || targetType.Kind() == reflect.Interface {
		out := make([]interface{}, len(l.Items))
		for i, item := range l.Items {
			v, err := m.FromValue(item, nil)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	if targetType.Kind() != reflect.Slice {
		return nil, fmt.Errorf("cannot convert %s to %s", l.Inspect(), targetType)
	}
	out := reflect.MakeSlice(targetType, len(l.Items), len(l.Items))
	for i, item := range l.Items {
		v, err := m.FromValue(item, targetType.Elem())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(v))
	}
	return out.Interface(), nil
}
