package value

import (
	"errors"
	"math"
	"testing"

	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/google/go-cmp/cmp"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", NewString("hello world"), `"hello world"`},
		{"integer", NewInteger(-42), "-42"},
		{"float", NewFloat(2.5), "2.5"},
		{"float integral", NewFloat(10), "10.0"},
		{"float negative", NewFloat(-0.25), "-0.25"},
		{"float nan", NewFloat(float32(math.NaN())), "NaN"},
		{"float large", NewFloat(1e20), "1e20"},
		{"float small", NewFloat(1e-7), "1e-7"},
		{"float small fraction", NewFloat(-1.5e-5), "-1.5e-5"},
		{"float below exponent range", NewFloat(1e15), "1000000000000000.0"},
		{"float lower bound", NewFloat(0.0001), "0.0001"},
		{"float zero", NewFloat(0), "0.0"},
		{"true", TRUE, "True"},
		{"false", FALSE, "False"},
		{"symbol", NewSymbol("age"), "age"},
		{"empty list", NewList(), "[]"},
		{"list", NewList(NewInteger(1), NewString("a"), NewList(TRUE)), `[1,"a",[True]]`},
		{"block", NewBlock(NewInteger(1), NewSymbol("+")), "{ 1 + }"},
		{"empty block", NewBlock(), "{  }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Inspect(); got != tt.want {
				t.Errorf("Inspect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	got := Display([]Value{NewInteger(1), NewString("x"), NewBlock(NewSymbol("dup"))})
	if got != `1 "x" { dup }` {
		t.Errorf("Display() = %q", got)
	}
}

func TestArithmetic(t *testing.T) {
	type binop func(Value, Value) (Value, error)
	tests := []struct {
		name  string
		op    binop
		left  Value
		right Value
		want  Value
	}{
		{"int add", Add, NewInteger(2), NewInteger(3), NewInteger(5)},
		{"mixed add", Add, NewInteger(2), NewFloat(0.5), NewFloat(2.5)},
		{"float sub int", Sub, NewFloat(2.5), NewInteger(1), NewFloat(1.5)},
		{"int mul", Mul, NewInteger(-4), NewInteger(3), NewInteger(-12)},
		{"int div yields float", Div, NewInteger(5), NewInteger(2), NewFloat(2.5)},
		{"float div", Div, NewFloat(1), NewFloat(4), NewFloat(0.25)},
		{"int floor div", IntDiv, NewInteger(5), NewInteger(2), NewInteger(2)},
		{"int floor div negative", IntDiv, NewInteger(-7), NewInteger(2), NewInteger(-4)},
		{"int floor div exact", IntDiv, NewInteger(-6), NewInteger(3), NewInteger(-2)},
		{"float div truncates", IntDiv, NewFloat(-7), NewInteger(2), NewInteger(-3)},
		{"add at max", Add, NewInteger(math.MaxInt64 - 1), NewInteger(1), NewInteger(math.MaxInt64)},
		{"sub at min", Sub, NewInteger(math.MinInt64 + 1), NewInteger(1), NewInteger(math.MinInt64)},
		{"mul at min", Mul, NewInteger(math.MinInt64 / 2), NewInteger(2), NewInteger(math.MinInt64)},
		{"mul by zero", Mul, NewInteger(math.MinInt64), NewInteger(0), NewInteger(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.left, tt.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	pairs := [][2]Value{
		{NewInteger(7), NewInteger(-3)},
		{NewInteger(100), NewInteger(0)},
		{NewFloat(1.5), NewFloat(0.25)},
		{NewInteger(4), NewFloat(0.5)},
	}
	for _, p := range pairs {
		sum, err := Add(p[0], p[1])
		if err != nil {
			t.Fatalf("Add(%s, %s): %v", p[0].Inspect(), p[1].Inspect(), err)
		}
		back, err := Sub(sum, p[1])
		if err != nil {
			t.Fatalf("Sub: %v", err)
		}
		eq, err := Equal(back, p[0])
		if err != nil {
			t.Fatalf("Equal: %v", err)
		}
		if eq != TRUE {
			t.Errorf("(%s + %s) - %s = %s", p[0].Inspect(), p[1].Inspect(), p[1].Inspect(), back.Inspect())
		}
		_, bothInt := p[0].(*Integer)
		if _, ok := p[1].(*Integer); !ok {
			bothInt = false
		}
		if _, isInt := sum.(*Integer); isInt != bothInt {
			t.Errorf("sum of %s and %s has kind %s", p[0].Inspect(), p[1].Inspect(), sum.Kind())
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	tests := []struct {
		name  string
		op    func(Value, Value) (Value, error)
		left  Value
		right Value
		want  error
	}{
		{"int div by zero", Div, NewInteger(5), NewInteger(0), diagnostics.ErrDivisionByZero},
		{"int floor div by zero", IntDiv, NewInteger(5), NewInteger(0), diagnostics.ErrDivisionByZero},
		{"float div by zero", Div, NewFloat(5), NewFloat(0), diagnostics.ErrDivisionByZero},
		{"coerced zero", Div, NewFloat(5), NewInteger(0), diagnostics.ErrDivisionByZero},
		{"string plus int", Add, NewString("a"), NewInteger(1), diagnostics.ErrNumberConversionError},
		{"string plus string", Add, NewString("a"), NewString("b"), diagnostics.ErrExpectedNumber},
		{"bool times bool", Mul, TRUE, FALSE, diagnostics.ErrExpectedNumber},
		{"add overflow", Add, NewInteger(math.MaxInt64), NewInteger(1), diagnostics.ErrNumberConversionError},
		{"add underflow", Add, NewInteger(math.MinInt64), NewInteger(-1), diagnostics.ErrNumberConversionError},
		{"sub overflow", Sub, NewInteger(math.MinInt64), NewInteger(1), diagnostics.ErrNumberConversionError},
		{"sub negative overflow", Sub, NewInteger(0), NewInteger(math.MinInt64), diagnostics.ErrNumberConversionError},
		{"mul overflow", Mul, NewInteger(math.MaxInt64/2 + 1), NewInteger(2), diagnostics.ErrNumberConversionError},
		{"mul min by minus one", Mul, NewInteger(math.MinInt64), NewInteger(-1), diagnostics.ErrNumberConversionError},
		{"floor div min by minus one", IntDiv, NewInteger(math.MinInt64), NewInteger(-1), diagnostics.ErrNumberConversionError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op(tt.left, tt.right)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestComparison(t *testing.T) {
	tests := []struct {
		name  string
		op    func(Value, Value) (Value, error)
		left  Value
		right Value
		want  bool
	}{
		{"int less", Less, NewInteger(1), NewInteger(2), true},
		{"mixed greater", Greater, NewFloat(2.5), NewInteger(2), true},
		{"mixed equal", Equal, NewInteger(2), NewFloat(2), true},
		{"string less", Less, NewString("abc"), NewString("abd"), true},
		{"bool order", Less, FALSE, TRUE, true},
		{"list equal", Equal, NewList(NewInteger(1), NewInteger(2)), NewList(NewInteger(1), NewInteger(2)), true},
		{"list elements not coerced", Equal, NewList(NewInteger(1)), NewList(NewFloat(1)), false},
		{"list lexicographic", Less, NewList(NewInteger(1), NewInteger(2)), NewList(NewInteger(1), NewInteger(3)), true},
		{"list prefix", Less, NewList(NewInteger(1)), NewList(NewInteger(1), NewInteger(0)), true},
		{"nan unordered", Less, NewFloat(float32(math.NaN())), NewFloat(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.left, tt.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != NativeBool(tt.want) {
				t.Errorf("got %s, want %t", got.Inspect(), tt.want)
			}
		})
	}
}

func TestComparisonErrors(t *testing.T) {
	if _, err := Less(NewBlock(), NewBlock()); !errors.Is(err, diagnostics.ErrExpectedBoolOrNumber) {
		t.Errorf("Less on blocks: error = %v", err)
	}
	if _, err := Equal(NewSymbol("a"), NewSymbol("a")); !errors.Is(err, diagnostics.ErrExpectedBoolOrNumber) {
		t.Errorf("Equal on symbols: error = %v", err)
	}
	if _, err := Equal(NewString("1"), NewInteger(1)); !errors.Is(err, diagnostics.ErrNumberConversionError) {
		t.Errorf("Equal across variants: error = %v", err)
	}
}

func TestLogic(t *testing.T) {
	if v, _ := Not(TRUE); v != FALSE {
		t.Errorf("not True = %s", v.Inspect())
	}
	if v, _ := And(TRUE, FALSE); v != FALSE {
		t.Errorf("True && False = %s", v.Inspect())
	}
	if v, _ := Or(TRUE, FALSE); v != TRUE {
		t.Errorf("True || False = %s", v.Inspect())
	}
	if _, err := And(TRUE, NewInteger(1)); !errors.Is(err, diagnostics.ErrExpectedBool) {
		t.Errorf("True && 1: error = %v", err)
	}
	if _, err := Not(NewInteger(0)); !errors.Is(err, diagnostics.ErrExpectedBool) {
		t.Errorf("not 0: error = %v", err)
	}
}

func TestCollections(t *testing.T) {
	list := NewList(NewInteger(1), NewInteger(2), NewInteger(3))

	if v, _ := Length(list); !Equals(v, NewInteger(3)) {
		t.Errorf("length = %s", v.Inspect())
	}
	if v, _ := Length(NewString("hello")); !Equals(v, NewInteger(5)) {
		t.Errorf("string length = %s", v.Inspect())
	}
	if v, _ := Length(NewBlock(NewSymbol("a"), NewSymbol("b"))); !Equals(v, NewInteger(2)) {
		t.Errorf("block length = %s", v.Inspect())
	}
	if v, _ := Empty(NewList()); v != TRUE {
		t.Errorf("empty [] = %s", v.Inspect())
	}
	if v, _ := Head(list); !Equals(v, NewInteger(1)) {
		t.Errorf("head = %s", v.Inspect())
	}
	if v, _ := Tail(list); !Equals(v, NewList(NewInteger(2), NewInteger(3))) {
		t.Errorf("tail = %s", v.Inspect())
	}
	if v, _ := Tail(NewList()); !Equals(v, NewList()) {
		t.Errorf("tail [] = %s", v.Inspect())
	}
	if v, _ := Cons(NewList(), NewInteger(1)); !Equals(v, NewList(NewInteger(1))) {
		t.Errorf("cons = %s", v.Inspect())
	}
	if v, _ := Append(list, NewList(NewInteger(4))); !Equals(v, NewList(NewInteger(1), NewInteger(2), NewInteger(3), NewInteger(4))) {
		t.Errorf("append = %s", v.Inspect())
	}

	if _, err := Head(NewList()); !errors.Is(err, diagnostics.ErrExpectedEnumerable) {
		t.Errorf("head []: error = %v", err)
	}
	if _, err := Cons(NewInteger(1), NewInteger(2)); !errors.Is(err, diagnostics.ErrExpectedList) {
		t.Errorf("cons on int: error = %v", err)
	}
	if _, err := Length(NewInteger(1)); !errors.Is(err, diagnostics.ErrExpectedEnumerable) {
		t.Errorf("length 1: error = %v", err)
	}
}

func TestConsDoesNotShareBacking(t *testing.T) {
	base := &List{Items: make([]Value, 1, 8)}
	base.Items[0] = NewInteger(1)

	a, _ := Append(base, NewList(NewInteger(2)))
	b, _ := Append(base, NewList(NewInteger(3)))
	if a.Inspect() != "[1,2]" || b.Inspect() != "[1,3]" {
		t.Errorf("appends interfered: %s %s", a.Inspect(), b.Inspect())
	}
}

func TestParseNumbers(t *testing.T) {
	if v, err := ParseInteger(NewString("-12")); err != nil || !Equals(v, NewInteger(-12)) {
		t.Errorf("parseInteger -12 = %v, %v", v, err)
	}
	if v, err := ParseFloat(NewString("3.5")); err != nil || !Equals(v, NewFloat(3.5)) {
		t.Errorf("parseFloat 3.5 = %v, %v", v, err)
	}
	if _, err := ParseInteger(NewString("12a")); !errors.Is(err, diagnostics.ErrNumberConversionError) {
		t.Errorf("parseInteger 12a: error = %v", err)
	}
	if _, err := ParseFloat(NewInteger(1)); !errors.Is(err, diagnostics.ErrExpectedString) {
		t.Errorf("parseFloat 1: error = %v", err)
	}
}
