// Package value implements the datum manipulated by the interpreter: a closed
// set of variants (String, Integer, Float, Boolean, List, Block, Symbol) and
// the primitive operations defined over them.
//
// Values are immutable once constructed. Operations that produce a new List
// or Block always allocate fresh element slices, so a Value may be shared
// freely between stacks, binding tables and forked contexts.
package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value. The declaration order doubles as the
// ordering used when list elements of different variants are compared.
type Kind int

const (
	STRING_VAL Kind = iota
	INTEGER_VAL
	FLOAT_VAL
	BOOLEAN_VAL
	LIST_VAL
	BLOCK_VAL
	SYMBOL_VAL
)

var kindNames = [...]string{
	STRING_VAL:  "String",
	INTEGER_VAL: "Integer",
	FLOAT_VAL:   "Float",
	BOOLEAN_VAL: "Boolean",
	LIST_VAL:    "List",
	BLOCK_VAL:   "Block",
	SYMBOL_VAL:  "Symbol",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

type Value interface {
	Kind() Kind
	// Inspect renders the value in display format.
	Inspect() string
}

// String
type String struct {
	Value string
}

func (s *String) Kind() Kind      { return STRING_VAL }
func (s *String) Inspect() string { return "\"" + s.Value + "\"" }

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Kind() Kind      { return INTEGER_VAL }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Float
type Float struct {
	Value float32
}

func (f *Float) Kind() Kind      { return FLOAT_VAL }
func (f *Float) Inspect() string { return displayFloat(f.Value) }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Kind() Kind { return BOOLEAN_VAL }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// List is a data sequence. Symbols inside a list literal are resolved against
// the environment when the list is pushed.
type List struct {
	Items []Value
}

func (l *List) Kind() Kind { return LIST_VAL }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.Inspect()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Block is a quotation: an instruction sequence that only runs when scheduled
// by exec or a control construct.
type Block struct {
	Items []Value
}

func (b *Block) Kind() Kind { return BLOCK_VAL }
func (b *Block) Inspect() string {
	parts := make([]string, len(b.Items))
	for i, item := range b.Items {
		parts[i] = item.Inspect()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// Symbol is a bare word, resolved by name at run time.
type Symbol struct {
	Name string
}

func (s *Symbol) Kind() Kind      { return SYMBOL_VAL }
func (s *Symbol) Inspect() string { return s.Name }

// Shared constants for results that carry no identity.
var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func NewString(s string) *String    { return &String{Value: s} }
func NewInteger(i int64) *Integer   { return &Integer{Value: i} }
func NewFloat(f float32) *Float     { return &Float{Value: f} }
func NewSymbol(name string) *Symbol { return &Symbol{Name: name} }

func NewList(items ...Value) *List {
	if items == nil {
		items = []Value{}
	}
	return &List{Items: items}
}

func NewBlock(items ...Value) *Block {
	if items == nil {
		items = []Value{}
	}
	return &Block{Items: items}
}

// FormatFloat renders f in decimal notation that always contains a '.', so
// the text reads back as a Float literal.
func FormatFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "NaN"
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	}
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// displayFloat is FormatFloat for magnitudes in [1e-4, 1e16) and shortest
// exponent form ("1e20", "-1.5e-7") outside it.
func displayFloat(f float32) string {
	a := float32(math.Abs(float64(f)))
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) || f == 0 || (a >= 1e-4 && a < 1e16) {
		return FormatFloat(f)
	}
	s := strconv.FormatFloat(float64(f), 'e', -1, 32)
	mant, exp, _ := strings.Cut(s, "e")
	n, _ := strconv.Atoi(exp)
	return mant + "e" + strconv.Itoa(n)
}

// Display joins the display form of each value with single spaces, bottom of
// the stack first.
func Display(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Inspect()
	}
	return strings.Join(parts, " ")
}
