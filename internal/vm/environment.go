package vm

import (
	"sort"

	"github.com/funvibe/bprog/internal/value"
)

// Environment holds the two name tables of a context. Bindings map names to
// values; functions map names to quotation bodies that run on lookup.
type Environment struct {
	bindings  map[string]value.Value
	functions map[string]*value.Block
}

func NewEnvironment() *Environment {
	return &Environment{
		bindings:  make(map[string]value.Value),
		functions: make(map[string]*value.Block),
	}
}

func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

func (e *Environment) Set(name string, val value.Value) value.Value {
	e.bindings[name] = val
	return val
}

func (e *Environment) Function(name string) (*value.Block, bool) {
	body, ok := e.functions[name]
	return body, ok
}

func (e *Environment) SetFunction(name string, body *value.Block) {
	e.functions[name] = body
}

// Clone copies both tables. Values are immutable, so copying the maps is
// enough to isolate the clone.
func (e *Environment) Clone() *Environment {
	c := e.CloneBindings()
	for k, v := range e.functions {
		c.functions[k] = v
	}
	return c
}

// CloneBindings copies the binding table only; the clone has no functions.
func (e *Environment) CloneBindings() *Environment {
	c := NewEnvironment()
	for k, v := range e.bindings {
		c.bindings[k] = v
	}
	return c
}

// Bindings returns a copy of the binding table.
func (e *Environment) Bindings() map[string]value.Value {
	store := make(map[string]value.Value, len(e.bindings))
	for k, v := range e.bindings {
		store[k] = v
	}
	return store
}

func (e *Environment) BindingNames() []string {
	return sortedKeys(e.bindings)
}

func (e *Environment) FunctionNames() []string {
	return sortedKeys(e.functions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
