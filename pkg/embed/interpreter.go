// Package embed runs bprog programs from Go. An Interpreter keeps its stack,
// bindings and functions between calls, the way an interactive session does.
package embed

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/funvibe/bprog/internal/parser"
	"github.com/funvibe/bprog/internal/prettyprinter"
	"github.com/funvibe/bprog/internal/value"
	"github.com/funvibe/bprog/internal/vm"
)

// Interpreter wraps a top-level VM and provides a high-level embedding API.
type Interpreter struct {
	machine    *vm.VM
	marshaller *Marshaller
}

type Option func(*vm.VM)

func WithInput(r io.Reader) Option {
	return func(m *vm.VM) { m.SetInput(r) }
}

func WithOutput(w io.Writer) Option {
	return func(m *vm.VM) { m.SetOutput(w) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *vm.VM) { m.SetLogger(logger) }
}

func New(opts ...Option) *Interpreter {
	m := vm.New()
	for _, opt := range opts {
		opt(m)
	}
	return &Interpreter{machine: m, marshaller: NewMarshaller()}
}

// Parse queues source text. Nothing is queued if it does not parse.
func (in *Interpreter) Parse(source string) error {
	return in.machine.Parse(source)
}

// Drain runs everything queued, leaving results on the stack.
func (in *Interpreter) Drain() error {
	return in.machine.Drain()
}

// Run drains the queue and returns the single value left on the stack.
func (in *Interpreter) Run() (value.Value, error) {
	return in.machine.Run()
}

// Eval parses and runs code and converts the result to a Go value. The result
// is taken off the stack. After an error the queue is cleared but the stack is
// kept, as in an interactive session.
func (in *Interpreter) Eval(code string) (interface{}, error) {
	if err := in.machine.Parse(code); err != nil {
		in.machine.ResetQueue()
		return nil, err
	}
	res, err := in.machine.Run()
	if err != nil {
		in.machine.ResetQueue()
		return nil, err
	}
	in.machine.ClearStack()
	return in.marshaller.FromValue(res, nil)
}

// LoadFile parses and drains a program file.
func (in *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := in.machine.Parse(string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return in.machine.Drain()
}

// Set binds a Go value under name, as ":=" would. Operator names are
// rejected since lookups never reach them.
func (in *Interpreter) Set(name string, val interface{}) error {
	if vm.IsBuiltin(name) {
		return fmt.Errorf("set %s: name is a builtin operator", name)
	}
	v, err := in.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	in.machine.Env().Set(name, v)
	return nil
}

// Get returns the Go form of a binding.
func (in *Interpreter) Get(name string) (interface{}, error) {
	v, ok := in.machine.Env().Get(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return in.marshaller.FromValue(v, nil)
}

// GetAs is Get with conversion to the type of target, which must be a
// non-nil pointer.
func (in *Interpreter) GetAs(name string, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}
	v, ok := in.machine.Env().Get(name)
	if !ok {
		return fmt.Errorf("variable '%s' not found", name)
	}
	out, err := in.marshaller.FromValue(v, rv.Elem().Type())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	rv.Elem().Set(reflect.ValueOf(out))
	return nil
}

// Define parses body as a quotation and registers it as a function, as "fun"
// would.
func (in *Interpreter) Define(name, body string) error {
	if vm.IsBuiltin(name) {
		return fmt.Errorf("define %s: name is a builtin operator", name)
	}
	items, err := parser.Parse(body)
	if err != nil {
		return fmt.Errorf("define %s: %w", name, err)
	}
	in.machine.Env().SetFunction(name, value.NewBlock(items...))
	return nil
}

// Bindings returns the Go form of every binding.
func (in *Interpreter) Bindings() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for name, v := range in.machine.Env().Bindings() {
		goVal, err := in.marshaller.FromValue(v, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = goVal
	}
	return out, nil
}

// Functions lists defined functions with their bodies in source form.
func (in *Interpreter) Functions() map[string]string {
	out := make(map[string]string)
	for _, name := range in.machine.Env().FunctionNames() {
		body, _ := in.machine.Env().Function(name)
		out[name] = prettyprinter.Source(body)
	}
	return out
}

func (in *Interpreter) Stack() []value.Value {
	return in.machine.Stack()
}

func (in *Interpreter) StackString() string {
	return in.machine.StackString()
}

// Reset drops pending instructions and the stack. Bindings and functions
// are kept.
func (in *Interpreter) Reset() {
	in.machine.ResetQueue()
	in.machine.ClearStack()
}
