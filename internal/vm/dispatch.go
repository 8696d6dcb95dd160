package vm

import (
	"context"
	"log/slog"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/internal/value"
)

type arity int

const (
	nullary arity = iota
	unary
	binary
)

// operator is a built-in word. Exactly one of the function fields is set,
// matching arity. A non-nil result is pushed onto the stack.
type operator struct {
	arity   arity
	nullary func(vm *VM) (value.Value, error)
	unary   func(vm *VM, left value.Value) (value.Value, error)
	binary  func(vm *VM, left, right value.Value) (value.Value, error)
}

func op0(fn func(vm *VM) (value.Value, error)) operator {
	return operator{arity: nullary, nullary: fn}
}

func op1(fn func(vm *VM, left value.Value) (value.Value, error)) operator {
	return operator{arity: unary, unary: fn}
}

func op2(fn func(vm *VM, left, right value.Value) (value.Value, error)) operator {
	return operator{arity: binary, binary: fn}
}

// pure1 and pure2 lift value-level primitives that do not touch the VM.
func pure1(fn func(value.Value) (value.Value, error)) operator {
	return op1(func(_ *VM, left value.Value) (value.Value, error) { return fn(left) })
}

func pure2(fn func(left, right value.Value) (value.Value, error)) operator {
	return op2(func(_ *VM, left, right value.Value) (value.Value, error) { return fn(left, right) })
}

// IsBuiltin reports whether name is a reserved operator word.
func IsBuiltin(name string) bool {
	_, ok := operators[name]
	return ok
}

// step executes one instruction taken from the queue.
func (vm *VM) step(instr value.Value) error {
	switch v := instr.(type) {
	case *value.Symbol:
		vm.trace(v.Name)
		res, err := vm.dispatch(v.Name)
		if err != nil {
			return err
		}
		if res != nil {
			vm.push(res)
		}
	case *value.List:
		vm.push(vm.resolveList(v))
	default:
		vm.push(instr)
	}
	return nil
}

// dispatch pops the operands an operator needs and applies it. For binary
// operators the top of the stack is the right operand. Names that are not
// operators are resolved against the environment.
func (vm *VM) dispatch(name string) (value.Value, error) {
	op, ok := operators[name]
	if !ok {
		return vm.resolve(name), nil
	}
	var (
		res value.Value
		err error
	)
	switch op.arity {
	case nullary:
		res, err = op.nullary(vm)
	case unary:
		var left value.Value
		if left, err = vm.pop(); err == nil {
			res, err = op.unary(vm, left)
		}
	case binary:
		var left, right value.Value
		if right, err = vm.pop(); err == nil {
			if left, err = vm.pop(); err == nil {
				res, err = op.binary(vm, left, right)
			}
		}
	}
	if err != nil {
		return nil, diagnostics.WithOp(err, name)
	}
	return res, nil
}

// resolve looks a non-operator word up. A function schedules its body; a
// binding yields its value; anything else stays a Symbol.
func (vm *VM) resolve(name string) value.Value {
	if body, ok := vm.env.Function(name); ok {
		vm.schedule(body, value.NewSymbol(config.ExecOp))
		return nil
	}
	if v, ok := vm.env.Get(name); ok {
		return v
	}
	return value.NewSymbol(name)
}

// resolveList substitutes bound symbols inside a list literal, recursing into
// nested lists. Function names and quotations are left alone.
func (vm *VM) resolveList(list *value.List) *value.List {
	items := make([]value.Value, len(list.Items))
	for i, item := range list.Items {
		switch it := item.(type) {
		case *value.Symbol:
			if v, ok := vm.env.Get(it.Name); ok {
				items[i] = v
			} else {
				items[i] = it
			}
		case *value.List:
			items[i] = vm.resolveList(it)
		default:
			items[i] = item
		}
	}
	return value.NewList(items...)
}

func (vm *VM) trace(name string) {
	if !vm.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	vm.logger.LogAttrs(context.Background(), slog.LevelDebug, "dispatch",
		slog.String("op", name),
		slog.Int("depth", vm.depth),
		slog.Int("pending", vm.queue.Size()),
		slog.String("stack", vm.StackString()),
	)
}

func (vm *VM) traceFork(combinator string, items []value.Value) {
	if !vm.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	vm.logger.LogAttrs(context.Background(), slog.LevelDebug, "fork",
		slog.String("combinator", combinator),
		slog.Int("depth", vm.depth),
		slog.String("items", value.Display(items)),
	)
}
