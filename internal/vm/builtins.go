package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/internal/lexer"
	"github.com/funvibe/bprog/internal/prettyprinter"
	"github.com/funvibe/bprog/internal/value"
)

// operators is filled in init: combinators reach back into dispatch, which
// reads the table.
var operators map[string]operator

func init() {
	operators = map[string]operator{
		// stack and environment
		config.SwapOp:      op0(builtinSwap),
		config.DupOp:       op0(builtinDup),
		config.PopOp:       op1(builtinPop),
		config.QuoteOp:     op0(builtinQuote),
		config.ReadOp:      op0(builtinRead),
		config.PrintOp:     op1(builtinPrint),
		config.BindingsOp:  op0(builtinBindings),
		config.FunctionsOp: op0(builtinFunctions),
		config.QuitOp:      op0(builtinQuit),
		config.AssignOp:    op2(builtinAssign),
		config.FunOp:       op2(builtinFun),

		// arithmetic, comparison, logic
		config.AddOp:    pure2(value.Add),
		config.SubOp:    pure2(value.Sub),
		config.MulOp:    pure2(value.Mul),
		config.DivOp:    pure2(value.Div),
		config.IntDivOp: pure2(value.IntDiv),
		config.LessOp:   pure2(value.Less),
		config.MoreOp:   pure2(value.Greater),
		config.EqualOp:  pure2(value.Equal),
		config.AndOp:    pure2(value.And),
		config.OrOp:     pure2(value.Or),
		config.NotOp:    pure1(value.Not),

		// strings and lists
		config.LengthOp:       pure1(value.Length),
		config.ParseIntegerOp: pure1(value.ParseInteger),
		config.ParseFloatOp:   pure1(value.ParseFloat),
		config.WordsOp:        pure1(builtinWords),
		config.EmptyOp:        pure1(value.Empty),
		config.HeadOp:         pure1(value.Head),
		config.TailOp:         pure1(value.Tail),
		config.ConsOp:         pure2(value.Cons),
		config.AppendOp:       pure2(value.Append),

		// control flow
		config.ExecOp:  op1(builtinExec),
		config.IfOp:    op1(builtinIf),
		config.LoopOp:  op0(builtinLoop),
		config.TimesOp: op1(builtinTimes),
		config.MapOp:   op1(builtinMap),
		config.EachOp:  op1(builtinEach),
		config.FoldlOp: op2(builtinFoldl),
	}
}

func builtinSwap(vm *VM) (value.Value, error) {
	right, err := vm.pop()
	if err != nil {
		return nil, err
	}
	left, err := vm.pop()
	if err != nil {
		vm.push(right)
		return nil, err
	}
	vm.push(right)
	vm.push(left)
	return nil, nil
}

func builtinDup(vm *VM) (value.Value, error) {
	return vm.peek()
}

func builtinPop(_ *VM, _ value.Value) (value.Value, error) {
	return nil, nil
}

// builtinQuote pushes the next raw instruction without executing it.
func builtinQuote(vm *VM) (value.Value, error) {
	return vm.nextInstruction()
}

// builtinRead pushes one line of input without its line terminator. At end
// of input it pushes the empty string.
func builtinRead(vm *VM) (value.Value, error) {
	line, err := vm.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return value.NewString(line), nil
}

func builtinPrint(vm *VM, left value.Value) (value.Value, error) {
	if _, err := fmt.Fprintln(vm.out, left.Inspect()); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return nil, nil
}

func builtinBindings(vm *VM) (value.Value, error) {
	for _, name := range vm.env.BindingNames() {
		v, _ := vm.env.Get(name)
		if _, err := fmt.Fprintf(vm.out, "%s = %s\n", name, prettyprinter.Source(v)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func builtinFunctions(vm *VM) (value.Value, error) {
	for _, name := range vm.env.FunctionNames() {
		body, _ := vm.env.Function(name)
		if _, err := fmt.Fprintf(vm.out, "%s = %s\n", name, prettyprinter.Source(body)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func builtinQuit(_ *VM) (value.Value, error) {
	return nil, ErrQuit
}

func builtinAssign(vm *VM, left, right value.Value) (value.Value, error) {
	name, ok := left.(*value.Symbol)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedVariable)
	}
	vm.env.Set(name.Name, right)
	return nil, nil
}

func builtinFun(vm *VM, left, right value.Value) (value.Value, error) {
	name, ok := left.(*value.Symbol)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedVariable)
	}
	body, ok := right.(*value.Block)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedVariable)
	}
	vm.env.SetFunction(name.Name, body)
	return nil, nil
}

// builtinWords splits a string the way the lexer splits source text.
func builtinWords(left value.Value) (value.Value, error) {
	s, ok := left.(*value.String)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedString)
	}
	words := lexer.Lex(s.Value)
	items := make([]value.Value, len(words))
	for i, w := range words {
		items[i] = value.NewString(w)
	}
	return value.NewList(items...), nil
}
