package vm

import (
	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/internal/value"
)

func execSymbol() value.Value {
	return value.NewSymbol(config.ExecOp)
}

// builtinExec schedules the body of a quotation at the front of the queue.
func builtinExec(vm *VM, left value.Value) (value.Value, error) {
	block, ok := left.(*value.Block)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedQuotation)
	}
	vm.schedule(block.Items...)
	return nil, nil
}

// scheduleBranch runs a quotation's body, or the value itself when it is not
// a quotation.
func (vm *VM) scheduleBranch(branch value.Value) {
	if block, ok := branch.(*value.Block); ok {
		vm.schedule(block.Items...)
		return
	}
	vm.schedule(branch)
}

// builtinIf takes the two instructions that follow it as the then and else
// branches.
func builtinIf(vm *VM, left value.Value) (value.Value, error) {
	thenBranch, err := vm.nextInstruction()
	if err != nil {
		return nil, err
	}
	elseBranch, err := vm.nextInstruction()
	if err != nil {
		return nil, err
	}
	cond, ok := left.(*value.Boolean)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedBool)
	}
	if cond.Value {
		vm.scheduleBranch(thenBranch)
	} else {
		vm.scheduleBranch(elseBranch)
	}
	return nil, nil
}

// builtinLoop runs "loop cond body" in a fork seeded with the current stack.
// The condition is evaluated first; the body runs while it yields False. On
// True the fork's stack becomes the caller's stack.
func builtinLoop(vm *VM) (value.Value, error) {
	cond, err := vm.nextInstruction()
	if err != nil {
		return nil, err
	}
	body, err := vm.nextInstruction()
	if err != nil {
		return nil, err
	}
	if _, ok := cond.(*value.Block); !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedQuotation)
	}

	fork := vm.Fork()
	if err := fork.checkFork(); err != nil {
		return nil, err
	}
	fork.stack = vm.Stack()
	fork.traceFork(config.LoopOp, []value.Value{cond, body})
	fork.schedule(cond, execSymbol())
	for {
		if err := fork.Drain(); err != nil {
			return nil, err
		}
		top, err := fork.pop()
		if err != nil {
			return nil, err
		}
		done, ok := top.(*value.Boolean)
		if !ok {
			return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedBool)
		}
		if done.Value {
			vm.stack = fork.stack
			return nil, nil
		}
		fork.schedule(body, execSymbol(), cond, execSymbol())
	}
}

// builtinTimes runs the following instruction n times. A quotation
// contributes its body; a count of zero or less runs nothing. Repetitions are
// scheduled one at a time: each unit is followed by the remaining count and
// another times, so the queue never holds more than one copy of the body.
func builtinTimes(vm *VM, left value.Value) (value.Value, error) {
	body, err := vm.nextInstruction()
	if err != nil {
		return nil, err
	}
	count, ok := left.(*value.Integer)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedBoolOrNumber)
	}
	unit := []value.Value{body}
	if block, ok := body.(*value.Block); ok {
		unit = block.Items
	}
	if count.Value <= 0 || len(unit) == 0 {
		return nil, nil
	}
	if count.Value > 1 {
		vm.schedule(value.NewInteger(count.Value-1), value.NewSymbol(config.TimesOp), body)
	}
	vm.schedule(unit...)
	return nil, nil
}

// listAndOperator finds the operands of map and each. The operator normally
// follows the word in the queue ("list map { ... }"); when a quotation was
// pushed instead ("list { ... } map") the list sits beneath it.
func (vm *VM) listAndOperator(left value.Value) (*value.List, value.Value, error) {
	if block, ok := left.(*value.Block); ok {
		under, err := vm.pop()
		if err != nil {
			return nil, nil, err
		}
		list, ok := under.(*value.List)
		if !ok {
			return nil, nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
		}
		return list, block, nil
	}
	list, ok := left.(*value.List)
	if !ok {
		return nil, nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	op, err := vm.nextInstruction()
	if err != nil {
		return nil, nil, err
	}
	return list, op, nil
}

// apply runs items in fork and returns its single result.
func apply(fork *VM, combinator string, op value.Value, items ...value.Value) (value.Value, error) {
	if err := fork.checkFork(); err != nil {
		return nil, err
	}
	items = append(items, op)
	if _, ok := op.(*value.Block); ok {
		items = append(items, execSymbol())
	}
	fork.traceFork(combinator, items)
	fork.schedule(items...)
	return fork.Run()
}

// builtinMap collects the result of the quotation applied to each element.
// Each element runs in a fork that sees the caller's bindings but none of
// its functions.
func builtinMap(vm *VM, left value.Value) (value.Value, error) {
	list, op, err := vm.listAndOperator(left)
	if err != nil {
		return nil, err
	}
	block, ok := op.(*value.Block)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	results := make([]value.Value, 0, len(list.Items))
	for _, item := range list.Items {
		res, err := apply(vm.forkBindings(), config.MapOp, block, item)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return value.NewList(results...), nil
}

// builtinEach pushes the result for each element onto the caller's stack.
func builtinEach(vm *VM, left value.Value) (value.Value, error) {
	list, op, err := vm.listAndOperator(left)
	if err != nil {
		return nil, err
	}
	for _, item := range list.Items {
		res, err := apply(vm.Fork(), config.EachOp, op, item)
		if err != nil {
			return nil, err
		}
		vm.push(res)
	}
	return nil, nil
}

// builtinFoldl folds from the left. Accepted forms are "list seed foldl op"
// and "seed list { op } foldl".
// A Block on top always selects the second form, so the first form cannot
// take a quotation as its seed.
func builtinFoldl(vm *VM, left, right value.Value) (value.Value, error) {
	var (
		list *value.List
		acc  value.Value
		op   value.Value
	)
	if block, ok := right.(*value.Block); ok {
		l, ok := left.(*value.List)
		if !ok {
			return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
		}
		seed, err := vm.pop()
		if err != nil {
			return nil, err
		}
		list, acc, op = l, seed, block
	} else {
		l, ok := left.(*value.List)
		if !ok {
			return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
		}
		next, err := vm.nextInstruction()
		if err != nil {
			return nil, err
		}
		list, acc, op = l, right, next
	}

	switch op.(type) {
	case *value.Block, *value.Symbol:
	default:
		return nil, diagnostics.NewRuntimeError(diagnostics.ExpectedList)
	}
	for _, item := range list.Items {
		res, err := apply(vm.Fork(), config.FoldlOp, op, acc, item)
		if err != nil {
			return nil, err
		}
		acc = res
	}
	return acc, nil
}
