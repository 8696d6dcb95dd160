// Package vm executes parsed programs. A VM owns an operand stack, a queue of
// pending instructions and an Environment. Instructions are taken from the
// front of the queue one at a time; control constructs read their operands
// straight from the queue and schedule work by prepending to it.
package vm

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/internal/lexer"
	"github.com/funvibe/bprog/internal/parser"
	"github.com/funvibe/bprog/internal/pipeline"
	"github.com/funvibe/bprog/internal/value"
)

// ErrQuit is returned by Drain and Run when the program executes :q.
var ErrQuit = errors.New("quit")

// ErrForkDepth is returned when combinators nest deeper than MaxForkDepth.
var ErrForkDepth = errors.New("maximum fork depth exceeded")

const (
	// contextCheckInterval is how many instructions run between cancellation checks.
	contextCheckInterval = 1024

	MaxForkDepth = 10000
)

type VM struct {
	stack []value.Value
	queue *doublylinkedlist.List
	env   *Environment

	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
	ctx    context.Context

	depth int // fork nesting, for tracing
	steps int
}

// New creates a top-level context reading from stdin and writing to stdout.
func New() *VM {
	return &VM{
		queue:  doublylinkedlist.New(),
		env:    NewEnvironment(),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:    context.Background(),
	}
}

func (vm *VM) SetInput(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		vm.in = br
		return
	}
	vm.in = bufio.NewReader(r)
}

func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

func (vm *VM) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	vm.logger = logger
}

// SetContext sets a context checked while draining; cancelling it aborts the
// running program with the context's error.
func (vm *VM) SetContext(ctx context.Context) {
	vm.ctx = ctx
}

func (vm *VM) Env() *Environment {
	return vm.env
}

// Fork creates a child context with copies of both name tables and an empty
// stack and queue. I/O, logger and context are shared.
func (vm *VM) Fork() *VM {
	return vm.fork(vm.env.Clone())
}

// forkBindings is Fork without the function table.
func (vm *VM) forkBindings() *VM {
	return vm.fork(vm.env.CloneBindings())
}

func (vm *VM) fork(env *Environment) *VM {
	return &VM{
		queue:  doublylinkedlist.New(),
		env:    env,
		in:     vm.in,
		out:    vm.out,
		logger: vm.logger,
		ctx:    vm.ctx,
		depth:  vm.depth + 1,
	}
}

// --- stack ---

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() (value.Value, error) {
	n := len(vm.stack)
	if n == 0 {
		return nil, diagnostics.NewRuntimeError(diagnostics.StackEmpty)
	}
	v := vm.stack[n-1]
	vm.stack[n-1] = nil
	vm.stack = vm.stack[:n-1]
	return v, nil
}

func (vm *VM) peek() (value.Value, error) {
	if len(vm.stack) == 0 {
		return nil, diagnostics.NewRuntimeError(diagnostics.StackEmpty)
	}
	return vm.stack[len(vm.stack)-1], nil
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VM) Stack() []value.Value {
	out := make([]value.Value, len(vm.stack))
	copy(out, vm.stack)
	return out
}

// ClearStack empties the operand stack.
func (vm *VM) ClearStack() {
	vm.stack = nil
}

// StackString is the display form of the whole stack.
func (vm *VM) StackString() string {
	return value.Display(vm.stack)
}

// --- queue ---

// schedule places items at the front of the queue, keeping their order.
func (vm *VM) schedule(items ...value.Value) {
	if len(items) == 0 {
		return
	}
	vals := make([]interface{}, len(items))
	for i, item := range items {
		vals[i] = item
	}
	vm.queue.Prepend(vals...)
}

// Load appends a parsed program to the back of the queue.
func (vm *VM) Load(program []value.Value) {
	for _, item := range program {
		vm.queue.Add(item)
	}
}

// nextInstruction removes and returns the front of the queue.
func (vm *VM) nextInstruction() (value.Value, error) {
	front, ok := vm.queue.Get(0)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.InstructionListEmpty)
	}
	vm.queue.Remove(0)
	return front.(value.Value), nil
}

// Pending is the number of instructions still queued.
func (vm *VM) Pending() int {
	return vm.queue.Size()
}

// ResetQueue drops any pending instructions, for recovery after an error.
func (vm *VM) ResetQueue() {
	vm.queue.Clear()
}

// --- running ---

// Parse lexes and parses source and appends the result to the queue. On error
// the queue is left unchanged.
func (vm *VM) Parse(source string) error {
	ctx := pipeline.NewPipelineContext(source)
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	vm.Load(ctx.Program)
	return nil
}

// Drain executes instructions until the queue is empty. On error the stack
// keeps whatever the failing instruction left behind and the remaining queue
// is untouched.
func (vm *VM) Drain() error {
	for !vm.queue.Empty() {
		if err := vm.checkContext(); err != nil {
			return err
		}
		instr, err := vm.nextInstruction()
		if err != nil {
			return err
		}
		if err := vm.step(instr); err != nil {
			return err
		}
	}
	return nil
}

// Run drains the queue and requires exactly one value on the stack, which it
// returns.
func (vm *VM) Run() (value.Value, error) {
	if err := vm.Drain(); err != nil {
		return nil, err
	}
	switch len(vm.stack) {
	case 0:
		return nil, diagnostics.NewRuntimeError(diagnostics.StackEmpty)
	case 1:
		return vm.stack[0], nil
	default:
		return nil, diagnostics.NewRuntimeError(diagnostics.ProgramFinishedWithMultipleValues)
	}
}

// checkFork guards entry into a forked run.
func (vm *VM) checkFork() error {
	if vm.depth > MaxForkDepth {
		return ErrForkDepth
	}
	if vm.ctx == nil {
		return nil
	}
	return vm.ctx.Err()
}

func (vm *VM) checkContext() error {
	vm.steps++
	if vm.steps%contextCheckInterval != 0 || vm.ctx == nil {
		return nil
	}
	return vm.ctx.Err()
}
