package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/funvibe/bprog/internal/transcript"
	"github.com/funvibe/bprog/internal/vm"
)

// runBatch parses and runs a whole program. The program must leave exactly
// one value on the stack.
func runBatch(ctx context.Context, machine *vm.VM, sess *session, source string, stdout io.Writer) int {
	if err := machine.Parse(source); err != nil {
		fmt.Fprintf(stdout, "error : %s\n", err)
		sess.record(ctx, source, transcript.OutcomeParseError, machine.StackString())
		return 1
	}

	_, err := machine.Run()
	if errors.Is(err, vm.ErrQuit) {
		sess.record(ctx, source, transcript.OutcomeOK, machine.StackString())
		return 0
	}
	fmt.Fprintf(stdout, "stack : %s\n", machine.StackString())
	if err != nil {
		fmt.Fprintf(stdout, "warn : %s\n", err)
		sess.record(ctx, source, transcript.OutcomeRunError, machine.StackString())
		return 1
	}
	sess.record(ctx, source, transcript.OutcomeOK, machine.StackString())
	return 0
}
