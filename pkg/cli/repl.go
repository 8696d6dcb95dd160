package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/transcript"
	"github.com/funvibe/bprog/internal/vm"
)

// historyCommand lists the transcript of the current session.
const historyCommand = ":h"

type lineReader interface {
	Prompt(prompt string) (string, error)
}

// pipeReader serves REPL lines from a non-terminal. It shares its buffer with
// the machine so that "read" consumes the following line.
type pipeReader struct {
	in *bufio.Reader
}

func (p *pipeReader) Prompt(string) (string, error) {
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// linerReader is the terminal line editor with history.
type linerReader struct {
	ln *liner.State
}

func (l *linerReader) Prompt(prompt string) (string, error) {
	line, err := l.ln.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		l.ln.AppendHistory(line)
	}
	return line, err
}

func openLiner(historyFile string) *liner.State {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return ln
}

func closeLiner(ln *liner.State, historyFile string) {
	if historyFile != "" {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	ln.Close()
}

// runRepl evaluates one line at a time against a persistent machine. Errors
// are reported and the session continues with the stack and environment
// intact.
func runRepl(ctx context.Context, machine *vm.VM, sess *session, settings *config.Settings, stdin io.Reader, stdout io.Writer) int {
	var reader lineReader
	if isTerminal(stdin) {
		ln := openLiner(settings.HistoryFile)
		defer closeLiner(ln, settings.HistoryFile)
		reader = &linerReader{ln: ln}
	} else {
		in := bufio.NewReader(stdin)
		machine.SetInput(in)
		reader = &pipeReader{in: in}
	}

	for {
		line, err := reader.Prompt(settings.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(stdout, "error : %s\n", err)
			return 1
		}
		if evalLine(ctx, machine, sess, line, stdout) {
			return 0
		}
	}
}

// evalLine runs one REPL line and reports whether the program asked to quit.
func evalLine(ctx context.Context, machine *vm.VM, sess *session, line string, stdout io.Writer) bool {
	switch strings.TrimSpace(line) {
	case "":
		return false
	case historyCommand:
		if err := sess.history(ctx, stdout, 0); err != nil {
			fmt.Fprintf(stdout, "error : %s\n", err)
		}
		return false
	}

	outcome := transcript.OutcomeOK
	if err := machine.Parse(line); err != nil {
		fmt.Fprintf(stdout, "error : %s\n", err)
		machine.ResetQueue()
		outcome = transcript.OutcomeParseError
	} else if err := machine.Drain(); err != nil {
		if errors.Is(err, vm.ErrQuit) {
			sess.record(ctx, line, transcript.OutcomeOK, machine.StackString())
			return true
		}
		fmt.Fprintf(stdout, "warn : %s\n", err)
		machine.ResetQueue()
		outcome = transcript.OutcomeRunError
	}
	fmt.Fprintf(stdout, "stack : %s\n", machine.StackString())
	sess.record(ctx, line, outcome, machine.StackString())
	return false
}
