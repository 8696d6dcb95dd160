// Package cli is the bprog command line: an interactive REPL and a batch
// runner over the same engine.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/utils"
	"github.com/funvibe/bprog/internal/vm"
)

// options are the parsed command line flags.
type options struct {
	configPath string
	repl       bool
	batch      bool
	trace      bool
	program    string
	file       string
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("bprog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to bprog.yaml")
	fs.BoolVar(&opts.repl, "repl", false, "force interactive mode")
	fs.BoolVar(&opts.batch, "batch", false, "force batch mode (read the whole program from stdin)")
	fs.BoolVar(&opts.trace, "trace", false, "log every dispatched instruction to stderr")
	fs.StringVar(&opts.program, "e", "", "run `program` and exit")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: bprog [flags] [file%s]\n", config.SourceFileExt)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	if opts.repl && opts.batch {
		return nil, errors.New("-repl and -batch are mutually exclusive")
	}
	if opts.program != "" && opts.file != "" {
		return nil, errors.New("-e and a file argument are mutually exclusive")
	}
	return opts, nil
}

func loadSettings(opts *options) (*config.Settings, error) {
	path := opts.configPath
	if path == "" {
		found, err := config.FindSettings(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	settings := config.DefaultSettings()
	if path != "" {
		loaded, err := config.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}
	settings.HistoryFile = utils.ExpandHome(settings.HistoryFile)
	settings.Transcript = utils.ExpandHome(settings.Transcript)
	return settings, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// selectMode decides between REPL and batch. An inline program or a file is
// always batch; flags beat settings; otherwise a terminal gets the REPL.
func selectMode(opts *options, settings *config.Settings, stdin io.Reader) config.Mode {
	switch {
	case opts.program != "" || opts.file != "":
		return config.ModeBatch
	case opts.repl:
		return config.ModeRepl
	case opts.batch:
		return config.ModeBatch
	case settings.Mode != config.ModeAuto:
		return settings.Mode
	case isTerminal(stdin):
		return config.ModeRepl
	}
	return config.ModeBatch
}

func newLogger(trace bool, stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// Main runs the command line and returns the process exit status.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "bprog: %s\n", err)
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, "bprog "+config.Version)
		return 0
	}

	settings, err := loadSettings(opts)
	if err != nil {
		fmt.Fprintf(stderr, "bprog: %s\n", err)
		return 2
	}
	logger := newLogger(opts.trace || settings.Trace, stderr)
	mode := selectMode(opts, settings, stdin)

	ctx := context.Background()
	sess := newSession(ctx, settings.Transcript, logger)
	defer sess.Close()
	logger.Info("session start", slog.String("session", sess.id), slog.String("mode", string(mode)))

	machine := vm.New()
	machine.SetInput(stdin)
	machine.SetOutput(stdout)
	machine.SetLogger(logger)
	machine.SetContext(ctx)

	if mode == config.ModeRepl {
		return runRepl(ctx, machine, sess, settings, stdin, stdout)
	}

	var source string
	switch {
	case opts.program != "":
		source = opts.program
	case opts.file != "":
		if !utils.HasSourceExt(opts.file) {
			logger.Warn("unexpected file extension", slog.String("file", opts.file))
		}
		data, err := os.ReadFile(opts.file)
		if err != nil {
			fmt.Fprintf(stderr, "bprog: %s\n", err)
			return 1
		}
		source = string(data)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "bprog: reading stdin: %s\n", err)
			return 1
		}
		source = string(data)
	}
	return runBatch(ctx, machine, sess, source, stdout)
}

// Run is the process entry point.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()
	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
