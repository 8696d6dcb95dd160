package targets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/internal/vm"
)

// isResourceExhaustionError returns true if the error is caused by resource limits
// (timeout, fork depth) rather than a semantic bug.
func isResourceExhaustionError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, vm.ErrForkDepth)
}

// isLanguageError reports whether err belongs to one of the two error
// taxonomies, or is a clean quit.
func isLanguageError(err error) bool {
	var pe *diagnostics.ParseError
	var re *diagnostics.RuntimeError
	return errors.As(err, &pe) || errors.As(err, &re) || errors.Is(err, vm.ErrQuit)
}

// LoadCorpus adds every source file under dirs to the seed corpus.
func LoadCorpus(f *testing.F, dirs ...string) {
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(path, config.SourceFileExt) {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				f.Add(data)
			}
			return nil
		})
		if err != nil {
			// It's okay if we can't load examples, just log it
			f.Logf("Failed to load corpus from %s: %v", dir, err)
		}
	}
}
