package targets

import (
	"strings"
	"testing"

	"github.com/funvibe/bprog/internal/parser"
	"github.com/funvibe/bprog/internal/prettyprinter"
	"github.com/funvibe/bprog/internal/value"
	"github.com/funvibe/bprog/tests/fuzz/generators"
)

// FuzzRoundTrip checks that every parsed value prints back as source that
// parses to an equal value, and that printing is stable.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("[ 1 2.5 \" a b \" { dup * } ] x True"))
	f.Add([]byte("{ [ ] { } \" \" }"))
	LoadCorpus(f, "../../../tests")

	f.Fuzz(func(t *testing.T, data []byte) {
		program, err := parser.Parse(string(data))
		if err != nil {
			return
		}
		for _, v := range program {
			checkRoundTrip(t, v)
		}
	})
}

// FuzzValueRoundTrip does the same for generated value trees.
func FuzzValueRoundTrip(f *testing.F) {
	f.Add([]byte("seed"))
	f.Fuzz(func(t *testing.T, data []byte) {
		checkRoundTrip(t, generators.NewFromData(data).GenerateValue())
	})
}

func checkRoundTrip(t *testing.T, v value.Value) {
	t.Helper()
	if !literal(v) {
		return
	}
	code1 := prettyprinter.Source(v)
	program, err := parser.Parse(code1)
	if err != nil {
		t.Fatalf("printer produced invalid code %q: %v", code1, err)
	}
	if len(program) != 1 || !value.Equals(program[0], v) {
		t.Fatalf("%q parsed back to %v", code1, program)
	}
	if code2 := prettyprinter.Source(program[0]); code1 != code2 {
		t.Fatalf("printer instability: %q then %q", code1, code2)
	}
}

// literal reports whether v can be written as source text: strings must be
// single-spaced with no quote word inside, floats must be finite.
func literal(v value.Value) bool {
	switch v := v.(type) {
	case *value.String:
		words := strings.Fields(v.Value)
		for _, w := range words {
			if w == "\"" {
				return false
			}
		}
		return strings.Join(words, " ") == v.Value
	case *value.Float:
		return v.Inspect() != "NaN" && v.Inspect() != "inf" && v.Inspect() != "-inf"
	case *value.Symbol:
		_, err := parser.Parse(v.Name)
		return err == nil
	case *value.List:
		return allLiteral(v.Items)
	case *value.Block:
		return allLiteral(v.Items)
	}
	return true
}

func allLiteral(items []value.Value) bool {
	for _, item := range items {
		if !literal(item) {
			return false
		}
	}
	return true
}
