package embed_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/pkg/embed"
)

func TestEmbedAPI(t *testing.T) {
	var out bytes.Buffer
	in := embed.New(embed.WithOutput(&out))

	// 1. Bind Go values
	if err := in.Set("scores", []int{3, 4, 5}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := in.Set("bonus", 10); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// 2. Define a function from Go
	if err := in.Define("boost", "bonus +"); err != nil {
		t.Fatalf("Define: %v", err)
	}

	// 3. Eval a program that uses both
	res, err := in.Eval("scores 0 foldl { boost + } dup print")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if res != int64(42) {
		t.Errorf("result = %#v, want int64(42)", res)
	}
	if got := out.String(); got != "42\n" {
		t.Errorf("printed %q", got)
	}
	if got := in.StackString(); got != "" {
		t.Errorf("result left on stack: %q", got)
	}

	// 4. Read results back
	if _, err := in.Eval("total 42 := 0"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	var total int
	if err := in.GetAs("total", &total); err != nil {
		t.Fatalf("GetAs: %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d", total)
	}
	var floats []float64
	if err := in.GetAs("scores", &floats); err != nil {
		t.Fatalf("GetAs: %v", err)
	}
	if diff := cmp.Diff([]float64{3, 4, 5}, floats); diff != "" {
		t.Errorf("scores as floats mismatch (-want +got):\n%s", diff)
	}
	var name string
	if err := in.GetAs("missing", &name); err == nil {
		t.Error("GetAs(missing) succeeded")
	}
	got, err := in.Get("scores")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff([]interface{}{int64(3), int64(4), int64(5)}, got); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"boost": "{ bonus + }"}, in.Functions()); diff != "" {
		t.Errorf("functions mismatch (-want +got):\n%s", diff)
	}
	bindings, err := in.Bindings()
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	wantBindings := map[string]interface{}{
		"scores": []interface{}{int64(3), int64(4), int64(5)},
		"bonus":  int64(10),
		"total":  int64(42),
	}
	if diff := cmp.Diff(wantBindings, bindings); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinNamesRejected(t *testing.T) {
	in := embed.New()
	if err := in.Set("dup", 1); err == nil {
		t.Error("Set(dup) succeeded")
	}
	if err := in.Define("map", "1"); err == nil {
		t.Error("Define(map) succeeded")
	}
	if err := in.Set("dupe", 1); err != nil {
		t.Errorf("Set(dupe): %v", err)
	}
	if len(in.Functions()) != 0 {
		t.Errorf("functions = %v, want none", in.Functions())
	}
}

func TestEvalValues(t *testing.T) {
	tests := []struct {
		code string
		want interface{}
	}{
		{"1 2 +", int64(3)},
		{"5 2 /", float32(2.5)},
		{"1 2 <", true},
		{`" a b "`, "a b"},
		{"nothing", embed.Symbol("nothing")},
		{"{ 1 + }", "{ 1 + }"},
		{`[ 1 " x " [ ] ]`, []interface{}{int64(1), "x", []interface{}{}}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := embed.New().Eval(tt.code)
			if err != nil {
				t.Fatalf("Eval(%q): %v", tt.code, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Eval(%q) mismatch (-want +got):\n%s", tt.code, diff)
			}
		})
	}
}

func TestEvalErrorsResetQueue(t *testing.T) {
	in := embed.New()
	_, err := in.Eval("5 1 0 / 7")
	if !errors.Is(err, diagnostics.ErrDivisionByZero) {
		t.Fatalf("err = %v", err)
	}
	_, err = in.Eval("{ 1")
	if !errors.Is(err, diagnostics.ErrIncompleteQuotation) {
		t.Fatalf("err = %v", err)
	}
	// The 7 left behind by the failed call is gone; the 5 stays on the stack.
	if got := in.StackString(); got != "5" {
		t.Errorf("stack = %q", got)
	}
	in.Reset()
	if got := in.StackString(); got != "" {
		t.Errorf("stack after Reset = %q", got)
	}
}

func TestInputOption(t *testing.T) {
	in := embed.New(embed.WithInput(strings.NewReader("12\n")))
	res, err := in.Eval("read parseInteger 1 +")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res != int64(13) {
		t.Errorf("result = %#v", res)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.bprog")
	src := "square { dup * } fun\nbase 7 :=\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	in := embed.New()
	if err := in.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	res, err := in.Eval("base square")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res != int64(49) {
		t.Errorf("result = %#v", res)
	}

	bad := filepath.Join(dir, "bad.bprog")
	if err := os.WriteFile(bad, []byte(`" open`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := in.LoadFile(bad); !errors.Is(err, diagnostics.ErrIncompleteString) {
		t.Errorf("LoadFile(bad) = %v", err)
	}
}
