package diagnostics

import (
	"errors"
	"fmt"
	"testing"
)

func TestRuntimeErrorIs(t *testing.T) {
	err := NewRuntimeError(DivisionByZero)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("errors.Is(%v, ErrDivisionByZero) = false", err)
	}
	if errors.Is(err, ErrStackEmpty) {
		t.Fatalf("errors.Is(%v, ErrStackEmpty) = true", err)
	}

	wrapped := fmt.Errorf("evaluating line 3: %w", WithOp(err, "div"))
	if !errors.Is(wrapped, ErrDivisionByZero) {
		t.Fatalf("wrapped error lost its kind: %v", wrapped)
	}
}

func TestRuntimeErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewRuntimeError(StackEmpty), "StackEmpty"},
		{WithOp(NewRuntimeError(ExpectedList), "head"), "ExpectedList (head)"},
		{WithOp(WithOp(NewRuntimeError(ExpectedList), "head"), "map"), "ExpectedList (head)"},
		{NewRuntimeError(ProgramFinishedWithMultipleValues), "ProgramFinishedWithMultipleValues"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseErrorIs(t *testing.T) {
	err := NewParseError(IncompleteQuotation, 4, "{")
	if !errors.Is(err, ErrIncompleteQuotation) {
		t.Fatalf("errors.Is(%v, ErrIncompleteQuotation) = false", err)
	}
	if errors.Is(err, ErrIncompleteList) {
		t.Fatalf("errors.Is(%v, ErrIncompleteList) = true", err)
	}
	if err.Error() != "IncompleteQuotation" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Detail() != `IncompleteQuotation at word 4 ("{")` {
		t.Errorf("Detail() = %q", err.Detail())
	}
}

func TestUnknownKindString(t *testing.T) {
	if got := RuntimeErrorKind(99).String(); got != "RuntimeErrorKind(99)" {
		t.Errorf("String() = %q", got)
	}
	if got := ParseErrorKind(0).String(); got != "ParseErrorKind(0)" {
		t.Errorf("String() = %q", got)
	}
}
