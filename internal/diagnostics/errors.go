// Package diagnostics defines the two error taxonomies of the interpreter:
// parse errors raised while turning source text into instructions and
// runtime errors raised while draining the instruction queue.
package diagnostics

import "fmt"

// ParseErrorKind identifies why a program could not be parsed.
type ParseErrorKind int

const (
	IncompleteString ParseErrorKind = iota + 1
	IncompleteList
	IncompleteQuotation
)

var parseErrorNames = map[ParseErrorKind]string{
	IncompleteString:    "IncompleteString",
	IncompleteList:      "IncompleteList",
	IncompleteQuotation: "IncompleteQuotation",
}

func (k ParseErrorKind) String() string {
	if name, ok := parseErrorNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParseError reports a malformed literal. Pos is the index of the offending
// word in the lexed input, Word the word itself.
type ParseError struct {
	Kind ParseErrorKind
	Pos  int
	Word string
}

func NewParseError(kind ParseErrorKind, pos int, word string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Word: word}
}

func (e *ParseError) Error() string {
	return e.Kind.String()
}

// Detail renders the error together with its position, for logs.
func (e *ParseError) Detail() string {
	if e.Word == "" {
		return fmt.Sprintf("%s at word %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%s at word %d (%q)", e.Kind, e.Pos, e.Word)
}

// Is reports whether target is a parse error of the same kind, so callers can
// match against the Err* sentinels with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrIncompleteString    = &ParseError{Kind: IncompleteString}
	ErrIncompleteList      = &ParseError{Kind: IncompleteList}
	ErrIncompleteQuotation = &ParseError{Kind: IncompleteQuotation}
)
