package diagnostics

import "fmt"

// RuntimeErrorKind identifies why an instruction failed.
type RuntimeErrorKind int

const (
	StackEmpty RuntimeErrorKind = iota + 1
	InstructionListEmpty
	UnknownSymbol
	ExpectedBool
	ExpectedBoolOrNumber
	ExpectedNumber
	ExpectedEnumerable
	ExpectedQuotation
	ExpectedString
	ExpectedList
	ExpectedVariable
	ExpectedSymbol
	DivisionByZero
	ProgramFinishedWithMultipleValues
	NumberConversionError
)

var runtimeErrorNames = map[RuntimeErrorKind]string{
	StackEmpty:                        "StackEmpty",
	InstructionListEmpty:              "InstructionListEmpty",
	UnknownSymbol:                     "UnknownSymbol",
	ExpectedBool:                      "ExpectedBool",
	ExpectedBoolOrNumber:              "ExpectedBoolOrNumber",
	ExpectedNumber:                    "ExpectedNumber",
	ExpectedEnumerable:                "ExpectedEnumerable",
	ExpectedQuotation:                 "ExpectedQuotation",
	ExpectedString:                    "ExpectedString",
	ExpectedList:                      "ExpectedList",
	ExpectedVariable:                  "ExpectedVariable",
	ExpectedSymbol:                    "ExpectedSymbol",
	DivisionByZero:                    "DivisionByZero",
	ProgramFinishedWithMultipleValues: "ProgramFinishedWithMultipleValues",
	NumberConversionError:             "NumberConversionError",
}

func (k RuntimeErrorKind) String() string {
	if name, ok := runtimeErrorNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RuntimeErrorKind(%d)", int(k))
}

// RuntimeError is returned by every failing operation. Op names the operation
// that failed when it is known.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Op   string
}

// NewRuntimeError creates an error not yet attributed to an operation.
func NewRuntimeError(kind RuntimeErrorKind) *RuntimeError {
	return &RuntimeError{Kind: kind}
}

func (e *RuntimeError) Error() string {
	if e.Op == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s (%s)", e.Kind, e.Op)
}

// Is matches runtime errors by kind only.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	return ok && t.Kind == e.Kind
}

// WithOp attributes an unattributed runtime error to op. Errors that already
// name an operation, and foreign errors, are returned unchanged.
func WithOp(err error, op string) error {
	re, ok := err.(*RuntimeError)
	if !ok || re.Op != "" {
		return err
	}
	return &RuntimeError{Kind: re.Kind, Op: op}
}

var (
	ErrStackEmpty                        = &RuntimeError{Kind: StackEmpty}
	ErrInstructionListEmpty              = &RuntimeError{Kind: InstructionListEmpty}
	ErrUnknownSymbol                     = &RuntimeError{Kind: UnknownSymbol}
	ErrExpectedBool                      = &RuntimeError{Kind: ExpectedBool}
	ErrExpectedBoolOrNumber              = &RuntimeError{Kind: ExpectedBoolOrNumber}
	ErrExpectedNumber                    = &RuntimeError{Kind: ExpectedNumber}
	ErrExpectedEnumerable                = &RuntimeError{Kind: ExpectedEnumerable}
	ErrExpectedQuotation                 = &RuntimeError{Kind: ExpectedQuotation}
	ErrExpectedString                    = &RuntimeError{Kind: ExpectedString}
	ErrExpectedList                      = &RuntimeError{Kind: ExpectedList}
	ErrExpectedVariable                  = &RuntimeError{Kind: ExpectedVariable}
	ErrExpectedSymbol                    = &RuntimeError{Kind: ExpectedSymbol}
	ErrDivisionByZero                    = &RuntimeError{Kind: DivisionByZero}
	ErrProgramFinishedWithMultipleValues = &RuntimeError{Kind: ProgramFinishedWithMultipleValues}
	ErrNumberConversionError             = &RuntimeError{Kind: NumberConversionError}
)
