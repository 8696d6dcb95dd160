package config

const SourceFileExt = ".bprog"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".bprog", ".bp"}

const Version = "0.4.0"

// Literal words recognized by the parser
const (
	ListOpen    = "["
	ListClose   = "]"
	BlockOpen   = "{"
	BlockClose  = "}"
	StringQuote = "\""
)

// Stack and environment operations
const (
	SwapOp      = "swap"
	DupOp       = "dup"
	PopOp       = "pop"
	QuoteOp     = "'"
	ReadOp      = "read"
	PrintOp     = "print"
	BindingsOp  = ":b"
	FunctionsOp = ":f"
	QuitOp      = ":q"
	AssignOp    = ":="
	FunOp       = "fun"
)

// Arithmetic, comparison and logical operations
const (
	AddOp    = "+"
	SubOp    = "-"
	MulOp    = "*"
	DivOp    = "/"
	IntDivOp = "div"
	LessOp   = "<"
	MoreOp   = ">"
	EqualOp  = "=="
	AndOp    = "&&"
	OrOp     = "||"
	NotOp    = "not"
)

// String and list operations
const (
	LengthOp       = "length"
	ParseIntegerOp = "parseInteger"
	ParseFloatOp   = "parseFloat"
	WordsOp        = "words"
	EmptyOp        = "empty"
	HeadOp         = "head"
	TailOp         = "tail"
	ConsOp         = "cons"
	AppendOp       = "append"
)

// Control flow and combinators
const (
	ExecOp  = "exec"
	IfOp    = "if"
	LoopOp  = "loop"
	TimesOp = "times"
	MapOp   = "map"
	EachOp  = "each"
	FoldlOp = "foldl"
)
