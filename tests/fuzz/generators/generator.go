package generators

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/funvibe/bprog/internal/value"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// Generator generates random bprog programs. Every program it produces
// parses; most of them also run to completion.
type Generator struct {
	src   RandomSource
	depth int
	vars  []string
}

const (
	MaxDepth = 4
	MaxWords = 12
	MaxCount = 5 // upper bound for times counts and loop iterations
)

// Words that take their operands from the stack only.
var stackOps = []string{
	"+", "-", "*", "/", "div", "<", ">", "==", "&&", "||", "not",
	"swap", "dup", "pop", "length", "empty", "head", "tail", "cons", "append",
	"words", "parseInteger", "parseFloat", "exec",
}

func New(seed int64) *Generator {
	return &Generator{
		src:  &RandSource{rand.New(rand.NewSource(seed))},
		vars: []string{"x", "y", "z", "a", "b"},
	}
}

func NewFromData(data []byte) *Generator {
	return &Generator{
		src:  &ByteSource{data: data},
		vars: []string{"x", "y", "z", "a", "b"},
	}
}

// Intn exposes the random source's Intn method for embedded structs.
func (g *Generator) Intn(n int) int {
	return g.src.Intn(n)
}

// Src returns the random source of the generator.
func (g *Generator) Src() RandomSource {
	return g.src
}

// GenerateProgram returns a sequence of phrases separated by random
// whitespace.
func (g *Generator) GenerateProgram() string {
	var sb strings.Builder
	count := g.src.Intn(MaxWords) + 1
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(g.GenerateNoise())
		}
		sb.WriteString(g.GeneratePhrase())
	}
	return sb.String()
}

// GenerateNoise returns the whitespace between two words.
func (g *Generator) GenerateNoise() string {
	switch g.src.Intn(10) {
	case 0:
		return "\n"
	case 1:
		return "\t "
	case 2:
		return "  "
	}
	return " "
}

// GeneratePhrase returns one self-contained unit: a literal, an operator, or
// a construct together with the instructions it reads from the queue.
func (g *Generator) GeneratePhrase() string {
	if g.depth > MaxDepth {
		return g.GenerateLiteral()
	}
	g.depth++
	defer func() { g.depth-- }()

	switch choice := g.src.Intn(20); {
	case choice < 7:
		return g.GenerateLiteral()
	case choice < 11:
		return stackOps[g.src.Intn(len(stackOps))]
	case choice < 12:
		return g.randomVar()
	case choice < 13:
		return "' " + g.randomVar() + " " + g.GeneratePhrase() + " :="
	case choice < 14:
		return g.randomVar() + " " + g.GenerateBlock() + " fun"
	case choice < 15:
		return g.GenerateBool() + " if " + g.GenerateBlock() + " " + g.GenerateBlock()
	case choice < 16:
		return strconv.Itoa(g.src.Intn(MaxCount)) + " times " + g.GenerateBlock()
	case choice < 17:
		return g.GenerateList() + " map " + g.GenerateBlock()
	case choice < 18:
		return g.GenerateList() + " each " + g.GenerateBlock()
	case choice < 19:
		return g.GenerateList() + " " + g.GenerateLiteral() + " foldl " + g.GenerateBlock()
	default:
		// Counts up to a bound, so it always terminates.
		return "0 loop { dup " + strconv.Itoa(g.src.Intn(MaxCount)) + " > } { 1 + }"
	}
}

func (g *Generator) randomVar() string {
	return g.vars[g.src.Intn(len(g.vars))]
}

func (g *Generator) GenerateLiteral() string {
	switch g.src.Intn(6) {
	case 0:
		return strconv.Itoa(g.src.Intn(200) - 100)
	case 1:
		return strconv.FormatFloat(float64(g.src.Intn(2000)-1000)/10, 'f', 1, 64)
	case 2:
		return g.GenerateBool()
	case 3:
		return g.GenerateString()
	case 4:
		return g.GenerateList()
	}
	return g.GenerateBlock()
}

func (g *Generator) GenerateBool() string {
	if g.src.Intn(2) == 0 {
		return "True"
	}
	return "False"
}

func (g *Generator) GenerateString() string {
	words := []string{"alpha", "beta", "12", "3.5", "x", "hello"}
	n := g.src.Intn(3)
	parts := make([]string, 0, n+2)
	parts = append(parts, "\"")
	for i := 0; i < n; i++ {
		parts = append(parts, words[g.src.Intn(len(words))])
	}
	parts = append(parts, "\"")
	return strings.Join(parts, " ")
}

func (g *Generator) GenerateList() string {
	if g.depth > MaxDepth {
		return "[ ]"
	}
	g.depth++
	defer func() { g.depth-- }()

	n := g.src.Intn(4)
	parts := make([]string, 0, n+2)
	parts = append(parts, "[")
	for i := 0; i < n; i++ {
		parts = append(parts, g.GenerateLiteral())
	}
	parts = append(parts, "]")
	return strings.Join(parts, " ")
}

func (g *Generator) GenerateBlock() string {
	if g.depth > MaxDepth {
		return "{ }"
	}
	g.depth++
	defer func() { g.depth-- }()

	n := g.src.Intn(4)
	parts := make([]string, 0, n+2)
	parts = append(parts, "{")
	for i := 0; i < n; i++ {
		parts = append(parts, g.GeneratePhrase())
	}
	parts = append(parts, "}")
	return strings.Join(parts, " ")
}

// GenerateValue builds a random literal Value directly, without text.
func (g *Generator) GenerateValue() value.Value {
	if g.depth > MaxDepth {
		return value.NewInteger(int64(g.src.Intn(10)))
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.src.Intn(7) {
	case 0:
		return value.NewInteger(int64(g.src.Intn(2000) - 1000))
	case 1:
		return value.NewFloat(float32(g.src.Float64()*200 - 100))
	case 2:
		return value.NativeBool(g.src.Intn(2) == 0)
	case 3:
		words := strings.Fields(g.GenerateString())
		return value.NewString(strings.Join(words[1:len(words)-1], " "))
	case 4:
		return value.NewSymbol(g.randomVar())
	case 5:
		return value.NewList(g.generateItems()...)
	}
	return value.NewBlock(g.generateItems()...)
}

func (g *Generator) generateItems() []value.Value {
	n := g.src.Intn(4)
	items := make([]value.Value, n)
	for i := range items {
		items[i] = g.GenerateValue()
	}
	return items
}
