package mutator

import (
	"math/rand"
	"strconv"

	"github.com/funvibe/bprog/internal/lexer"
)

// WordMutator applies random word-level mutations to program text. Mutated
// programs need not parse.
type WordMutator struct {
	rnd *rand.Rand
}

// NewWordMutator creates a new WordMutator with the given seed.
func NewWordMutator(seed int64) *WordMutator {
	return &WordMutator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

var replacements = []string{
	"[", "]", "{", "}", "\"", "'",
	"+", "-", "dup", "swap", "pop", "exec", "if", "times", "map", "each", "foldl", "loop",
	":=", "fun", "True", "False", "x",
}

// Mutate returns a mutated copy of words.
func (m *WordMutator) Mutate(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	if len(out) == 0 {
		return append(out, m.randomWord())
	}

	idx := m.rnd.Intn(len(out))
	switch m.rnd.Intn(5) {
	case 0: // delete
		return append(out[:idx], out[idx+1:]...)
	case 1: // duplicate
		out = append(out, "")
		copy(out[idx+1:], out[idx:])
		return out
	case 2: // swap with a neighbour
		if idx+1 < len(out) {
			out[idx], out[idx+1] = out[idx+1], out[idx]
		}
		return out
	case 3: // tweak a number
		if n, err := strconv.ParseInt(out[idx], 10, 64); err == nil {
			out[idx] = strconv.FormatInt(n+int64(m.rnd.Intn(21)-10), 10)
			return out
		}
		fallthrough
	default: // replace
		out[idx] = m.randomWord()
		return out
	}
}

// MutateSource lexes src, mutates it and joins the words back.
func (m *WordMutator) MutateSource(src string) string {
	words := m.Mutate(lexer.Lex(src))
	result := ""
	for i, w := range words {
		if i > 0 {
			result += " "
		}
		result += w
	}
	return result
}

func (m *WordMutator) randomWord() string {
	return replacements[m.rnd.Intn(len(replacements))]
}
