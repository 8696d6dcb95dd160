// Package parser turns lexed words into the flat instruction sequence the
// machine executes. Bracketed lists and braced quotations are parsed
// recursively into List and Block values; every other non-literal word becomes
// a Symbol that is only resolved at run time.
package parser

import (
	"strconv"
	"strings"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/diagnostics"
	"github.com/funvibe/bprog/internal/lexer"
	"github.com/funvibe/bprog/internal/value"
)

type Parser struct {
	words []string
	base  int // index of words[0] in the original input, for error positions
	pos   int
}

func New(words []string) *Parser {
	return &Parser{words: words}
}

// Parse lexes and parses source text.
func Parse(source string) ([]value.Value, error) {
	return New(lexer.Lex(source)).ParseProgram()
}

// ParseProgram parses every word and returns the instructions in order.
func (p *Parser) ParseProgram() ([]value.Value, error) {
	program := make([]value.Value, 0, len(p.words))
	for p.pos < len(p.words) {
		v, err := p.parseWord()
		if err != nil {
			return nil, err
		}
		program = append(program, v)
		p.pos++
	}
	return program, nil
}

// parseWord classifies the current word. On return p.pos points at the last
// word consumed.
func (p *Parser) parseWord() (value.Value, error) {
	word := p.words[p.pos]
	switch word {
	case config.ListOpen:
		items, err := p.parseCollection(config.ListOpen, config.ListClose, diagnostics.IncompleteList)
		if err != nil {
			return nil, err
		}
		return value.NewList(items...), nil
	case config.BlockOpen:
		items, err := p.parseCollection(config.BlockOpen, config.BlockClose, diagnostics.IncompleteQuotation)
		if err != nil {
			return nil, err
		}
		return value.NewBlock(items...), nil
	case config.StringQuote:
		return p.parseString()
	case config.ListClose:
		return nil, p.errorAt(diagnostics.IncompleteList)
	case config.BlockClose:
		return nil, p.errorAt(diagnostics.IncompleteQuotation)
	}

	switch {
	case isBool(word):
		return value.NativeBool(word == "true" || word == "True"), nil
	case isInteger(word):
		i, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			// Only a range error is possible here.
			return nil, diagnostics.WithOp(diagnostics.NewRuntimeError(diagnostics.NumberConversionError), word)
		}
		return value.NewInteger(i), nil
	case isFloat(word):
		// The word is well formed, so the only possible error is a range
		// error, for which ParseFloat already returns ±Inf.
		f, _ := strconv.ParseFloat(word, 32)
		return value.NewFloat(float32(f)), nil
	}
	return value.NewSymbol(word), nil
}

// parseCollection scans forward from an opening word to its matching closer,
// counting only open/close pairs of the same kind, and parses the enclosed
// words with a child parser.
func (p *Parser) parseCollection(open, close string, kind diagnostics.ParseErrorKind) ([]value.Value, error) {
	start := p.pos
	depth := 0
	for i := start; i < len(p.words); i++ {
		switch p.words[i] {
		case open:
			depth++
		case close:
			depth--
		}
		if depth == 0 {
			child := &Parser{words: p.words[start+1 : i], base: p.base + start + 1}
			items, err := child.ParseProgram()
			if err != nil {
				return nil, err
			}
			p.pos = i
			return items, nil
		}
	}
	return nil, p.errorAt(kind)
}

// parseString joins the words up to the closing quote with single spaces.
func (p *Parser) parseString() (value.Value, error) {
	start := p.pos
	for i := start + 1; i < len(p.words); i++ {
		if p.words[i] == config.StringQuote {
			p.pos = i
			return value.NewString(strings.Join(p.words[start+1:i], " ")), nil
		}
	}
	return nil, p.errorAt(diagnostics.IncompleteString)
}

func (p *Parser) errorAt(kind diagnostics.ParseErrorKind) error {
	return diagnostics.NewParseError(kind, p.base+p.pos, p.words[p.pos])
}

func isBool(s string) bool {
	return s == "true" || s == "True" || s == "false" || s == "False"
}

// isInteger accepts an optional leading '-' followed by digits only.
func isInteger(s string) bool {
	digits := 0
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '-' && i == 0:
		default:
			return false
		}
	}
	return digits > 0
}

// isFloat accepts an optional leading '-', digits, and exactly one '.'.
func isFloat(s string) bool {
	digits, dots := 0, 0
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		case c == '-' && i == 0:
		default:
			return false
		}
	}
	return digits > 0 && dots == 1
}
