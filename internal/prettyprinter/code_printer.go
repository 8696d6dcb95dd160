// Package prettyprinter renders values back as program text that the parser
// reads to an equal value. Display format (Value.Inspect) is for humans and
// does not round-trip; source format does.
package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/bprog/internal/config"
	"github.com/funvibe/bprog/internal/value"
)

// --- Code Printer (Output looks like source code) ---

type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // 0 disables wrapping
	column    int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// NewCodePrinterWithWidth wraps collections whose flat form would run past
// width, one item per line.
func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{lineWidth: width}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// Source renders v on a single line.
func Source(v value.Value) string {
	return NewCodePrinter().Print(v)
}

// Print renders v and resets the printer.
func (p *CodePrinter) Print(v value.Value) string {
	p.buf.Reset()
	p.indent, p.column = 0, 0
	p.printValue(v)
	return p.buf.String()
}

func (p *CodePrinter) printValue(v value.Value) {
	switch v := v.(type) {
	case *value.String:
		p.write(quote(v.Value))
	case *value.Integer:
		p.write(strconv.FormatInt(v.Value, 10))
	case *value.Float:
		p.write(value.FormatFloat(v.Value))
	case *value.Boolean:
		p.write(v.Inspect())
	case *value.Symbol:
		p.write(v.Name)
	case *value.List:
		p.printCollection(config.ListOpen, config.ListClose, v.Items)
	case *value.Block:
		p.printCollection(config.BlockOpen, config.BlockClose, v.Items)
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printCollection(open, close string, items []value.Value) {
	flat := flatCollection(open, close, items)
	if p.lineWidth <= 0 || len(items) == 0 || p.column+len(flat) <= p.lineWidth {
		p.write(flat)
		return
	}
	p.write(open)
	p.indent++
	for _, item := range items {
		p.write("\n")
		p.writeIndent()
		p.printValue(item)
	}
	p.indent--
	p.write("\n")
	p.writeIndent()
	p.write(close)
}

func flatCollection(open, close string, items []value.Value) string {
	parts := make([]string, 0, len(items)+2)
	parts = append(parts, open)
	for _, item := range items {
		parts = append(parts, Source(item))
	}
	parts = append(parts, close)
	return strings.Join(parts, " ")
}

// quote wraps s in standalone quote words. The lexer collapses whitespace
// runs, so only single-spaced text survives a round trip.
func quote(s string) string {
	if s == "" {
		return config.StringQuote + " " + config.StringQuote
	}
	return config.StringQuote + " " + s + " " + config.StringQuote
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.write("    ")
	}
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}
