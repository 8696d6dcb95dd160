package pipeline

import "github.com/funvibe/bprog/internal/value"

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the program through the stages: source text,
// then words, then the parsed instruction sequence.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	// Words is filled by the lexer.
	Words []string

	// Program is filled by the parser, in execution order.
	Program []value.Value

	Errors []error
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// Err returns the first recorded error, or nil.
func (c *PipelineContext) Err() error {
	if len(c.Errors) == 0 {
		return nil
	}
	return c.Errors[0]
}
