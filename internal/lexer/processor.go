package lexer

import "github.com/funvibe/bprog/internal/pipeline"

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Words = Lex(ctx.SourceCode)
	return ctx
}
