package service

import (
	"context"

	"career-compass-be/pkg/interview"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/prompt"
)

type llmQuestionGenerator struct {
	provider llm.LLMProvider
}

// NewQuestionGenerator asks the LLM for interview follow-ups.
func NewQuestionGenerator(provider llm.LLMProvider) interview.QuestionGenerator {
	return &llmQuestionGenerator{provider: provider}
}

func (g *llmQuestionGenerator) NextQuestion(ctx context.Context, layer interview.Layer, history []interview.HistoryEntry) (string, error) {
	return g.provider.Generate(llm.WithOperation(ctx, "next_question"), prompt.NextQuestion(layer, history))
}
