package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/schema"
)

// ContextSynthesizer generates a response by stuffing retrieved context into a prompt.
type ContextSynthesizer struct {
	llm llm.LLM
}

// NewContextSynthesizer creates a new ContextSynthesizer.
func NewContextSynthesizer(llm llm.LLM) *ContextSynthesizer {
	return &ContextSynthesizer{
		llm: llm,
	}
}

func (s *ContextSynthesizer) Synthesize(ctx context.Context, query schema.QueryBundle, nodes []schema.NodeWithScore) (schema.EngineResponse, error) {
	contextStr := s.formatContext(nodes)
	prompt := s.createPrompt(contextStr, query.QueryString)

	responseStr, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return schema.EngineResponse{}, fmt.Errorf("llm completion failed: %w", err)
	}

	return schema.EngineResponse{
		Response:    responseStr,
		SourceNodes: nodes,
	}, nil
}

func (s *ContextSynthesizer) formatContext(nodes []schema.NodeWithScore) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Node.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *ContextSynthesizer) createPrompt(context, query string) string {
	return fmt.Sprintf("Context information is below.\n---------------------\n%s\n---------------------\nGiven the context information and not prior knowledge, answer the query.\nQuery: %s\nAnswer:", context, query)
}

var _ Synthesizer = (*ContextSynthesizer)(nil)
