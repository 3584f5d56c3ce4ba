// Package llm provides the language-model abstraction used across the
// assistant, extraction, and synthesis layers.
package llm

import "context"

// LLM is the interface for interacting with a language model.
type LLM interface {
	// Complete generates a completion for a single prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat generates a response for a list of chat messages.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	// Stream generates a streaming completion for a single prompt.
	Stream(ctx context.Context, prompt string) (<-chan string, error)
}

// LLMWithStructuredOutput extends LLM with constrained-format output,
// used by the structured extraction program.
type LLMWithStructuredOutput interface {
	LLM
	// ChatWithFormat generates a response in the specified format.
	ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (string, error)
	// SupportsStructuredOutput returns true if the model supports structured output.
	SupportsStructuredOutput() bool
}
