package llm

import "context"

// MockLLM is a mock implementation of the LLM interfaces.
// It can be configured to return specific responses or errors.
type MockLLM struct {
	// Response is the text response to return.
	Response string
	// Responses, when set, is returned one entry per call before
	// falling back to Response.
	Responses []string
	// Err is the error to return (if any).
	Err error
	// StructuredOutputSupported indicates if structured output is supported.
	StructuredOutputSupported bool
	// Prompts records the prompt (or last message content) of each call.
	Prompts []string

	calls int
}

// NewMockLLM creates a new MockLLM with a simple response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a new MockLLM that returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Err: err}
}

func (m *MockLLM) next() string {
	if m.calls < len(m.Responses) {
		r := m.Responses[m.calls]
		m.calls++
		return r
	}
	m.calls++
	return m.Response
}

// Calls returns how many completions have been requested.
func (m *MockLLM) Calls() int {
	return m.calls
}

func (m *MockLLM) recordMessages(messages []ChatMessage) {
	if len(messages) > 0 {
		m.Prompts = append(m.Prompts, messages[len(messages)-1].Content)
	}
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Prompts = append(m.Prompts, prompt)
	return m.next(), nil
}

func (m *MockLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.recordMessages(messages)
	return m.next(), nil
}

func (m *MockLLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	ch := make(chan string, 1)
	if m.Err != nil {
		close(ch)
		return ch, m.Err
	}
	m.Prompts = append(m.Prompts, prompt)
	ch <- m.next()
	close(ch)
	return ch, nil
}

// ChatWithFormat returns the mock response regardless of format.
func (m *MockLLM) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.recordMessages(messages)
	return m.next(), nil
}

// SupportsStructuredOutput returns whether structured output is supported.
func (m *MockLLM) SupportsStructuredOutput() bool {
	return m.StructuredOutputSupported
}

var _ LLMWithStructuredOutput = (*MockLLM)(nil)
