package llm

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	// MessageRoleSystem is for system instructions.
	MessageRoleSystem MessageRole = "system"
	// MessageRoleUser is for user messages.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAssistant is for assistant responses.
	MessageRoleAssistant MessageRole = "assistant"
)

// ChatMessage represents a message in a chat conversation.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// NewChatMessage creates a chat message.
func NewChatMessage(role MessageRole, content string) ChatMessage {
	return ChatMessage{Role: role, Content: content}
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) ChatMessage {
	return NewChatMessage(MessageRoleSystem, content)
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) ChatMessage {
	return NewChatMessage(MessageRoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return NewChatMessage(MessageRoleAssistant, content)
}

// ResponseFormat specifies the format of the LLM response.
type ResponseFormat struct {
	// Type is the format type ("text" or "json_object").
	Type string `json:"type"`
}

// NewJSONResponseFormat creates a response format for JSON output.
func NewJSONResponseFormat() *ResponseFormat {
	return &ResponseFormat{Type: "json_object"}
}
