// Package tools provides the tool abstraction the assistant routes
// queries through.
package tools

import (
	"context"
	"encoding/json"
)

// ToolMetadata contains metadata about a tool.
type ToolMetadata struct {
	// Name is the unique name of the tool.
	Name string `json:"name"`
	// Description describes what the tool does.
	Description string `json:"description"`
	// Parameters is the JSON Schema for the tool's parameters.
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// NewToolMetadata creates a new ToolMetadata with the given name and description.
func NewToolMetadata(name, description string) *ToolMetadata {
	return &ToolMetadata{
		Name:        name,
		Description: description,
		Parameters:  DefaultParameters(),
	}
}

// DefaultParameters returns the default parameters schema.
func DefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"input": map[string]interface{}{
				"title": "input query string",
				"type":  "string",
			},
		},
		"required": []string{"input"},
	}
}

// GetParametersJSON returns the parameters as a JSON string.
func (m *ToolMetadata) GetParametersJSON() (string, error) {
	params := m.Parameters
	if params == nil {
		params = DefaultParameters()
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToolOutput represents the output of a tool execution.
type ToolOutput struct {
	// Content is the text content of the output.
	Content string `json:"content"`
	// ToolName is the name of the tool that produced this output.
	ToolName string `json:"tool_name"`
	// RawInput is the raw input that was passed to the tool.
	RawInput map[string]interface{} `json:"raw_input,omitempty"`
	// RawOutput is the raw output from the tool.
	RawOutput interface{} `json:"raw_output,omitempty"`
	// IsError indicates if this output represents an error.
	IsError bool `json:"is_error,omitempty"`
	// Error holds the error if IsError is true.
	Error error `json:"-"`
}

// NewToolOutput creates a new ToolOutput.
func NewToolOutput(toolName, content string) *ToolOutput {
	return &ToolOutput{
		Content:  content,
		ToolName: toolName,
		RawInput: make(map[string]interface{}),
	}
}

// NewToolOutputWithInput creates a new ToolOutput with input.
func NewToolOutputWithInput(toolName, content string, rawInput map[string]interface{}, rawOutput interface{}) *ToolOutput {
	return &ToolOutput{
		Content:   content,
		ToolName:  toolName,
		RawInput:  rawInput,
		RawOutput: rawOutput,
	}
}

// NewErrorToolOutput creates a new ToolOutput representing an error.
func NewErrorToolOutput(toolName string, err error) *ToolOutput {
	return &ToolOutput{
		Content:  err.Error(),
		ToolName: toolName,
		IsError:  true,
		Error:    err,
	}
}

// String returns the content of the tool output.
func (o *ToolOutput) String() string {
	return o.Content
}

// Tool is the interface that all tools must implement.
type Tool interface {
	// Metadata returns the tool's metadata.
	Metadata() *ToolMetadata
	// Call executes the tool with the given input.
	Call(ctx context.Context, input interface{}) (*ToolOutput, error)
}

// BaseTool provides a base implementation for tools.
type BaseTool struct {
	metadata *ToolMetadata
}

// NewBaseTool creates a new BaseTool with the given metadata.
func NewBaseTool(metadata *ToolMetadata) *BaseTool {
	return &BaseTool{
		metadata: metadata,
	}
}

// Metadata returns the tool's metadata.
func (t *BaseTool) Metadata() *ToolMetadata {
	return t.metadata
}
