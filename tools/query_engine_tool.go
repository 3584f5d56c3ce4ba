package tools

import (
	"context"
	"fmt"

	"github.com/Shk-aftab/Eurogate/rag"
	"github.com/Shk-aftab/Eurogate/schema"
)

const (
	// DefaultQueryEngineToolName is the default name for query engine tools.
	DefaultQueryEngineToolName = "query_engine_tool"
	// DefaultQueryEngineToolDescription is the default description for query engine tools.
	DefaultQueryEngineToolDescription = `Useful for running a natural language query against a knowledge base and get back a natural language response.`
)

// QueryEngineTool wraps a query engine as a tool.
type QueryEngineTool struct {
	*BaseTool
	queryEngine rag.QueryEngine
}

// QueryEngineToolOption configures a QueryEngineTool.
type QueryEngineToolOption func(*QueryEngineTool)

// WithQueryEngineToolName sets the tool name.
func WithQueryEngineToolName(name string) QueryEngineToolOption {
	return func(qet *QueryEngineTool) {
		qet.metadata.Name = name
	}
}

// WithQueryEngineToolDescription sets the tool description.
func WithQueryEngineToolDescription(description string) QueryEngineToolOption {
	return func(qet *QueryEngineTool) {
		qet.metadata.Description = description
	}
}

// NewQueryEngineTool creates a new QueryEngineTool.
func NewQueryEngineTool(queryEngine rag.QueryEngine, opts ...QueryEngineToolOption) *QueryEngineTool {
	qet := &QueryEngineTool{
		BaseTool: NewBaseTool(&ToolMetadata{
			Name:        DefaultQueryEngineToolName,
			Description: DefaultQueryEngineToolDescription,
			Parameters:  DefaultParameters(),
		}),
		queryEngine: queryEngine,
	}

	for _, opt := range opts {
		opt(qet)
	}

	return qet
}

// QueryEngine returns the underlying query engine.
func (qet *QueryEngineTool) QueryEngine() rag.QueryEngine {
	return qet.queryEngine
}

// Call executes the query engine with the given input.
func (qet *QueryEngineTool) Call(ctx context.Context, input interface{}) (*ToolOutput, error) {
	queryStr, err := qet.getQueryString(input)
	if err != nil {
		return NewErrorToolOutput(qet.metadata.Name, err), err
	}

	response, err := qet.queryEngine.Query(ctx, schema.QueryBundle{QueryString: queryStr})
	if err != nil {
		return NewErrorToolOutput(qet.metadata.Name, err), err
	}

	rawInput := map[string]interface{}{"input": queryStr}
	return NewToolOutputWithInput(qet.metadata.Name, response.Response, rawInput, response), nil
}

// getQueryString extracts the query string from the input.
func (qet *QueryEngineTool) getQueryString(input interface{}) (string, error) {
	switch v := input.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		if queryStr, ok := v["input"].(string); ok {
			return queryStr, nil
		}
		if queryStr, ok := v["query"].(string); ok {
			return queryStr, nil
		}
		return fmt.Sprintf("%v", v), nil
	default:
		return fmt.Sprintf("%v", input), nil
	}
}

var _ Tool = (*QueryEngineTool)(nil)
