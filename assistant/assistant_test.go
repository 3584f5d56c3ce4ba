package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/router"
	"github.com/Shk-aftab/Eurogate/tools"
)

// recordingTool records its inputs and answers with a fixed response.
type recordingTool struct {
	name   string
	answer string
	err    error
	inputs []string
}

func (t *recordingTool) Metadata() *tools.ToolMetadata {
	return tools.NewToolMetadata(t.name, "test tool")
}

func (t *recordingTool) Call(ctx context.Context, input interface{}) (*tools.ToolOutput, error) {
	t.inputs = append(t.inputs, input.(string))
	if t.err != nil {
		return nil, t.err
	}
	return tools.NewToolOutput(t.name, t.answer), nil
}

func newTestAssistant(documents, orders *recordingTool) *Assistant {
	return New(router.NewRuleRouter(nil), documents, orders, nil)
}

func TestChat_DocumentQuestionUsesDocumentsTool(t *testing.T) {
	documents := &recordingTool{name: DocumentsToolName, answer: "A logistics booking platform."}
	orders := &recordingTool{name: OrdersToolName}
	a := newTestAssistant(documents, orders)

	resp := a.Chat(context.Background(), "What is the platform?")

	assert.Equal(t, "A logistics booking platform.", resp.Response)
	assert.Equal(t, DocumentsToolName, resp.ToolName)
	assert.Equal(t, router.RouteDocuments, resp.Route)
	require.Len(t, documents.inputs, 1)
	assert.Empty(t, orders.inputs)
}

func TestChat_OrderQuestionUsesOrdersTool(t *testing.T) {
	documents := &recordingTool{name: DocumentsToolName}
	orders := &recordingTool{name: OrdersToolName, answer: "Order EN2400123 is in transit."}
	a := newTestAssistant(documents, orders)

	resp := a.Chat(context.Background(), "What is the status of order EN2400123?")

	assert.Equal(t, "Order EN2400123 is in transit.", resp.Response)
	assert.Equal(t, OrdersToolName, resp.ToolName)
	assert.Equal(t, router.RouteOrders, resp.Route)
	require.Len(t, orders.inputs, 1)
	assert.Empty(t, documents.inputs)
}

func TestChat_QuoteIntentDeflectsBeforeAnyTool(t *testing.T) {
	documents := &recordingTool{name: DocumentsToolName}
	orders := &recordingTool{name: OrdersToolName}
	a := newTestAssistant(documents, orders)

	resp := a.Chat(context.Background(), "Can I get a quote for a 40HC from Hamburg to Munich?")

	assert.Equal(t, QuoteDeflectionMessage, resp.Response)
	assert.Empty(t, resp.ToolName)
	assert.Empty(t, documents.inputs, "deflection must not reach the documents tool")
	assert.Empty(t, orders.inputs, "deflection must not reach the orders tool")
}

func TestChat_EmptyQuery(t *testing.T) {
	a := newTestAssistant(&recordingTool{name: DocumentsToolName}, &recordingTool{name: OrdersToolName})

	resp := a.Chat(context.Background(), "   ")
	assert.Equal(t, EmptyQueryMessage, resp.Response)
	assert.Empty(t, resp.ToolName)
}

func TestChat_ToolErrorBecomesGenericMessage(t *testing.T) {
	documents := &recordingTool{name: DocumentsToolName, err: assert.AnError}
	a := newTestAssistant(documents, &recordingTool{name: OrdersToolName})

	resp := a.Chat(context.Background(), "What is the platform?")

	assert.Equal(t, GenericFailureMessage, resp.Response)
	assert.Equal(t, router.RouteDocuments, resp.Route)
}

func TestChat_RoutingErrorBecomesGenericMessage(t *testing.T) {
	failing := router.NewLLMRouter(&llm.MockLLM{Err: assert.AnError}, nil, nil)
	a := New(failing, &recordingTool{name: DocumentsToolName}, &recordingTool{name: OrdersToolName}, nil)

	resp := a.Chat(context.Background(), "What is the platform?")
	assert.Equal(t, GenericFailureMessage, resp.Response)
}
