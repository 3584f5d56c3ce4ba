// Package assistant orchestrates a chat turn: quote-intent deflection,
// routing, and invoking exactly one query tool.
package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Shk-aftab/Eurogate/router"
	"github.com/Shk-aftab/Eurogate/tools"
)

// Tool names registered with the router. Kept stable because answers
// report which tool produced them.
const (
	DocumentsToolName = "general_knowledge_and_order_documents"
	OrdersToolName    = "order_database_query"
)

// Descriptions the LLM router selects between.
const (
	DocumentsToolDescription = "Useful for general questions about the logistics platform, its features, FAQ topics, and the content of order documents and presentations."
	OrdersToolDescription    = "Useful for looking up specific orders in the order database: status, references, container numbers, trips, delays, and prices of individual orders."
)

// User-facing messages for turns that never reach a tool.
const (
	EmptyQueryMessage      = "Please enter a message to chat."
	QuoteDeflectionMessage = "To get a price quote, please upload the transport document as a PDF and I will extract the shipment details and request a quote for you."
	GenericFailureMessage  = "Sorry, something went wrong while answering your question. Please try again."
)

// Response is the outcome of one chat turn.
type Response struct {
	// Response is the text shown to the user.
	Response string
	// ToolName names the tool that answered, empty when no tool ran.
	ToolName string
	// Route is the routing decision, empty when routing was skipped.
	Route router.Route
}

// Assistant answers chat messages by routing them to one of its tools.
type Assistant struct {
	router router.Router
	tools  map[router.Route]tools.Tool
	logger *slog.Logger
}

// New creates an assistant over the document and order tools.
func New(r router.Router, documentsTool, ordersTool tools.Tool, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		router: r,
		tools: map[router.Route]tools.Tool{
			router.RouteDocuments: documentsTool,
			router.RouteOrders:    ordersTool,
		},
		logger: logger,
	}
}

// Chat answers a single message. Failures surface as user-facing
// messages, never as a panic or a leaked internal error.
func (a *Assistant) Chat(ctx context.Context, query string) *Response {
	if strings.TrimSpace(query) == "" {
		return &Response{Response: EmptyQueryMessage}
	}

	// Quotes need an uploaded PDF. Deflect before any routing or
	// extraction can run.
	if router.IsQuoteIntent(query) {
		a.logger.Info("quote intent without file, deflecting")
		return &Response{Response: QuoteDeflectionMessage}
	}

	decision, err := a.router.Route(ctx, query)
	if err != nil {
		a.logger.Error("routing failed", "error", err)
		return &Response{Response: GenericFailureMessage}
	}

	tool, ok := a.tools[decision.Route]
	if !ok {
		a.logger.Error("no tool registered for route", "route", decision.Route)
		return &Response{Response: GenericFailureMessage, Route: decision.Route}
	}

	a.logger.Info("routing query", "route", decision.Route, "reason", decision.Reason, "tool", tool.Metadata().Name)

	out, err := tool.Call(ctx, query)
	if err != nil {
		a.logger.Error("tool call failed", "tool", tool.Metadata().Name, "error", err)
		return &Response{Response: GenericFailureMessage, ToolName: tool.Metadata().Name, Route: decision.Route}
	}

	return &Response{
		Response: out.Content,
		ToolName: out.ToolName,
		Route:    decision.Route,
	}
}
