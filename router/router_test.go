package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shk-aftab/Eurogate/llm"
)

func TestRuleRouter_Route(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Route
	}{
		{"order reference", "What is the status of order EN2400123?", RouteOrders},
		{"order reference with dash", "Any update on TB-512345?", RouteOrders},
		{"snue reference", "where is SNUE0012 right now", RouteOrders},
		{"container number", "Track container MSKU 1234567 please", RouteOrders},
		{"trip id", "has trip 42 been completed", RouteOrders},
		{"order vocabulary", "Is there a delay on my delivery?", RouteOrders},
		{"trucker question", "which trucker is assigned to my shipment status", RouteOrders},
		{"platform question", "What is the platform?", RouteDocuments},
		{"faq question", "How do I reset my password?", RouteDocuments},
		{"empty query", "", RouteDocuments},
	}

	r := NewRuleRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := r.Route(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decision.Route)
		})
	}
}

func TestRuleRouter_FallbackDelegation(t *testing.T) {
	fallback := NewLLMRouter(
		&llm.MockLLM{Response: `[{"choice": 2, "reason": "asks about the dataset"}]`},
		testChoices(),
		nil,
	)
	r := NewRuleRouter(fallback)

	decision, err := r.Route(context.Background(), "Tell me about the pickup schedule")
	require.NoError(t, err)
	assert.Equal(t, RouteOrders, decision.Route)
	assert.Equal(t, "asks about the dataset", decision.Reason)
}

func testChoices() []Choice {
	return []Choice{
		{Route: RouteDocuments, Description: "General questions about the platform, answered from documents."},
		{Route: RouteOrders, Description: "Questions about specific orders in the order table."},
	}
}

func TestLLMRouter_Route(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Route
		reason   string
	}{
		{
			"array selection",
			`[{"choice": 1, "reason": "general platform question"}]`,
			RouteDocuments,
			"general platform question",
		},
		{
			"bare object selection",
			`{"choice": 2, "reason": "order lookup"}`,
			RouteOrders,
			"order lookup",
		},
		{
			"selection wrapped in prose",
			"Sure! Here is my answer:\n[{\"choice\": 2, \"reason\": \"table question\"}]",
			RouteOrders,
			"table question",
		},
		{
			"unparseable falls back to documents",
			"I cannot decide.",
			RouteDocuments,
			"fallback: unparseable selection",
		},
		{
			"out of range falls back to documents",
			`[{"choice": 7, "reason": "bogus"}]`,
			RouteDocuments,
			"fallback: unparseable selection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLLMRouter(&llm.MockLLM{Response: tt.response}, testChoices(), nil)

			decision, err := r.Route(context.Background(), "some question")
			require.NoError(t, err)
			assert.Equal(t, tt.want, decision.Route)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestLLMRouter_CompletionError(t *testing.T) {
	r := NewLLMRouter(&llm.MockLLM{Err: assert.AnError}, testChoices(), nil)

	_, err := r.Route(context.Background(), "some question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "routing completion failed")
}

func TestIsQuoteIntent(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"Can I get a quote for shipping a container?", true},
		{"I need a quotation from Hamburg to Munich", true},
		{"how much would it cost to move a 40HC?", true},
		{"Give me a price estimate please", true},
		{"What is the platform?", false},
		{"status of order EN2400123", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuoteIntent(tt.query))
		})
	}
}
