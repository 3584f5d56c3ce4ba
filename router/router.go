// Package router decides which query engine answers a chat message.
// Routing is explicit and testable: deterministic rules first, an LLM
// single-select fallback when the rules are inconclusive.
package router

import (
	"context"
	"regexp"
	"strings"
)

// Route identifies a query destination.
type Route string

const (
	// RouteDocuments sends the query to the document knowledge base.
	RouteDocuments Route = "documents"
	// RouteOrders sends the query to the order table.
	RouteOrders Route = "orders"
)

// Decision is the outcome of routing a query.
type Decision struct {
	Route  Route
	Reason string
}

// Router picks the destination for a query.
type Router interface {
	Route(ctx context.Context, query string) (Decision, error)
}

var (
	// Order references look like EN2400123, TB512345, SNUE0012.
	orderRefPattern = regexp.MustCompile(`(?i)\b(en|tb|snue)[-_ ]?\d{3,}\b`)
	// ISO 6346 style container numbers: four letters then seven digits.
	containerNoPattern = regexp.MustCompile(`(?i)\b[a-z]{4}\s?\d{7}\b`)
	tripIDPattern      = regexp.MustCompile(`(?i)\btrip[-_ ]?\d+\b`)
)

// Vocabulary that signals a question about the order dataset.
var orderVocabulary = []string{
	"order",
	"job order",
	"shipment status",
	"trip",
	"trucker",
	"delay",
	"delivery status",
	"container number",
}

// RuleRouter routes deterministically on reference patterns and order
// vocabulary. Queries no rule claims go to the fallback router when one
// is set, otherwise to the document knowledge base.
type RuleRouter struct {
	fallback Router
}

// NewRuleRouter creates a rule router with an optional fallback.
func NewRuleRouter(fallback Router) *RuleRouter {
	return &RuleRouter{fallback: fallback}
}

func (r *RuleRouter) Route(ctx context.Context, query string) (Decision, error) {
	lowered := strings.ToLower(query)

	switch {
	case orderRefPattern.MatchString(query):
		return Decision{Route: RouteOrders, Reason: "order reference pattern"}, nil
	case containerNoPattern.MatchString(query):
		return Decision{Route: RouteOrders, Reason: "container number pattern"}, nil
	case tripIDPattern.MatchString(query):
		return Decision{Route: RouteOrders, Reason: "trip id pattern"}, nil
	}

	for _, word := range orderVocabulary {
		if strings.Contains(lowered, word) {
			return Decision{Route: RouteOrders, Reason: "order vocabulary: " + word}, nil
		}
	}

	if r.fallback != nil {
		return r.fallback.Route(ctx, query)
	}

	return Decision{Route: RouteDocuments, Reason: "default"}, nil
}

var _ Router = (*RuleRouter)(nil)
