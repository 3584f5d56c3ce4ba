package router

import "strings"

// Phrases that signal the user wants a price quote for a shipment.
var quoteIntentPhrases = []string{
	"quote",
	"quotation",
	"price estimate",
	"cost estimate",
	"price offer",
	"pricing for",
	"how much would it cost",
	"how much does it cost",
	"how much to ship",
}

// IsQuoteIntent reports whether a message asks for a shipment price
// quote. Quote requests need an uploaded PDF, so text-only quote intent
// is deflected before any routing or extraction happens.
func IsQuoteIntent(query string) bool {
	lowered := strings.ToLower(query)
	for _, phrase := range quoteIntentPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
