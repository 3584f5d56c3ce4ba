package quote

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatResult renders a quotation result as a chat answer.
func FormatResult(res *Result) string {
	if res == nil || !res.HasPrice {
		return "API returned a response, but no price details were found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the extracted details, the estimated price quote is %.2f %s.", res.Amount, res.Currency)

	if res.TollAmount != nil {
		fmt.Fprintf(&sb, " (Toll included: %.2f %s).", *res.TollAmount, res.Currency)
	}
	if res.DistanceMeters != nil {
		fmt.Fprintf(&sb, " Est. Distance: %.1f km.", *res.DistanceMeters/1000)
	}

	return sb.String()
}

// FormatIncomplete renders a clarification message listing the extracted
// details and exactly the fields still needed.
func FormatIncomplete(details *QuoteDetails, missing []string) string {
	detailsJSON, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return fmt.Sprintf(
		"I read the PDF and found some details:\n```json\n%s\n```\nHowever, I still need the following to get a quote: **%s**. Could you please provide the missing information?",
		detailsJSON, strings.Join(missing, ", "),
	)
}

// FormatAPIError renders an upstream quotation failure as a chat answer.
func FormatAPIError(reason string) string {
	return fmt.Sprintf("Failed to get quote from API. Reason: %s", reason)
}
