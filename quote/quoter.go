package quote

import "context"

// Result is the outcome of a quotation request, reduced to the fields
// shown to the user.
type Result struct {
	// HasPrice is false when the API answered without price details.
	HasPrice bool
	Amount   float64
	Currency string
	// TollAmount is set when the price breakdown includes toll.
	TollAmount *float64
	// DistanceMeters is set when the API returns the route distance.
	DistanceMeters *float64
}

// Quoter requests a price quote for extracted shipment details.
type Quoter interface {
	RequestQuotation(ctx context.Context, details *QuoteDetails) (*Result, error)
}
