// Package quoteapi is the HTTP client for the external quotation API.
package quoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Shk-aftab/Eurogate/quote"
)

const requestTimeout = 45 * time.Second

// StatusError is returned when the quotation API answers with a
// non-2xx status.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quotation API returned status %d: %s", e.StatusCode, e.Detail)
}

// Client calls the quotation API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a quotation API client. A trailing slash on the
// base URL is stripped.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// WithHTTPClient overrides the underlying HTTP client (fluent API).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type extendedAddress struct {
	Discriminator string `json:"discriminator"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
	Street        string `json:"street"`
}

type routeLoadingPoint struct {
	Address           extendedAddress `json:"address"`
	Discriminator     string          `json:"discriminator"`
	SequenceNumber    int             `json:"sequence_number"`
	Type              string          `json:"type"`
	ProvisionLocation bool            `json:"provision_location,omitempty"`
	DropoffLocation   bool            `json:"dropoff_location,omitempty"`
}

type containerSpec struct {
	SequenceNumber int    `json:"sequence_number"`
	TypeCode       string `json:"type_code"`
	ProvisionAt    string `json:"provision_at"`
}

type quotationRequest struct {
	Route struct {
		RouteLoadingPoints []routeLoadingPoint `json:"route_loading_points"`
	} `json:"route"`
	Containers []containerSpec `json:"containers"`
}

type money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type priceEntry struct {
	Price money  `json:"price"`
	Toll  *money `json:"toll,omitempty"`
}

type quotationResponse struct {
	Prices []priceEntry `json:"prices"`
	Route  struct {
		Distance *float64 `json:"distance,omitempty"`
	} `json:"route"`
}

func buildRequest(details *quote.QuoteDetails) *quotationRequest {
	origin := routeLoadingPoint{
		Address: extendedAddress{
			Discriminator: "ExtendedAddress",
			City:          details.Origin.City,
			Country:       details.Origin.Country,
			PostalCode:    details.Origin.PostalCode,
			Street:        details.Origin.Street,
		},
		Discriminator:     "ExtendedRouteLoadingPointCreation",
		SequenceNumber:    1,
		Type:              "WAREHOUSE",
		ProvisionLocation: true,
	}

	destination := routeLoadingPoint{
		Address: extendedAddress{
			Discriminator: "ExtendedAddress",
			City:          details.Destination.City,
			Country:       details.Destination.Country,
			PostalCode:    details.Destination.PostalCode,
			Street:        details.Destination.Street,
		},
		Discriminator:   "ExtendedRouteLoadingPointCreation",
		SequenceNumber:  2,
		Type:            "WAREHOUSE",
		DropoffLocation: true,
	}

	req := &quotationRequest{
		Containers: []containerSpec{{
			SequenceNumber: 1,
			TypeCode:       details.ContainerType,
			ProvisionAt:    details.KeyDate,
		}},
	}
	req.Route.RouteLoadingPoints = []routeLoadingPoint{origin, destination}

	return req
}

// RequestQuotation posts the shipment details to the quotation API and
// returns the first price entry.
func (c *Client) RequestQuotation(ctx context.Context, details *quote.QuoteDetails) (*quote.Result, error) {
	body, err := json.Marshal(buildRequest(details))
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotation request: %w", err)
	}

	url := c.baseURL + "/quotations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build quotation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	c.logger.Info("requesting quotation",
		"url", url,
		"container_type", details.ContainerType,
		"origin", details.Origin.City,
		"destination", details.Destination.City)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quotation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quotation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := extractDetail(respBody)
		c.logger.Error("quotation API error", "status", resp.StatusCode, "detail", detail)
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: detail}
	}

	var parsed quotationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode quotation response: %w", err)
	}

	result := &quote.Result{DistanceMeters: parsed.Route.Distance}
	if len(parsed.Prices) > 0 {
		first := parsed.Prices[0]
		result.HasPrice = true
		result.Amount = first.Price.Amount
		result.Currency = first.Price.Currency
		if result.Currency == "" {
			result.Currency = "EUR"
		}
		if first.Toll != nil {
			toll := first.Toll.Amount
			result.TollAmount = &toll
		}
	}

	return result, nil
}

// extractDetail pulls a human-readable message out of an error body,
// falling back to the raw body.
func extractDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = "no error detail provided"
	}
	return detail
}

var _ quote.Quoter = (*Client)(nil)
