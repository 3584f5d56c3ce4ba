// Package quote implements structured quote-detail extraction from
// transport documents and the PDF-to-quote pipeline.
package quote

import (
	"regexp"
	"strings"
	"time"
)

// Address is a loading or delivery address on a transport document.
type Address struct {
	Street     string `json:"street,omitempty" description:"Street and house number"`
	City       string `json:"city,omitempty" description:"City name"`
	PostalCode string `json:"zip,omitempty" description:"Postal / zip code"`
	Country    string `json:"country,omitempty" description:"ISO country code, default DE"`
}

// QuoteDetails holds the shipment fields extracted from a transport
// document. Fields the document does not state stay empty.
type QuoteDetails struct {
	DocumentType     string  `json:"document_type,omitempty" description:"Type of document, e.g. transport order, delivery note"`
	OrderReference   string  `json:"order_reference,omitempty" description:"Order or booking reference"`
	ContainerNumber  string  `json:"container_number,omitempty" description:"Container number, e.g. MSCU1234567"`
	ContainerType    string  `json:"container_type,omitempty" description:"Container type, e.g. 40HC, 22G1"`
	ShipperName      string  `json:"shipper_name,omitempty" description:"Shipper company name"`
	ConsigneeName    string  `json:"consignee_name,omitempty" description:"Consignee company name"`
	Origin           Address `json:"origin_address,omitempty" description:"Pickup / provision address"`
	Destination      Address `json:"destination_address,omitempty" description:"Delivery / dropoff address"`
	KeyDate          string  `json:"key_date,omitempty" description:"Provision or shipping date as written in the document"`
	TransportMode    string  `json:"transport_mode,omitempty" description:"Transport mode, e.g. road, rail"`
	GoodsDescription string  `json:"goods_description,omitempty" description:"Description of the goods"`
}

// Missing-field names shown to the user in clarification messages.
const (
	MissingOriginCity      = "Origin City"
	MissingOriginZip       = "Origin Zip Code"
	MissingDestinationCity = "Destination City"
	MissingDestinationZip  = "Destination Zip Code"
	MissingContainerType   = "Container Type (e.g., 40HC, 22G1)"
)

// MissingFields returns the names of the fields required for a quote
// request that are still empty, in display order.
func (d *QuoteDetails) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Origin.City) == "" {
		missing = append(missing, MissingOriginCity)
	}
	if strings.TrimSpace(d.Origin.PostalCode) == "" {
		missing = append(missing, MissingOriginZip)
	}
	if strings.TrimSpace(d.Destination.City) == "" {
		missing = append(missing, MissingDestinationCity)
	}
	if strings.TrimSpace(d.Destination.PostalCode) == "" {
		missing = append(missing, MissingDestinationZip)
	}
	if strings.TrimSpace(d.ContainerType) == "" {
		missing = append(missing, MissingContainerType)
	}
	return missing
}

// IsComplete reports whether the details carry everything the quotation
// API needs.
func (d *QuoteDetails) IsComplete() bool {
	return len(d.MissingFields()) == 0
}

// Normalize fills defaults and converts free-form values into the codes
// and formats the quotation API expects.
func (d *QuoteDetails) Normalize() {
	if d.Origin.Country == "" {
		d.Origin.Country = "DE"
	}
	if d.Destination.Country == "" {
		d.Destination.Country = "DE"
	}
	if d.ContainerType != "" {
		d.ContainerType = NormalizeContainerType(d.ContainerType)
	}
	d.KeyDate = NormalizeKeyDate(d.KeyDate, time.Now())
}

var containerTypeMap = map[string]string{
	"20box":         "22G1",
	"20gp":          "22G1",
	"20dc":          "22G1",
	"20' box":       "22G1",
	"22g1":          "22G1",
	"40hc":          "45G1",
	"40'hc":         "45G1",
	"40 hc":         "45G1",
	"40' high cube": "45G1",
	"45g1":          "45G1",
	"40gp":          "42G1",
	"40' gp":        "42G1",
	"42g1":          "42G1",
}

var (
	highCubePattern = regexp.MustCompile(`40'?\s*(hc|high)`)
	generalPattern  = regexp.MustCompile(`40'?\s*(gp|general)`)
	twentyPattern   = regexp.MustCompile(`20'?\s*(box|dc|gp|dv)`)
)

// NormalizeContainerType maps a written container type ("40HC",
// "20' box", ...) to its standard type code. Unrecognized inputs are
// returned unchanged.
func NormalizeContainerType(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if code, ok := containerTypeMap[cleaned]; ok {
		return code
	}

	switch {
	case highCubePattern.MatchString(cleaned):
		return "45G1"
	case generalPattern.MatchString(cleaned):
		return "42G1"
	case twentyPattern.MatchString(cleaned):
		return "22G1"
	}

	return raw
}

const keyDateFormat = "2006-01-02T15:04:05Z"

var keyDateLayouts = []string{
	"02.01.2006 15:04",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"2-Jan-06",
	"2-Jan-2006",
	"20060102",
}

// NormalizeKeyDate parses a written date into RFC3339 Z format.
// Dates more than a day in the past, absent dates, and unparseable
// dates all default to tomorrow noon UTC. A parsed date with no time
// component is set to noon.
func NormalizeKeyDate(raw string, now time.Time) string {
	parsed, ok := parseKeyDate(raw)
	if !ok || parsed.Before(now.Add(-24*time.Hour)) {
		tomorrow := now.UTC().AddDate(0, 0, 1)
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 12, 0, 0, 0, time.UTC).Format(keyDateFormat)
	}

	if parsed.Hour() == 0 && parsed.Minute() == 0 {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.UTC)
	}

	return parsed.UTC().Format(keyDateFormat)
}

func parseKeyDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	// Documents sometimes carry full timestamps with zone suffixes,
	// the date part is all that matters here.
	stripped := raw
	if i := strings.IndexAny(stripped, "T+"); i > 0 {
		stripped = stripped[:i]
	}
	stripped = strings.TrimSpace(stripped)

	for _, layout := range keyDateLayouts {
		if t, err := time.ParseInLocation(layout, stripped, time.UTC); err == nil {
			return t, true
		}
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}

	return time.Time{}, false
}
