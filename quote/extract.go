package quote

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/program"
)

// maxDocumentChars caps how much document text goes into the
// extraction prompt.
const maxDocumentChars = 6000

// ExtractionError means no usable text could be taken from the document.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaError means the LLM output could not be coerced into QuoteDetails.
type SchemaError struct {
	Raw string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("LLM output did not match the quote schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

const extractionPrompt = `You are an expert logistics assistant. Extract shipment details from the transport document text below.

Return a single JSON object with these fields (omit any field the document does not state):
- document_type: type of document (e.g. transport order, delivery note, booking confirmation)
- order_reference: order or booking reference
- container_number: container number (e.g. MSCU1234567)
- container_type: container type as written (e.g. 40HC, 22G1, 20' box)
- shipper_name: shipper company name
- consignee_name: consignee company name
- origin_address: object with street, city, zip, country (pickup / provision address; country defaults to "DE")
- destination_address: object with street, city, zip, country (delivery / dropoff address; country defaults to "DE")
- key_date: provision or shipping date exactly as written in the document
- transport_mode: transport mode (e.g. road, rail, sea)
- goods_description: short description of the goods

Valid JSON Output Only.

Document Text:
---
%s
---`

// Extractor turns raw document text into QuoteDetails with a single
// structured LLM call.
type Extractor struct {
	program *program.ExtractionProgram
	logger  *slog.Logger
}

// NewExtractor creates an Extractor backed by the given LLM.
func NewExtractor(l llm.LLM, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		program: program.NewExtractionProgramForType(l, QuoteDetails{}),
		logger:  logger,
	}
}

// Extract runs the structured extraction over the document text and
// returns normalized quote details.
func (e *Extractor) Extract(ctx context.Context, documentText string) (*QuoteDetails, error) {
	if documentText == "" {
		return nil, &ExtractionError{Reason: "document text is empty"}
	}

	documentText = truncateUTF8(documentText, maxDocumentChars)

	prompt := fmt.Sprintf(extractionPrompt, documentText)

	out, err := e.program.Call(ctx, prompt)
	if err != nil {
		if out != nil {
			// The LLM answered, its output just was not parseable JSON.
			return nil, &SchemaError{Raw: out.RawOutput, Err: err}
		}
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	var details QuoteDetails
	if err := out.GetParsedAs(&details); err != nil {
		return nil, &SchemaError{Raw: out.RawOutput, Err: err}
	}

	details.Normalize()

	e.logger.Info("extracted quote details",
		"order_reference", details.OrderReference,
		"container_type", details.ContainerType,
		"missing", details.MissingFields())

	return &details, nil
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
