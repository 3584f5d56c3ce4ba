package quote

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Shk-aftab/Eurogate/rag/reader"
)

// Pipeline turns an uploaded PDF into a chat answer: extracted details,
// a clarification for missing fields, or a quote from the quotation API.
// Every failure surfaces as a user-facing message, never a panic.
type Pipeline struct {
	extractText func(filePath string) (string, error)
	extractor   *Extractor
	quoter      Quoter
	logger      *slog.Logger
}

// NewPipeline creates a quote pipeline.
func NewPipeline(extractor *Extractor, quoter Quoter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractText: reader.ExtractTextFromPDF,
		extractor:   extractor,
		quoter:      quoter,
		logger:      logger,
	}
}

// WithTextExtractor overrides how document text is read from a file
// (fluent API, used by tests).
func (p *Pipeline) WithTextExtractor(fn func(filePath string) (string, error)) *Pipeline {
	p.extractText = fn
	return p
}

// ProcessFile runs the saved PDF through extraction, validation and the
// quotation API, returning the message to show the user.
func (p *Pipeline) ProcessFile(ctx context.Context, filePath string) (string, error) {
	text, err := p.extractText(filePath)
	if err != nil {
		p.logger.Warn("PDF text extraction failed", "file", filePath, "error", err)
		return "I couldn't extract any text from the uploaded PDF. Please make sure it is a text-based document, not a scanned image.", nil
	}

	details, err := p.extractor.Extract(ctx, text)
	if err != nil {
		var schemaErr *SchemaError
		var extractionErr *ExtractionError
		switch {
		case errors.As(err, &schemaErr):
			p.logger.Warn("quote extraction produced unusable output", "error", err)
			return "I read the PDF but couldn't make sense of the shipment details in it. Could you try a different document?", nil
		case errors.As(err, &extractionErr):
			p.logger.Warn("quote extraction failed", "error", err)
			return "I couldn't extract any text from the uploaded PDF. Please make sure it is a text-based document, not a scanned image.", nil
		default:
			return "", err
		}
	}

	if missing := details.MissingFields(); len(missing) > 0 {
		p.logger.Info("quote details incomplete", "missing", missing)
		return FormatIncomplete(details, missing), nil
	}

	result, err := p.quoter.RequestQuotation(ctx, details)
	if err != nil {
		p.logger.Error("quotation request failed", "error", err)
		return FormatAPIError(err.Error()), nil
	}

	return FormatResult(result), nil
}
