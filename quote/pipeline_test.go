package quote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/quote"
	"github.com/Shk-aftab/Eurogate/quoteapi"
)

const completeExtraction = `{
	"document_type": "transport order",
	"order_reference": "EN2400123",
	"container_type": "40HC",
	"origin_address": {"street": "Hafenstr. 1", "city": "Hamburg", "zip": "20457"},
	"destination_address": {"street": "Werksweg 5", "city": "Munich", "zip": "80331"},
	"key_date": "2099-06-01"
}`

const missingContainerExtraction = `{
	"document_type": "transport order",
	"origin_address": {"city": "Hamburg", "zip": "20457"},
	"destination_address": {"city": "Munich", "zip": "80331"}
}`

func newPipeline(t *testing.T, extraction string, quoteHandler http.HandlerFunc) (*quote.Pipeline, *llm.MockLLM, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		quoteHandler(w, r)
	}))
	t.Cleanup(srv.Close)

	mockLLM := &llm.MockLLM{Response: extraction, StructuredOutputSupported: true}
	extractor := quote.NewExtractor(mockLLM, nil)
	client := quoteapi.NewClient(srv.URL, "test-key", nil)

	p := quote.NewPipeline(extractor, client, nil).
		WithTextExtractor(func(string) (string, error) {
			return "Transport order EN2400123 from Hamburg to Munich, 40HC container.", nil
		})

	return p, mockLLM, &calls
}

func TestPipeline_CompleteDetailsCallAPIExactlyOnce(t *testing.T) {
	p, mockLLM, calls := newPipeline(t, completeExtraction, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quotations", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"prices": []map[string]interface{}{
				{
					"price": map[string]interface{}{"amount": 1250.50, "currency": "EUR"},
					"toll":  map[string]interface{}{"amount": 85.20, "currency": "EUR"},
				},
			},
			"route": map[string]interface{}{"distance": 612300.0},
		})
	})

	answer, err := p.ProcessFile(context.Background(), "order.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, *calls, "quotation API must be called exactly once")
	assert.Equal(t, 1, mockLLM.Calls(), "extraction must run exactly once")
	assert.Contains(t, answer, "estimated price quote is 1250.50 EUR")
	assert.Contains(t, answer, "Toll included: 85.20 EUR")
	assert.Contains(t, answer, "Est. Distance: 612.3 km")
}

func TestPipeline_MissingContainerTypeAsksOnlyForIt(t *testing.T) {
	p, _, calls := newPipeline(t, missingContainerExtraction, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	answer, err := p.ProcessFile(context.Background(), "order.pdf")
	require.NoError(t, err)

	assert.Equal(t, 0, *calls, "incomplete details must not reach the API")
	assert.Contains(t, answer, quote.MissingContainerType)
	assert.NotContains(t, answer, quote.MissingOriginCity)
	assert.NotContains(t, answer, quote.MissingOriginZip)
	assert.NotContains(t, answer, quote.MissingDestinationCity)
	assert.NotContains(t, answer, quote.MissingDestinationZip)
	assert.Contains(t, answer, "```json")
}

func TestPipeline_UpstreamErrorBecomesUserMessage(t *testing.T) {
	p, _, calls := newPipeline(t, completeExtraction, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "pricing engine unavailable"})
	})

	answer, err := p.ProcessFile(context.Background(), "order.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, *calls)
	assert.Contains(t, answer, "Failed to get quote from API. Reason:")
	assert.Contains(t, answer, "pricing engine unavailable")
}

func TestPipeline_NoPricesInResponse(t *testing.T) {
	p, _, _ := newPipeline(t, completeExtraction, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"prices": []interface{}{}})
	})

	answer, err := p.ProcessFile(context.Background(), "order.pdf")
	require.NoError(t, err)
	assert.Equal(t, "API returned a response, but no price details were found.", answer)
}

func TestPipeline_UnreadablePDF(t *testing.T) {
	mockLLM := &llm.MockLLM{Response: completeExtraction, StructuredOutputSupported: true}
	extractor := quote.NewExtractor(mockLLM, nil)

	p := quote.NewPipeline(extractor, nil, nil).
		WithTextExtractor(func(string) (string, error) {
			return "", assert.AnError
		})

	answer, err := p.ProcessFile(context.Background(), "scan.pdf")
	require.NoError(t, err)

	assert.Contains(t, answer, "couldn't extract any text")
	assert.Equal(t, 0, mockLLM.Calls(), "extraction must not run without text")
}

func TestPipeline_UnparseableExtraction(t *testing.T) {
	p, _, calls := newPipeline(t, "sorry, I cannot help with that", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	answer, err := p.ProcessFile(context.Background(), "order.pdf")
	require.NoError(t, err)

	assert.Equal(t, 0, *calls)
	assert.Contains(t, answer, "couldn't make sense")
}
