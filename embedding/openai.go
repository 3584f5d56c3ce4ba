package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedding implements EmbeddingModel using the OpenAI embeddings API.
type OpenAIEmbedding struct {
	client *openai.Client
	model  openai.EmbeddingModel
	logger *slog.Logger
}

func NewOpenAIEmbedding(apiKey string, modelName string) *OpenAIEmbedding {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	model := openai.SmallEmbedding3
	if modelName != "" {
		model = openai.EmbeddingModel(modelName)
	}

	client := openai.NewClient(apiKey)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAIEmbedding{
		client: client,
		model:  model,
		logger: logger,
	}
}

func NewOpenAIEmbeddingWithClient(client *openai.Client, modelName string) *OpenAIEmbedding {
	model := openai.SmallEmbedding3
	if modelName != "" {
		model = openai.EmbeddingModel(modelName)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAIEmbedding{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (e *OpenAIEmbedding) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	return e.embed(ctx, text)
}

func (e *OpenAIEmbedding) GetQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	return e.embed(ctx, query)
}

func (e *OpenAIEmbedding) embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		e.logger.Error("embedding request failed", "error", err)
		return nil, fmt.Errorf("openai embedding failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embeddings")
	}

	embedding := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float64(v)
	}

	return embedding, nil
}

var _ EmbeddingModel = (*OpenAIEmbedding)(nil)
