// Package embedding provides text embedding models for vector retrieval.
package embedding

import "context"

// EmbeddingModel is the interface for generating text embeddings.
type EmbeddingModel interface {
	// GetTextEmbedding generates an embedding for a document text.
	GetTextEmbedding(ctx context.Context, text string) ([]float64, error)
	// GetQueryEmbedding generates an embedding for a query string.
	GetQueryEmbedding(ctx context.Context, query string) ([]float64, error)
}
