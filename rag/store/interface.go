// Package store defines the vector store abstraction for the retrieval layer.
package store

import (
	"context"

	"github.com/Shk-aftab/Eurogate/schema"
)

// VectorStore is the interface for storing and querying vectors.
type VectorStore interface {
	// Add adds nodes to the store.
	Add(ctx context.Context, nodes []schema.Node) ([]string, error)
	// Query finds the top-k most similar nodes to the query embedding.
	Query(ctx context.Context, query schema.VectorStoreQuery) ([]schema.NodeWithScore, error)
	// Delete removes a node from the store by ID.
	Delete(ctx context.Context, id string) error
}
