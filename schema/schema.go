// Package schema defines the core data types shared by the retrieval
// and ingestion layers.
package schema

import "github.com/google/uuid"

// NodeType represents the type of a node.
type NodeType string

const (
	// ObjectTypeText represents a text chunk produced by splitting.
	ObjectTypeText NodeType = "TEXT"
	// ObjectTypeDocument represents a whole source document.
	ObjectTypeDocument NodeType = "DOCUMENT"
)

// Node is a chunk of text with metadata and an optional embedding.
type Node struct {
	ID        string                 `json:"id"`
	Text      string                 `json:"text"`
	Type      NodeType               `json:"type"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Embedding []float64              `json:"embedding,omitempty"`
}

// NewTextNode creates a text node with a generated ID.
func NewTextNode(text string) *Node {
	return &Node{
		ID:       uuid.New().String(),
		Text:     text,
		Type:     ObjectTypeText,
		Metadata: make(map[string]interface{}),
	}
}

// Document is a raw source record before splitting.
type Document struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NodeWithScore pairs a node with its similarity score.
type NodeWithScore struct {
	Node  Node    `json:"node"`
	Score float64 `json:"score"`
}

// MetadataFilter is a single exact-match metadata constraint.
type MetadataFilter struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// MetadataFilters is a set of filters combined with AND semantics.
type MetadataFilters struct {
	Filters []MetadataFilter `json:"filters"`
}

// NewMetadataFilters creates a filter set.
func NewMetadataFilters(filters ...MetadataFilter) *MetadataFilters {
	return &MetadataFilters{Filters: filters}
}

// QueryBundle encapsulates a query string and optional metadata filters.
type QueryBundle struct {
	QueryString string           `json:"query_string"`
	Filters     *MetadataFilters `json:"filters,omitempty"`
}

// EngineResponse is a generated answer plus the nodes it was grounded on.
type EngineResponse struct {
	Response    string          `json:"response"`
	SourceNodes []NodeWithScore `json:"source_nodes,omitempty"`
}

// VectorStoreQuery is a similarity-search request against a vector store.
type VectorStoreQuery struct {
	Embedding []float64        `json:"embedding,omitempty"`
	TopK      int              `json:"top_k"`
	Filters   *MetadataFilters `json:"filters,omitempty"`
}
