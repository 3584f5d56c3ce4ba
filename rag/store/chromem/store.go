// Package chromem implements the vector store on top of chromem-go.
package chromem

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Shk-aftab/Eurogate/rag/store"
	"github.com/Shk-aftab/Eurogate/schema"
	"github.com/philippgille/chromem-go"
)

var _ store.VectorStore = (*ChromemStore)(nil)

// ChromemStore is a vector store implementation using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemStore creates a new ChromemStore.
// If persistPath is empty, the store is in-memory only.
func NewChromemStore(persistPath string, collectionName string) (*ChromemStore, error) {
	var db *chromem.DB
	if persistPath != "" {
		var err error
		db, err = chromem.NewPersistentDB(persistPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create persistent chromem db: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings are computed externally and passed in explicitly, so no
	// embedding function is registered on the collection.
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: collection,
	}, nil
}

// Count returns the number of documents in the collection.
func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// Add adds nodes to the store.
func (s *ChromemStore) Add(ctx context.Context, nodes []schema.Node) ([]string, error) {
	docs := make([]chromem.Document, len(nodes))
	ids := make([]string, len(nodes))

	for i, node := range nodes {
		if len(node.Embedding) == 0 {
			return nil, fmt.Errorf("node %s has no embedding", node.ID)
		}

		// chromem metadata is map[string]string.
		meta := make(map[string]string)
		for k, v := range node.Metadata {
			meta[k] = fmt.Sprintf("%v", v)
		}

		if _, ok := meta["_node_type"]; !ok {
			meta["_node_type"] = string(node.Type)
		}

		embedding32 := make([]float32, len(node.Embedding))
		for j, v := range node.Embedding {
			embedding32[j] = float32(v)
		}

		docs[i] = chromem.Document{
			ID:        node.ID,
			Content:   node.Text,
			Metadata:  meta,
			Embedding: embedding32,
		}
		ids[i] = node.ID
	}

	err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU())
	if err != nil {
		return nil, fmt.Errorf("failed to add documents to chromem collection: %w", err)
	}

	return ids, nil
}

// Query finds the top-k most similar nodes to the query embedding.
func (s *ChromemStore) Query(ctx context.Context, query schema.VectorStoreQuery) ([]schema.NodeWithScore, error) {
	queryEmbedding32 := make([]float32, len(query.Embedding))
	for i, v := range query.Embedding {
		queryEmbedding32[i] = float32(v)
	}

	var where map[string]string

	if query.Filters != nil {
		for _, f := range query.Filters.Filters {
			if where == nil {
				where = make(map[string]string)
			}
			where[f.Key] = fmt.Sprintf("%v", f.Value)
		}
	}

	topK := query.TopK
	if count := s.collection.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}

	res, err := s.collection.QueryEmbedding(ctx, queryEmbedding32, topK, where, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query chromem collection: %w", err)
	}

	nodes := make([]schema.NodeWithScore, len(res))
	for i, doc := range res {
		meta := make(map[string]interface{})
		var nodeType schema.NodeType = schema.ObjectTypeText

		for k, v := range doc.Metadata {
			if k == "_node_type" {
				nodeType = schema.NodeType(v)
				continue
			}
			meta[k] = v
		}

		nodes[i] = schema.NodeWithScore{
			Node: schema.Node{
				ID:       doc.ID,
				Text:     doc.Content,
				Type:     nodeType,
				Metadata: meta,
			},
			Score: float64(doc.Similarity),
		}
	}

	return nodes, nil
}

// Delete removes a document from the store by ID.
func (s *ChromemStore) Delete(ctx context.Context, id string) error {
	if err := s.collection.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}
