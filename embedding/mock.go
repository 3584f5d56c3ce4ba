package embedding

import "context"

// MockEmbeddingModel is a deterministic embedding model for tests.
// When Embedding is set it is returned verbatim, otherwise the input
// text is hashed so identical texts produce identical embeddings.
type MockEmbeddingModel struct {
	// Embedding, when set, is returned for every input.
	Embedding []float64
	// Dim is the embedding dimension for hashed embeddings (default 8).
	Dim int
	// Err is the error to return (if any).
	Err error
}

func NewMockEmbeddingModel() *MockEmbeddingModel {
	return &MockEmbeddingModel{Dim: 8}
}

func (m *MockEmbeddingModel) dim() int {
	if m.Dim <= 0 {
		return 8
	}
	return m.Dim
}

func (m *MockEmbeddingModel) embed(text string) []float64 {
	if m.Embedding != nil {
		return m.Embedding
	}
	vec := make([]float64, m.dim())
	for i, r := range text {
		vec[i%len(vec)] += float64(r%97) / 97.0
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (m *MockEmbeddingModel) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.embed(text), nil
}

func (m *MockEmbeddingModel) GetQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.embed(query), nil
}

var _ EmbeddingModel = (*MockEmbeddingModel)(nil)
