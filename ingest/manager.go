// Package ingest builds the retrieval index and order table at startup
// and swaps them atomically on rebuild.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Shk-aftab/Eurogate/assistant"
	"github.com/Shk-aftab/Eurogate/config"
	"github.com/Shk-aftab/Eurogate/embedding"
	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/orders"
	"github.com/Shk-aftab/Eurogate/rag"
	"github.com/Shk-aftab/Eurogate/rag/reader"
	"github.com/Shk-aftab/Eurogate/rag/store/chromem"
	"github.com/Shk-aftab/Eurogate/router"
	"github.com/Shk-aftab/Eurogate/schema"
	"github.com/Shk-aftab/Eurogate/textsplitter"
	"github.com/Shk-aftab/Eurogate/tools"
)

// Manager owns the index, order table, and assistant. Rebuild replaces
// them under the lock while requests keep reading the old ones.
type Manager struct {
	cfg      *config.Config
	llm      llm.LLM
	embedder embedding.EmbeddingModel
	splitter *textsplitter.SentenceSplitter
	logger   *slog.Logger

	mu        sync.RWMutex
	assistant *assistant.Assistant
}

// NewManager creates an ingestion manager. The default sentence splitter
// is built lazily on first index build; WithSplitter overrides it.
func NewManager(cfg *config.Config, l llm.LLM, embedder embedding.EmbeddingModel, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		llm:      l,
		embedder: embedder,
		logger:   logger,
	}
}

// WithSplitter replaces the default sentence splitter.
func (m *Manager) WithSplitter(s *textsplitter.SentenceSplitter) *Manager {
	m.splitter = s
	return m
}

func (m *Manager) ensureSplitter() error {
	if m.splitter != nil {
		return nil
	}

	tokenizer, err := textsplitter.DefaultTokenizer()
	if err != nil {
		return fmt.Errorf("failed to create tokenizer: %w", err)
	}

	strategy, err := textsplitter.NewNeurosnapSplitterStrategy(nil)
	if err != nil {
		return fmt.Errorf("failed to create sentence strategy: %w", err)
	}

	m.splitter = textsplitter.NewSentenceSplitter(m.cfg.ChunkSize, m.cfg.ChunkOverlap, tokenizer, strategy)
	return nil
}

// Assistant returns the current assistant.
func (m *Manager) Assistant() *assistant.Assistant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assistant
}

// Chat answers through whichever assistant is current, so requests keep
// working across rebuilds.
func (m *Manager) Chat(ctx context.Context, query string) *assistant.Response {
	a := m.Assistant()
	if a == nil {
		return &assistant.Response{Response: assistant.GenericFailureMessage}
	}
	return a.Chat(ctx, query)
}

// Init builds the index and order table. An existing persisted index is
// reused unless force is set, which drops and re-ingests it.
func (m *Manager) Init(ctx context.Context, force bool) error {
	if force {
		if err := os.RemoveAll(m.cfg.StorageDir); err != nil {
			return fmt.Errorf("failed to drop persisted index: %w", err)
		}
	}

	store, err := chromem.NewChromemStore(m.cfg.StorageDir, m.cfg.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}

	if store.Count() == 0 {
		if err := m.buildIndex(ctx, store); err != nil {
			return err
		}
	} else {
		m.logger.Info("reusing persisted index", "documents", store.Count())
	}

	table, err := orders.Load(m.cfg.OrdersCSV)
	if err != nil {
		return fmt.Errorf("failed to load order table: %w", err)
	}
	m.logger.Info("order table loaded", "rows", len(table.Rows), "columns", len(table.Columns))

	retriever := rag.NewVectorRetriever(store, m.embedder, m.cfg.TopK)
	docEngine := rag.NewRetrieverQueryEngine(retriever, rag.NewContextSynthesizer(m.llm))
	tableEngine := orders.NewTableQueryEngine(table, m.llm, m.logger)

	documentsTool := tools.NewQueryEngineTool(docEngine,
		tools.WithQueryEngineToolName(assistant.DocumentsToolName),
		tools.WithQueryEngineToolDescription(assistant.DocumentsToolDescription))
	ordersTool := tools.NewQueryEngineTool(tableEngine,
		tools.WithQueryEngineToolName(assistant.OrdersToolName),
		tools.WithQueryEngineToolDescription(assistant.OrdersToolDescription))

	llmRouter := router.NewLLMRouter(m.llm, []router.Choice{
		{Route: router.RouteDocuments, Description: assistant.DocumentsToolDescription},
		{Route: router.RouteOrders, Description: assistant.OrdersToolDescription},
	}, m.logger)
	rules := router.NewRuleRouter(llmRouter)

	built := assistant.New(rules, documentsTool, ordersTool, m.logger)

	m.mu.Lock()
	m.assistant = built
	m.mu.Unlock()

	return nil
}

// Rebuild drops the persisted index and re-ingests everything.
func (m *Manager) Rebuild(ctx context.Context) error {
	return m.Init(ctx, true)
}

func (m *Manager) buildIndex(ctx context.Context, store *chromem.ChromemStore) error {
	if err := m.ensureSplitter(); err != nil {
		return err
	}

	docs, err := m.loadDocuments()
	if err != nil {
		return err
	}
	m.logger.Info("documents loaded", "count", len(docs))

	nodes, err := m.splitAndEmbed(ctx, docs)
	if err != nil {
		return err
	}

	if _, err := store.Add(ctx, nodes); err != nil {
		return fmt.Errorf("failed to index nodes: %w", err)
	}
	m.logger.Info("index built", "chunks", len(nodes))

	return nil
}

func (m *Manager) loadDocuments() ([]schema.Node, error) {
	var docs []schema.Node

	if _, err := os.Stat(m.cfg.FAQFile); err == nil {
		faqNodes, err := reader.NewFAQReader(m.cfg.FAQFile).LoadData()
		if err != nil {
			return nil, fmt.Errorf("failed to load FAQ: %w", err)
		}
		docs = append(docs, faqNodes...)
	} else {
		m.logger.Warn("FAQ file not found, skipping", "path", m.cfg.FAQFile)
	}

	dirNodes, err := reader.NewDirectoryReader(m.cfg.DataDir, true).
		WithExcludeFiles("Solutions.json").
		LoadData()
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	docs = append(docs, dirNodes...)

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found under %s", m.cfg.DataDir)
	}

	return docs, nil
}

func (m *Manager) splitAndEmbed(ctx context.Context, docs []schema.Node) ([]schema.Node, error) {
	var nodes []schema.Node
	for _, doc := range docs {
		for _, chunk := range m.splitter.SplitText(doc.Text) {
			node := schema.NewTextNode(chunk)
			for k, v := range doc.Metadata {
				node.Metadata[k] = v
			}

			emb, err := m.embedder.GetTextEmbedding(ctx, chunk)
			if err != nil {
				return nil, fmt.Errorf("failed to embed chunk: %w", err)
			}
			node.Embedding = emb

			nodes = append(nodes, *node)
		}
	}
	return nodes, nil
}
