// Package server exposes the assistant and quote pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Shk-aftab/Eurogate/assistant"
)

// ChatService answers chat messages.
type ChatService interface {
	Chat(ctx context.Context, query string) *assistant.Response
}

// QuotePipeline turns a saved PDF into a chat answer.
type QuotePipeline interface {
	ProcessFile(ctx context.Context, filePath string) (string, error)
}

// Rebuilder re-ingests the document index.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	chat      ChatService
	pipeline  QuotePipeline
	rebuilder Rebuilder
	uploadDir string
	logger    *slog.Logger
}

// New creates a server.
func New(chat ChatService, pipeline QuotePipeline, rebuilder Rebuilder, uploadDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		chat:      chat,
		pipeline:  pipeline,
		rebuilder: rebuilder,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Handler returns the routed HTTP handler with logging and recovery
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/upload_and_chat", s.handleUploadAndChat)
	mux.HandleFunc("POST /api/rebuild-index", s.handleRebuildIndex)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRecovery(s.withLogging(mux))
}
