// Command eurogate runs the logistics assistant HTTP service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shk-aftab/Eurogate/config"
	"github.com/Shk-aftab/Eurogate/embedding"
	"github.com/Shk-aftab/Eurogate/ingest"
	"github.com/Shk-aftab/Eurogate/llm"
	"github.com/Shk-aftab/Eurogate/quote"
	"github.com/Shk-aftab/Eurogate/quoteapi"
	"github.com/Shk-aftab/Eurogate/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chatLLM := llm.NewOpenAILLM(cfg.OpenAIBaseURL, cfg.LLMModel, cfg.OpenAIAPIKey)
	embedder := embedding.NewOpenAIEmbedding(cfg.OpenAIAPIKey, cfg.EmbeddingModel)

	manager := ingest.NewManager(cfg, chatLLM, embedder, logger)

	logger.Info("building index and order table")
	if err := manager.Init(ctx, false); err != nil {
		return err
	}

	quoteClient := quoteapi.NewClient(cfg.QuoteAPIBaseURL, cfg.QuoteAPIKey, logger)
	pipeline := quote.NewPipeline(quote.NewExtractor(chatLLM, logger), quoteClient, logger)

	srv := server.New(manager, pipeline, manager, cfg.UploadDir, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
