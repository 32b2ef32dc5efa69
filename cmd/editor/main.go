package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/resort-points-editor/internal/application"
	"github.com/example/resort-points-editor/internal/config"
	httptransport "github.com/example/resort-points-editor/internal/http"
	"github.com/example/resort-points-editor/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(sqlite.DefaultConfig(cfg.SQLiteDSN))
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	handler := newHandler(cfg, sqlite.NewDocumentStore(pool), logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("points editor API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// newHandler wires the application services into the HTTP surface. Login is
// the only route that bypasses session validation.
func newHandler(cfg config.Config, store *sqlite.DocumentStore, logger *slog.Logger) http.Handler {
	now := time.Now

	sessionService := application.NewSessionServiceWithLogger(cfg.PasswordHash, nil, nil, now, cfg.SessionTTL, logger)
	editorService := application.NewEditorServiceWithLogger(cfg.DefaultYears, logger)
	documentService := application.NewDocumentServiceWithLogger(store, now, logger)
	summaryService := application.NewSummaryServiceWithLogger(cfg.BaseYear, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Sessions:  httptransport.NewSessionHandler(sessionService, logger),
		Documents: httptransport.NewDocumentHandler(documentService, logger),
		Resorts:   httptransport.NewResortHandler(editorService, logger),
		Working:   httptransport.NewWorkingHandler(editorService, logger),
		Summary:   httptransport.NewSummaryHandler(summaryService, logger),
	})

	protected := httptransport.RequireSession(sessionService, logger)(router)
	return httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sessions" && r.Method == http.MethodPost {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))
}
