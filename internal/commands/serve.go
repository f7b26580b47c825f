package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/config"
	"github.com/openbooks-dev/openbooks/internal/handler"
	"github.com/openbooks-dev/openbooks/internal/logging"
	"github.com/openbooks-dev/openbooks/internal/middleware"
	"github.com/openbooks-dev/openbooks/internal/posting"
	"github.com/openbooks-dev/openbooks/internal/repository"
	"github.com/openbooks-dev/openbooks/internal/sequence"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init("openbooks", cfg.LogLevel, cfg.AppEnv)

	db, err := connectDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	stores := repository.NewStores(db)
	postingSvc := posting.NewService(stores)
	allocator := sequence.NewAllocator(stores.DB, stores.Sequences, cfg.SequencePrefixes)

	health := handler.NewHealthHandler(db)
	ledger := handler.NewLedgerHandler(postingSvc, allocator, stores.Entries)
	accounts := handler.NewAccountHandler(stores.Accounts, stores.Entries)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness)

	mux.HandleFunc("POST /api/v1/documents/{type}/{id}/post", ledger.Post)
	mux.HandleFunc("POST /api/v1/documents/{type}/{id}/void", ledger.Void)
	mux.HandleFunc("GET /api/v1/documents/{type}/{id}/entries", ledger.Entries)
	mux.HandleFunc("GET /api/v1/ledger/validate", ledger.Validate)
	mux.HandleFunc("POST /api/v1/numbers/{type}", ledger.Allocate)

	mux.HandleFunc("GET /api/v1/accounts", accounts.List)
	mux.HandleFunc("GET /api/v1/accounts/{id}", accounts.Get)
	mux.HandleFunc("GET /api/v1/accounts/{id}/register", accounts.Register)

	chain := middleware.RequestID(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("runServe: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("runServe: shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
