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

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/elipan/partyplan/internal/server"
	"github.com/elipan/partyplan/internal/storage"
	"github.com/elipan/partyplan/internal/storage/memory"
	"github.com/elipan/partyplan/internal/storage/sqlite"
	"github.com/elipan/partyplan/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// newStore picks the storage backend from the environment. SQLite is
// the default; STORAGE=memory runs without a database, optionally
// snapshotting to DATA_PATH so restarts keep the lists.
func newStore() (storage.Store, error) {
	switch backend := getEnv("STORAGE", "sqlite"); backend {
	case "sqlite":
		dbPath := getEnv("DB_PATH", "./data/partyplan.db")
		store, err := sqlite.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", dbPath)
		return store, nil
	case "memory":
		dataPath := os.Getenv("DATA_PATH")
		store, err := memory.New(dataPath)
		if err != nil {
			return nil, fmt.Errorf("open memory store: %w", err)
		}
		slog.Info("Storage initialized", "backend", "memory", "snapshot", dataPath)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE backend %q", backend)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	logging.Setup()

	store, err := newStore()
	if err != nil {
		return err
	}
	defer store.Close()

	handler := server.New(store).Router()

	// h2c lets clients talk HTTP/2 without TLS when a proxy in front
	// terminates it.
	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
