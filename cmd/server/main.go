// Command server starts the Sentra Phishing Detection API.
//
// Usage:
//
//	go run ./cmd/server [flags]
//
// Flags:
//
//	-config  Path to a YAML config file (default: config.yaml)
//	-addr    HTTP listen address; overrides the config file when set
//	-seed    Path to a seed data JSON file to load on startup (default: data/seed.json)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"sentra/phishing-api/internal/api"
	"sentra/phishing-api/internal/config"
	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/engine"
	"sentra/phishing-api/internal/store"
	"sentra/phishing-api/internal/webhook"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	seedFile := flag.String("seed", "data/seed.json", "path to seed data JSON file")
	flag.Parse()

	// Structured logging — JSON in production, text-friendly in development.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("config load failed", "file", *configFile, "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	// Railway (and most PaaS platforms) inject PORT as an env var.
	// It takes precedence over both the flag and the config file.
	if envPort := os.Getenv("PORT"); envPort != "" {
		if p, err := strconv.Atoi(envPort); err == nil {
			cfg.Server.Addr = fmt.Sprintf(":%d", p)
		}
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("config invalid", "error", err)
		os.Exit(1)
	}

	// ── Wire dependencies ─────────────────────────────────────────────────────
	s, err := openStore(cfg)
	if err != nil {
		slog.Error("store init failed", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	notifier := webhook.New(s, cfg.WebhookTimeout())
	handler := api.NewHandler(s, notifier)
	router := api.NewRouter(handler)

	// ── Load seed data ────────────────────────────────────────────────────────
	if err := loadSeedData(s, *seedFile); err != nil {
		// Non-fatal: the API works fine without seed data.
		slog.Warn("seed data not loaded", "file", *seedFile, "reason", err.Error())
	}

	// ── Start HTTP server ─────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening",
			"addr", cfg.Server.Addr, "storage", cfg.Storage.Driver, "seed_file", *seedFile)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return store.NewSQLite(cfg.Storage.SQLitePath)
	default:
		return store.NewMemory(), nil
	}
}

// loadSeedData reads a JSON file of AnalysisRequests, scores each one, and
// persists them so the API starts with historical context for the reports.
func loadSeedData(s store.Store, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var requests []domain.AnalysisRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	var loaded, skipped int
	for _, req := range requests {
		if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
			skipped++
			continue
		}
		a := &domain.Analysis{
			ID:              uuid.NewString(),
			AnalysisRequest: req,
			Result:          engine.Analyze(req.Text, req.URL),
			ProcessedAt:     time.Now().UTC(),
		}
		if err := s.SaveAnalysis(a); err != nil {
			skipped++
		} else {
			loaded++
		}
	}

	slog.Info("seed data loaded", "file", filePath, "loaded", loaded, "skipped", skipped)
	return nil
}
