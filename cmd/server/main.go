// Command server exposes document complexity analysis over HTTP: upload a
// file, receive the complexity report.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/brunobiangulo/docscore"
)

// serverConfig is the YAML config file shape for the server binary.
type serverConfig struct {
	Addr        string `yaml:"addr"`
	MaxFileSize int64  `yaml:"max_file_size"`
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	srvCfg := serverConfig{Addr: *addr}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			slog.Error("opening config", "error", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &srvCfg); err != nil {
			slog.Error("parsing config", "error", err)
			os.Exit(1)
		}
		if srvCfg.Addr == "" {
			srvCfg.Addr = *addr
		}
	}

	// Override from environment variables.
	if v := os.Getenv("DOCSCORE_ADDR"); v != "" {
		srvCfg.Addr = v
	}
	apiKey := os.Getenv("DOCSCORE_API_KEY")

	cfg := docscore.DefaultConfig()
	if srvCfg.MaxFileSize > 0 {
		cfg.MaxFileSize = srvCfg.MaxFileSize
	}
	analyzer := docscore.New(cfg)

	h := newHandler(analyzer, cfg.MaxFileSize)

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(func(next http.Handler) http.Handler { return authMiddleware(apiKey, next) })
	r.Use(logMiddleware)

	r.Post("/analyze", h.handleAnalyze)
	r.Get("/health", h.handleHealth)

	srv := &http.Server{
		Addr:         srvCfg.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // large documents can take a while
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srvCfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
