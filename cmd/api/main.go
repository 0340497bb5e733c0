package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"sctr/internal/api"
	"sctr/internal/config"
	"sctr/internal/logger"
	"sctr/internal/providers"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	pflag.StringVarP(&cfg.APIAddr, "addr", "a", cfg.APIAddr, "listen address")
	pflag.StringVar(&cfg.ExtractorBaseURL, "api-url", cfg.ExtractorBaseURL, "extraction service base URL")
	pflag.Int64Var(&cfg.MaxUploadBytes, "max-size", cfg.MaxUploadBytes, "maximum upload size in bytes")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pflag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (json, pretty)")
	pflag.Parse()

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ex, err := providers.NewExtractor(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("invalid extraction service configuration")
		os.Exit(1)
	}
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           api.NewServer(cfg, ex).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.APIAddr).Str("extractor", ex.Endpoint()).Int64("max_upload_bytes", cfg.MaxUploadBytes).Msg("sctr api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
	logger.Info().Msg("stopped")
}
