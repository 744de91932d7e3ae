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

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/config"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/server"
	"github.com/LeviOP/wealthwise/internal/service"
	"github.com/LeviOP/wealthwise/internal/storage/backend"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.New(log.DefaultConfig()).Error("load config", log.FieldError, err)
		os.Exit(1)
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("init database", log.FieldError, err)
		os.Exit(1)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	svc := service.New(store, tokens, logger)
	gate := auth.NewGate(tokens, store, logger)

	srv, err := server.New(cfg, svc, gate, logger)
	if err != nil {
		logger.Error("init server", log.FieldError, err)
		os.Exit(1)
	}

	go func() {
		logger.Info("WealthWise backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", log.FieldError, err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", log.FieldError, err)
	}
}
