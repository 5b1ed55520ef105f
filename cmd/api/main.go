package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockquotes-service/internal/bootstrap"
	"stockquotes-service/internal/config"
	"stockquotes-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()

	api, cleanup, err := bootstrap.InitAPI()
	if err != nil {
		logger.Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()

	cfg := api.Config
	if cfg.Provider == config.ProviderTwelveData {
		if err := config.CheckAPIKey(); err != nil {
			logger.Warn("provider key missing; lookups will fail until it is set", zap.Error(err))
		}
	}

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server started",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("provider", cfg.Provider),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
