package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/app"
	"github.com/raw2ready/backend/internal/config"
	"github.com/raw2ready/backend/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	envPath := flag.String("env", ".env", "Path to dotenv file")
	flag.Parse()

	bootLog, _ := zap.NewProduction()
	if err := config.LoadDotEnv(*envPath); err != nil {
		bootLog.Fatal("failed to load env file", zap.Error(err))
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog.Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(logger.Options{Dir: cfg.LogDir(), Debug: cfg.IsDev()})
	if err != nil {
		log = bootLog
		log.Warn("file logging unavailable, falling back to zap production logger", zap.Error(err))
	}
	defer log.Sync()

	application, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}

	// Deck and video requests block while remote tasks are polled, so the
	// write timeout is left unset.
	srv := &http.Server{
		Addr:              application.Addr(),
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	application.Shutdown()
	log.Info("server exited")
}
