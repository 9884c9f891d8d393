package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gujnews/internal/app"
	"gujnews/internal/config"
	"gujnews/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var addr string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/gujnews/config.yaml if not provided)")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	svc, overview, err := app.Assemble(cfg, logger)
	if err != nil {
		logger.Fatal("assemble failed", zap.Error(err))
	}
	logger.Info("corpus ready", zap.String("overview", overview))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(svc, logger).Handler(),
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}
