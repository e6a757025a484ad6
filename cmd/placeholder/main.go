package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/lifecycle"
	"github.com/sandeepkv93/taskpager/internal/logger"
	"github.com/sandeepkv93/taskpager/internal/placeholder"
	"github.com/sandeepkv93/taskpager/internal/storage"
)

func main() {
	cfg := placeholder.LoadConfig()

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	manager := lifecycle.New(0, zapLogger)
	appCtx, cancel := manager.SignalContext(context.Background())
	defer cancel()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		zapLogger.Fatal("open fixture store failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	manager.Register("sqlite", func(context.Context) error {
		return repo.Close()
	})

	seeded, err := repo.Seed(appCtx, cfg.SeedCount)
	if err != nil {
		zapLogger.Fatal("seeding fixtures failed", zap.Error(err))
	}
	zapLogger.Info("fixtures ready", zap.Int("seeded", seeded), zap.String("path", cfg.DBPath))

	srv := placeholder.NewServer(repo, zapLogger, cfg.Latency)
	server := &fasthttp.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Name:         "taskpager-placeholder",
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
