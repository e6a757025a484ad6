package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/api"
	"github.com/sandeepkv93/taskpager/internal/lifecycle"
	"github.com/sandeepkv93/taskpager/internal/logger"
	"github.com/sandeepkv93/taskpager/internal/model"
	"github.com/sandeepkv93/taskpager/internal/scheduler"
	"github.com/sandeepkv93/taskpager/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskpager failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", update.DefaultConfigPath(), "path to the TOML config file")
	baseURL := flag.String("api", "", "override the task API base URL")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := update.LoadRuntimeConfigFile(*configPath, update.DefaultRuntimeConfig())
	if err != nil {
		return err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)
	if *baseURL != "" {
		cfg.APIBaseURL = *baseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, Path: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	state, err := update.LoadSessionState(cfg.StatePath)
	if err != nil {
		log.Warn("session state unreadable, starting fresh", zap.String("path", cfg.StatePath), zap.Error(err))
	}
	anchor := state.Anchor(time.Now())
	state.SynthesisAnchor = anchor.Format(model.DateLayout)
	if err := update.SaveSessionState(cfg.StatePath, state); err != nil {
		log.Warn("session state not saved", zap.String("path", cfg.StatePath), zap.Error(err))
	}

	synth, err := api.NewSynthesizer(cfg.Synthesis, anchor)
	if err != nil {
		return err
	}
	client := api.New(api.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout,
		Synthesizer: synth,
		Logger:      log,
	})

	manager := lifecycle.New(5*time.Second, log)
	ctx, cancel := manager.SignalContext(context.Background())
	defer cancel()

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	manager.Register("scheduler", func(context.Context) error {
		engine.Stop()
		return nil
	})

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModelWithConfig(client, engine, notifier, log, cfg).WithContext(ctx)

	log.Info("starting",
		zap.String("api", cfg.APIBaseURL),
		zap.Int("page_size", cfg.PageSize),
		zap.String("synthesis", cfg.Synthesis),
		zap.String("anchor", state.SynthesisAnchor),
	)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()
	if runErr != nil && ctx.Err() != nil {
		runErr = nil
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	return runErr
}
