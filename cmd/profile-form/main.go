package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	profileform "github.com/goliatone/go-profileform"
	"github.com/goliatone/go-profileform/internal/config"
	"github.com/goliatone/go-profileform/internal/logging"
	"github.com/goliatone/go-profileform/pkg/renderers/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	baseURL := flag.String("base-url", "", "profile service base URL (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	logFile := flag.String("log-file", "", "write logs to this file instead of stderr")
	flag.Parse()

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Env: cfg.Log.Env}
	if *logFile != "" {
		logOpts.OutputPaths = []string{*logFile}
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	theme := tui.DefaultTheme()
	a, err := profileform.New(
		profileform.WithBaseURL(cfg.BaseURL),
		profileform.WithTimeout(cfg.Timeout),
		profileform.WithMaxPhotoBytes(cfg.MaxPhotoBytes),
		profileform.WithTemplates(cfg.Notifications),
		profileform.WithLogger(logger),
		profileform.WithNotifier(tui.NewNotifier(os.Stdout, theme)),
	)
	if err != nil {
		logger.Fatal("build form", zap.Error(err))
	}

	session, err := tui.New(a, tui.WithTheme(theme), tui.WithOutput(os.Stdout))
	if err != nil {
		logger.Fatal("build session", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("profile form started", zap.String("base_url", cfg.BaseURL))
	if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) && !errors.Is(err, context.Canceled) {
		logger.Error("session ended", zap.Error(err))
		os.Exit(1)
	}
}
