package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-profileform/components/occupations"
	"github.com/goliatone/go-profileform/internal/config"
	"github.com/goliatone/go-profileform/internal/logging"
	"github.com/goliatone/go-profileform/internal/server"
	"github.com/goliatone/go-profileform/internal/store"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Env: cfg.Log.Env})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("open repository", zap.Error(err))
	}
	defer closeRepo()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithRateLimit(cfg.RateLimit),
		server.WithBodyLimit(cfg.BodyLimit),
	}
	if cfg.OccupationsFile != "" {
		items, err := readOccupations(cfg.OccupationsFile)
		if err != nil {
			logger.Fatal("read occupations", zap.Error(err))
		}
		opts = append(opts, server.WithOccupations(items))
	}

	srv, err := server.New(ctx, repo, opts...)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}
	if err := srv.Run(ctx, cfg.Addr, cfg.ShutdownTimeout); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
	logger.Info("profile service stopped")
}

func openRepository(ctx context.Context, cfg config.Mongo, logger *zap.Logger) (store.Repository, func(), error) {
	if cfg.URI == "" {
		logger.Warn("no mongo uri configured, profiles are kept in memory")
		return store.NewMemory(), func() {}, nil
	}
	client, err := store.ConnectMongo(ctx, cfg.URI, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to mongo", zap.String("database", cfg.Database))
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect mongo", zap.Error(err))
		}
	}
	return store.NewMongo(client.Database(cfg.Database).Collection(cfg.Collection)), closeFn, nil
}

func readOccupations(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return occupations.LoadOccupations(f)
}
