// Command backfill computes embeddings for approved materials that do
// not have one yet. Run it after a catalog import or on a schedule; a
// run that finds nothing to do exits cleanly.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mevaro/searchd/internal/config"
	dbRedis "github.com/mevaro/searchd/internal/db/redis"
	logpkg "github.com/mevaro/searchd/internal/logger"
	"github.com/mevaro/searchd/internal/metrics"
	materialrepo "github.com/mevaro/searchd/internal/repository/material"
	openaiEmb "github.com/mevaro/searchd/internal/transport/openai"
	backfilluc "github.com/mevaro/searchd/internal/usecase/backfill"
	"github.com/mevaro/searchd/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting embedding backfill",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.RegisterEmbeddingMetrics()

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.RequestTimeoutSec) * time.Second,
		Logger:     logger,
	})

	repo := materialrepo.New(store, embedder.Dimensions()).
		WithKeyPrefix(cfg.Storage.KeyPrefix).
		WithHNSW(materialrepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		})
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure search index", zap.Error(err))
	}

	report, err := backfilluc.New(repo, embedder, logger).Run(ctx)
	if err != nil {
		logger.Error("Backfill aborted",
			zap.Int("scanned", report.Scanned),
			zap.Int("embedded", report.Embedded),
			zap.Int("failed", report.Failed),
			zap.Error(err),
		)
		os.Exit(1)
	}

	logger.Info("Backfill complete",
		zap.Int("scanned", report.Scanned),
		zap.Int("embedded", report.Embedded),
		zap.Int("failed", report.Failed),
	)
}
