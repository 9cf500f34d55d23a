package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/clients/cache"
	"max.ks1230/spending-nav/internal/clients/kafka"
	"max.ks1230/spending-nav/internal/config"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/accounts"
	"max.ks1230/spending-nav/internal/model/analytics"
	"max.ks1230/spending-nav/internal/model/auth"
	"max.ks1230/spending-nav/internal/model/ledger"
	"max.ks1230/spending-nav/internal/model/storage"
	"max.ks1230/spending-nav/internal/server"
	"max.ks1230/spending-nav/internal/tracing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, relying on the environment")
	}

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	closer, err := tracing.Init(conf.App().Name())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close tracer", zap.Error(err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres", zap.Error(err))
	}
	if err = db.Migrate(ctx); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	// Cache and event stream are best-effort: the service runs without them.
	var summaryCache server.SummaryCache
	if mc, err := cache.NewMemcache(conf.Memcached()); err != nil {
		logger.Error("memcached unavailable, serving without cache", zap.Error(err))
	} else {
		summaryCache = mc
	}

	var producer server.RefreshProducer
	if p, err := kafka.NewProducer(conf.Kafka()); err != nil {
		logger.Error("kafka unavailable, serving without refresh events", zap.Error(err))
	} else {
		producer = p
		defer p.Close()
	}

	tokens := auth.NewTokenService(conf.Auth())
	accountsService := accounts.NewService(db, tokens)
	ledgerService := ledger.NewService(db)
	generator := analytics.NewGenerator(db)

	srv := server.New(accountsService, ledgerService, generator, tokens, summaryCache, producer)
	if err = srv.Run(ctx, conf.App().Port()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
