// The reporter drains summary-refresh events and keeps the memcached
// analytics entries warm, so interactive reads rarely pay for a ledger scan.
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
	"max.ks1230/spending-nav/internal/model/analytics"
	"max.ks1230/spending-nav/internal/model/storage"
)

func main() {
	logger.Info("Reporter init - start")

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, relying on the environment")
	}

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres", zap.Error(err))
	}

	summaryCache, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached", zap.Error(err))
	}

	generator := analytics.NewGenerator(db)

	consumer, err := kafka.NewConsumer(conf.Kafka(), generator, summaryCache)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Fatal("failed to consume", zap.Error(err))
	}
}
