package internal

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"userinfo-service/config"
	"userinfo-service/internal/application/ports"
	"userinfo-service/internal/infrastructure/mq"
	"userinfo-service/internal/infrastructure/search/elastic"
	"userinfo-service/pkg/rmqconsumer"
)

// Indexer applies broker mirror events to the search index. It is the
// consuming side of SEARCH_SYNC_MODE=broker.
type Indexer struct {
	logger   *zap.Logger
	cfg      config.Config
	consumer ports.RMQConsumer
}

func NewIndexer(ctx context.Context) (*Indexer, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(err))
	}
	cfg := config.Load()
	if len(cfg.ES.Addresses) == 0 {
		logger.Fatal("at least one elasticsearch address is required")
	}

	es, err := elastic.New(ctx, logger, cfg.ES)
	if err != nil {
		logger.Fatal("failed to connect to elasticsearch", zap.Error(err))
	}
	searchIndex := elastic.NewUserInfoIndex(es, cfg.ES.Index)
	if err = searchIndex.EnsureIndex(ctx); err != nil {
		logger.Fatal("failed to prepare search index", zap.Error(err))
	}

	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	consumer := rmqconsumer.New(cfg.MQ, logger, mq.RoutingKeys(), mq.NewIndexHandler(searchIndex))
	if err = consumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = consumer.Init(); err != nil {
		consumer.Close()
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &Indexer{
		logger:   logger,
		cfg:      cfg,
		consumer: consumer,
	}, nil
}

func (i *Indexer) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		i.consumer.DeliveryWorker(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	i.logger.Info("indexer gracefully stopped")

	return nil
}

func (i *Indexer) Close() {
	i.consumer.Close()
	_ = i.logger.Sync()
}

func (i *Indexer) Logger() *zap.Logger { return i.logger }
