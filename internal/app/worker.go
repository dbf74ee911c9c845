package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-calypso/internal/config"
	"go-calypso/internal/events"
	"go-calypso/internal/messaging/kafka"
	"go-calypso/internal/messaging/kafka/producer"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("app.worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := ConnectDB(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connectKafka(ctx, cfg, events.VisitLifecycleTopic, logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		writer,
		logger,
		cfg.OutboxPollInterval,
	)

	log.Info("worker shutting down")
	return nil
}

// RequeueVisitEvents revives the dead outbox events of one visit so the
// worker retries them on its next poll.
func RequeueVisitEvents(ctx context.Context, cfg *config.Config, visitID string, logger *zap.Logger) (int64, error) {
	if logger == nil {
		logger = zap.L()
	}
	gormDB, err := ConnectDB(cfg, logger)
	if err != nil {
		return 0, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return 0, err
	}
	defer sqlDB.Close()

	n, err := kafka.NewOutboxRepository(sqlDB).Requeue(ctx, events.AggregateVisit, visitID)
	if err != nil {
		return 0, err
	}
	logger.Named("app.worker").Info("outbox events requeued",
		zap.String("visit_id", visitID),
		zap.Int64("count", n),
	)
	return n, nil
}
