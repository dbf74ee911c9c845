package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-calypso/internal/config"
	"go-calypso/internal/events"
	"go-calypso/internal/messaging/kafka/consumer"
	"go-calypso/internal/notification"
	"go-calypso/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer emails staff about self-registered visits waiting for
// approval, until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("app.consumer")

	recipients := cfg.NotifyRecipients()
	if len(recipients) == 0 {
		return errors.New("NOTIFY_EMAILS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the writer is discarded; dialing makes sure the broker and topic exist
	w, err := connectKafka(ctx, cfg, events.VisitLifecycleTopic, logger)
	if err != nil {
		return err
	}
	_ = w.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.VisitLifecycleTopic,
		GroupID:        cfg.KafkaGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	mailer := notification.NewMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     fmt.Sprintf("%s <%s>", cfg.AppName, cfg.SMTPUser),
	}, recipients, logger)

	consumer.ConsumeVisitLifecycle(ctx, reader, mailer, logger)

	log.Info("consumer shutting down")
	return nil
}

func connectKafka(ctx context.Context, cfg *config.Config, topic string, logger *zap.Logger) (*kafkago.Writer, error) {
	if cfg.KafkaBroker == "" {
		return nil, errors.New("KAFKA_BROKER is required")
	}
	return connection.ConnectKafkaWithRetry(ctx, cfg.KafkaBroker, topic, 10, logger)
}
