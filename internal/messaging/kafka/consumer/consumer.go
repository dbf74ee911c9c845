package consumer

import (
	"context"
	"encoding/json"

	"go-calypso/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// PendingApprovalNotifier tells staff that a self-registered visitor is waiting.
type PendingApprovalNotifier interface {
	NotifyPendingApproval(ctx context.Context, event events.VisitLifecycleEvent) error
}

// ConsumeVisitLifecycle reads visit lifecycle events until ctx is done.
// Offsets are committed only after the event is handled; a notifier failure
// leaves the message uncommitted so it is redelivered.
func ConsumeVisitLifecycle(
	ctx context.Context,
	reader MessageReader,
	notifier PendingApprovalNotifier,
	logger *zap.Logger,
) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("kafka.consumer.visit_lifecycle")
	log.Info("visit lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("visit lifecycle consumer stopped")
				return
			}
			log.Error("fetch visit lifecycle message failed", zap.Error(err))
			continue
		}

		if !handleMessage(ctx, msg, notifier, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit visit lifecycle message failed", zap.Error(err))
		}
	}
}

// handleMessage returns true when the message can be committed.
func handleMessage(ctx context.Context, msg kafkago.Message, notifier PendingApprovalNotifier, log *zap.Logger) bool {
	var event events.VisitLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// poison message, skip it
		log.Error("decode visit lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	if !event.RequiresApproval() {
		log.Debug("visit lifecycle event ignored",
			zap.String("event_type", event.EventType),
			zap.String("visit_id", event.VisitID),
		)
		return true
	}

	if err := notifier.NotifyPendingApproval(ctx, event); err != nil {
		log.Error("notify pending approval failed",
			zap.String("visit_id", event.VisitID),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return false
	}

	log.Info("pending approval notified",
		zap.String("visit_id", event.VisitID),
		zap.String("branch_id", event.BranchID),
	)
	return true
}
