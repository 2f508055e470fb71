package consumer

import (
	"context"
	"encoding/json"

	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// BalanceOpener seeds leave balances for a new employee; ledger.Service
// satisfies it.
type BalanceOpener interface {
	OpenBalances(ctx context.Context, employeeID string) error
}

// ConsumeEmployeeLifecycle opens leave balances for every employee_created
// event until ctx is cancelled. A message is committed only after its
// balances exist, so a failed one is redelivered after a restart.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	ledger BalanceOpener,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if event.EventType != events.EventEmployeeCreated || event.EmployeeID == "" {
			log.Debug("skipping employee lifecycle event", zap.String("event_type", event.EventType))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := ledger.OpenBalances(ctx, event.EmployeeID); err != nil {
			log.Error("open leave balances failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave balances opened from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("employee_number", event.EmployeeNumber),
		)
	}
}
