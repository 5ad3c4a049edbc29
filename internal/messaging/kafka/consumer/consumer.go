package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-hris-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DefaultProfileCreator is satisfied by employeesalary.Service.
type DefaultProfileCreator interface {
	EnsureDefault(ctx context.Context, companyID, employeeID string) (bool, error)
}

// errSkip marks a message that can never succeed; it is committed and
// dropped instead of being retried.
var errSkip = errors.New("skip message")

// ConsumeEmployeeLifecycle gives every new employee a zero salary profile.
// Messages are committed only after they were handled; a failed message is
// fetched again on the next rebalance or restart.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	profiles DefaultProfileCreator,
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

		err = handleEmployeeLifecycle(ctx, msg, profiles, log)
		if err != nil && !errors.Is(err, errSkip) {
			log.Error("handle employee lifecycle message failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

func handleEmployeeLifecycle(ctx context.Context, msg kafkago.Message, profiles DefaultProfileCreator, log *zap.Logger) error {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Warn("decode employee lifecycle event failed", zap.Error(err))
		return errSkip
	}
	if event.EventType != events.EmployeeCreatedType {
		return errSkip
	}

	created, err := profiles.EnsureDefault(ctx, event.CompanyID, event.EmployeeID)
	if err != nil {
		return err
	}

	if created {
		log.Info("default salary profile created",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
	} else {
		log.Debug("salary profile already exists, skipping",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
	}
	return nil
}
