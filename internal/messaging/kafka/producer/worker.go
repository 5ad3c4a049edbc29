package producer

import (
	"context"
	"time"

	"go-hris-payroll/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 3 * time.Second
	// defaultLease must outlast publishing a whole batch, otherwise another
	// relay may claim a row that is still in flight.
	defaultLease = time.Minute
)

// Relay moves committed outbox rows to Kafka. Delivery is at least once;
// consumers dedupe on the event_id header.
type Relay struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
	lease        time.Duration
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger, pollInterval time.Duration) *Relay {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Relay{
		repo:         repo,
		writer:       writer,
		logger:       logger.Named("kafka.producer.relay"),
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
		lease:        defaultLease,
	}
}

// Run polls until ctx is cancelled. A full batch is followed immediately by
// the next one so a backlog drains without waiting for the ticker.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.pollInterval))

	for {
		for {
			claimed, err := r.relayBatch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Error("relay outbox batch failed", zap.Error(err))
				}
				break
			}
			if claimed < r.batchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

// relayBatch claims one batch and publishes it. It returns how many rows
// were claimed, whether or not they were delivered.
func (r *Relay) relayBatch(ctx context.Context) (int, error) {
	events, err := r.repo.ClaimPending(ctx, r.batchSize, r.lease)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("claimed outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("company_id", event.CompanyID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			log.Warn("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("record outbox failure failed", zap.Error(markErr))
			}
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				log.Error("outbox event parked as dead")
			}
			continue
		}

		// A failed MarkSent leaves the row claimed; it is sent again once
		// the lease expires.
		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		log.Info("outbox event sent")
	}

	return len(events), nil
}
