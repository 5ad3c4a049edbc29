package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows ran out of retries and need an operator.
	OutboxStatusDead = "dead"
)

// OutboxEvent is one row of outbox_events: a domain event recorded in the
// same transaction as the change it describes.
type OutboxEvent struct {
	ID            string
	CompanyID     string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	CreatedAt     time.Time
}

// NewOutboxEvent encodes payload as JSON into a pending event.
func NewOutboxEvent(companyID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

func ValidateOutboxEvent(event OutboxEvent) error {
	switch {
	case event.ID == "":
		return errors.New("outbox id is required")
	case event.CompanyID == "":
		return errors.New("outbox company id is required")
	case event.AggregateID == "":
		return errors.New("outbox aggregate id is required")
	case event.Topic == "":
		return errors.New("outbox topic is required")
	case len(event.Payload) == 0 || !json.Valid(event.Payload):
		return errors.New("outbox payload must be a JSON document")
	case event.Status != OutboxStatusPending:
		return fmt.Errorf("new outbox events must be %s, got %q", OutboxStatusPending, event.Status)
	}
	return nil
}
