package consumer

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeProfiles struct {
	calls  []string
	failOn string
}

func (f *fakeProfiles) EnsureDefault(ctx context.Context, companyID, employeeID string) (bool, error) {
	f.calls = append(f.calls, companyID+"/"+employeeID)
	if employeeID == f.failOn {
		return false, errors.New("db down")
	}
	return true, nil
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		messages: []kafkago.Message{
			{Offset: 1, Value: []byte(`{"event_type":"employee.created","employee_id":"e1","company_id":"c1"}`)},
			{Offset: 2, Value: []byte(`not json`)},
			{Offset: 3, Value: []byte(`{"event_type":"employee.created","employee_id":"e2","company_id":"c1"}`)},
			{Offset: 4, Value: []byte(`{"event_type":"employee.archived","employee_id":"e3","company_id":"c1"}`)},
		},
	}
	profiles := &fakeProfiles{failOn: "e2"}

	ConsumeEmployeeLifecycle(ctx, reader, profiles, zap.NewNop())

	assert.Equal(t, []string{"c1/e1", "c1/e2"}, profiles.calls)
	// offset 3 failed and stays uncommitted for redelivery
	assert.Equal(t, []int64{1, 2, 4}, reader.committed)
}
