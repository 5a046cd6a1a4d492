package kafka

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

func deadLetterValue(t *testing.T, letter domain.DeadLetter) []byte {
	t.Helper()

	payload, err := json.Marshal(letter)
	require.NoError(t, err)

	value, err := json.Marshal(NewEnvelope(domain.OutboxMessage{
		ID:            letter.OutboxID,
		AggregateType: letter.AggregateType,
		AggregateID:   letter.AggregateID,
		EventType:     letter.EventType,
		Payload:       payload,
	}, time.Now().UTC()))
	require.NoError(t, err)
	return value
}

func TestDecodeDeadLetter(t *testing.T) {
	value := deadLetterValue(t, domain.DeadLetter{
		OutboxID:      "outbox-1",
		AggregateType: domain.AggregateOrderItem,
		AggregateID:   "7",
		EventType:     domain.EventOrderItemCreated,
		Payload:       json.RawMessage(`{"itemId":7,"orderId":1,"productId":2}`),
		PublishError:  "kafka: broker not available",
	})

	letter, err := DecodeDeadLetter(value)
	require.NoError(t, err)
	require.Equal(t, "kafka: broker not available", letter.PublishError)

	original := letter.Original()
	require.Equal(t, "outbox-1", original.ID)
	require.Equal(t, "7", original.AggregateID)
	require.Equal(t, domain.EventOrderItemCreated, original.EventType)
	require.JSONEq(t, `{"itemId":7,"orderId":1,"productId":2}`, string(original.Payload))
}

func TestDecodeDeadLetter_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		value         []byte
		notDeadLetter bool
	}{
		{name: "not json", value: []byte("plain text"), notDeadLetter: true},
		{name: "foreign json", value: []byte(`{"foo":"bar"}`), notDeadLetter: true},
		{
			name:          "regular event",
			value:         []byte(`{"id":"outbox-1","eventType":"OrderItemCreated","payload":{"itemId":1}}`),
			notDeadLetter: true,
		},
		{
			name:  "missing original payload",
			value: []byte(`{"id":"outbox-1","payload":{"outboxId":"outbox-1","eventType":"OrderItemCreated"}}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDeadLetter(tt.value)
			require.Error(t, err)
			require.Equal(t, tt.notDeadLetter, errors.Is(err, ErrNotDeadLetter))
		})
	}
}
