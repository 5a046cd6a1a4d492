package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

func TestOutboxPublisher_Publish(t *testing.T) {
	t.Parallel()

	producer, mockProducer := newMockedProducer(t)
	publishedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "7", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var envelope Envelope
		require.NoError(t, json.Unmarshal(value, &envelope))
		require.Equal(t, "outbox-1", envelope.ID)
		require.Equal(t, domain.EventOrderItemCreated, envelope.EventType)
		require.JSONEq(t, `{"itemId":3,"orderId":7}`, string(envelope.Payload))
		require.True(t, envelope.PublishedAt.Equal(publishedAt))

		headers := make(map[string]string, len(msg.Headers))
		for _, header := range msg.Headers {
			headers[string(header.Key)] = string(header.Value)
		}
		require.Equal(t, domain.AggregateOrderItem, headers[HeaderAggregateType])
		require.Equal(t, "outbox-1", headers[HeaderOutboxID])
		return nil
	})

	publisher := NewOutboxPublisher(producer, "")
	publisher.now = func() time.Time { return publishedAt }

	err := publisher.Publish(context.Background(), domain.OutboxMessage{
		ID:            "outbox-1",
		AggregateType: domain.AggregateOrderItem,
		AggregateID:   "7",
		EventType:     domain.EventOrderItemCreated,
		Payload:       []byte(`{"itemId":3,"orderId":7}`),
	})
	require.NoError(t, err)
	require.NoError(t, mockProducer.Close())
}

func TestOutboxPublisher_FallsBackToMessageIDKey(t *testing.T) {
	t.Parallel()

	producer, mockProducer := newMockedProducer(t)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, TopicDeadLetterQueue, msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "outbox-2", string(key))
		return nil
	})

	publisher := NewOutboxPublisher(producer, TopicDeadLetterQueue)
	require.NoError(t, publisher.Publish(context.Background(), domain.OutboxMessage{ID: "outbox-2"}))
	require.NoError(t, mockProducer.Close())
}

func TestOutboxPublisher_PublishProducerError(t *testing.T) {
	t.Parallel()

	producer, mockProducer := newMockedProducer(t)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := NewOutboxPublisher(producer, TopicOrderItemEvents).Publish(context.Background(), domain.OutboxMessage{
		ID:          "outbox-3",
		AggregateID: "1",
		EventType:   domain.EventOrderItemDeleted,
		Payload:     []byte(`{}`),
	})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, mockProducer.Close())
}

func TestOutboxPublisher_PublishNilProducer(t *testing.T) {
	t.Parallel()

	err := NewOutboxPublisher(nil, TopicOrderItemEvents).Publish(context.Background(), domain.OutboxMessage{ID: "outbox-4"})
	require.ErrorIs(t, err, errPublisherNotInitialized)
}
