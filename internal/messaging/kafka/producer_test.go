package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newMockedProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()
	mockProducer := mocks.NewSyncProducer(t, nil)
	return newProducer(mockProducer, log.WithField("component", "kafka-producer-test")), mockProducer
}

func TestProducer_PublishEvent(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, TopicOrderItemEvents, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "42", string(key))

		require.Len(t, msg.Headers, 1)
		require.Equal(t, HeaderEventType, string(msg.Headers[0].Key))
		return nil
	})

	err := producer.PublishEvent(context.Background(), TopicOrderItemEvents, "42",
		map[string]any{"orderId": 42}, map[string]string{HeaderEventType: "OrderItemCreated"})
	require.NoError(t, err)
	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishEvent(context.Background(), TopicOrderItemEvents, "1", map[string]any{}, nil)
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_CanceledContext(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := producer.PublishEvent(ctx, TopicOrderItemEvents, "1", map[string]any{}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	err := producer.PublishEvent(context.Background(), TopicOrderItemEvents, "1", make(chan int), nil)
	require.Error(t, err)

	var unsupported *json.UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	require.NoError(t, mockProducer.Close())
}
