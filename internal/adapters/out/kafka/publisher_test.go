package kafka_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otherEvent struct{}

func (otherEvent) EventID() kernel.UUID  { return kernel.NewUUID() }
func (otherEvent) EventName() string     { return "something_else" }
func (otherEvent) OccurredAt() time.Time { return time.Now() }

func availability(partnerID kernel.UUID) user.AvailabilityChangedEvent {
	return user.AvailabilityChangedEvent{ID: kernel.NewUUID(), PartnerID: partnerID, IsAvailable: true, At: time.Now()}
}

func TestPublisher_SendsKeyedMessages(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	defer func() { _ = producer.Close() }()

	partnerID := kernel.NewUUID()
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != partnerID.String() {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "orders" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})

	publisher, err := kafka.NewPublisher(producer, "orders", nil)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(t.Context(), availability(partnerID), otherEvent{}))
}

func TestPublisher_ReturnsProducerError(t *testing.T) {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	defer func() { _ = producer.Close() }()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher, err := kafka.NewPublisher(producer, "orders", nil)
	require.NoError(t, err)

	err = publisher.Publish(t.Context(), availability(kernel.NewUUID()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
}

func TestPublisher_NothingToSend(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()

	publisher, err := kafka.NewPublisher(producer, "orders", nil)
	require.NoError(t, err)

	assert.NoError(t, publisher.Publish(t.Context(), otherEvent{}))
}

func TestNewPublisher_RequiresTopic(t *testing.T) {
	_, err := kafka.NewPublisher(mocks.NewSyncProducer(t, nil), "", nil)
	require.Error(t, err)
}
