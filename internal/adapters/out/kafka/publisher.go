// Package kafka publishes committed domain events to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/fanout"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
)

// Publisher implements ports.EventPublisher with a sarama sync producer. Messages are
// keyed by the entity id so that the events of one order stay in one partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewProducer dials brokers, a comma separated host:port list.
func NewProducer(brokers string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Net.DialTimeout = 10 * time.Second
	config.Net.ReadTimeout = 10 * time.Second
	config.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func NewPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) (*Publisher, error) {
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{producer: producer, topic: topic, logger: logger.With("component", "kafka_publisher")}, nil
}

func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		body, route, err := fanout.Encode(event)
		var unsupported fanout.UnsupportedEventError
		if errors.As(err, &unsupported) {
			continue
		}
		if err != nil {
			return err
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(route.Key),
			Value: sarama.ByteEncoder(body),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event"), Value: []byte(event.EventName())},
				{Key: []byte("event_id"), Value: []byte(event.EventID().String())},
			},
			Timestamp: event.OccurredAt(),
		})
	}
	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("send %d messages to %s: %w", len(messages), p.topic, err)
	}
	p.logger.DebugContext(ctx, "events published", "topic", p.topic, "count", len(messages))
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
