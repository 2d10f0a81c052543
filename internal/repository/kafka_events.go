package repository

import (
	"context"

	domrepo "BizPulse/internal/domain/repository"
	pkgkafka "BizPulse/pkg/kafka"
)

// KafkaEventPublisher emits pipeline lifecycle events to a single topic,
// keyed for per-entity ordering.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishEvent(ctx context.Context, key string, payload any) error {
	return p.producer.Publish(ctx, p.topic, []byte(key), payload)
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.EventPublisher = (*KafkaEventPublisher)(nil)

// NopEventPublisher drops events; used when Kafka is disabled.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishEvent(ctx context.Context, key string, payload any) error { return nil }
func (NopEventPublisher) Close() error                                                    { return nil }

var _ domrepo.EventPublisher = NopEventPublisher{}

// KafkaLogSink adapts the producer to the log collector's Publisher interface
// so deduplicated logs can be flushed to a logs topic.
type KafkaLogSink struct {
	producer *pkgkafka.Producer
}

func NewKafkaLogSink(producer *pkgkafka.Producer) *KafkaLogSink {
	return &KafkaLogSink{producer: producer}
}

func (s *KafkaLogSink) PublishMessage(ctx context.Context, topic string, payload any) error {
	return s.producer.Publish(ctx, topic, nil, payload)
}
