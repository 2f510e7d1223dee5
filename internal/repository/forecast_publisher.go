package repository

import (
	"context"

	"StockSight/internal/domain/models"
	"StockSight/internal/domain/repository"
)

// messageProducer is the slice of pkg/kafka.Producer the publisher needs.
type messageProducer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaForecastPublisher implements ForecastPublisher for Kafka, keyed by symbol.
type KafkaForecastPublisher struct {
	producer messageProducer
	topic    string
}

// NewKafkaForecastPublisher creates Kafka publisher.
func NewKafkaForecastPublisher(producer messageProducer, topic string) *KafkaForecastPublisher {
	return &KafkaForecastPublisher{producer: producer, topic: topic}
}

func (p *KafkaForecastPublisher) PublishForecast(ctx context.Context, ev *models.ForecastEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaForecastPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopForecastPublisher drops events; it stands in when Kafka is disabled.
type NoopForecastPublisher struct{}

func (NoopForecastPublisher) PublishForecast(context.Context, *models.ForecastEvent) error { return nil }

func (NoopForecastPublisher) Close() error { return nil }

var (
	_ repository.ForecastPublisher = (*KafkaForecastPublisher)(nil)
	_ repository.ForecastPublisher = NoopForecastPublisher{}
)
