package repository

import (
	"context"
	"testing"
	"time"

	"StockSight/internal/domain/models"
)

type fakeProducer struct {
	topic  string
	key    []byte
	value  interface{}
	closed bool
}

func (f *fakeProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	f.topic, f.key, f.value = topic, key, value
	return nil
}

func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

func TestKafkaForecastPublisherKeysBySymbol(t *testing.T) {
	fp := &fakeProducer{}
	p := NewKafkaForecastPublisher(fp, "forecast.generated")
	ev := &models.ForecastEvent{ID: "1", Symbol: "NVDA", Days: 5, GeneratedAt: time.Now()}

	if err := p.PublishForecast(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp.topic != "forecast.generated" || string(fp.key) != "NVDA" || fp.value != ev {
		t.Fatalf("unexpected publish topic=%s key=%s", fp.topic, fp.key)
	}
	if err := p.Close(); err != nil || !fp.closed {
		t.Fatalf("expected producer closed")
	}
}
