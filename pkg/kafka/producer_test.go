package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesJSON(t *testing.T) {
	w := &recordingWriter{}
	p := newProducer(w, "none")

	err := p.Publish(context.Background(), "forecast.generated", []byte("AAPL"), map[string]interface{}{"symbol": "AAPL", "days": 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	m := w.msgs[0]
	if m.Topic != "forecast.generated" || string(m.Key) != "AAPL" {
		t.Fatalf("unexpected message %+v", m)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(m.Value, &decoded); err != nil || decoded["days"].(float64) != 30 {
		t.Fatalf("unexpected payload %s", m.Value)
	}
}

func TestPublishMessagePassesBytesThrough(t *testing.T) {
	w := &recordingWriter{}
	p := newProducer(w, "none")
	if err := p.PublishMessage(context.Background(), "logs", []byte("raw")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(w.msgs[0].Value) != "raw" || w.msgs[0].Key != nil {
		t.Fatalf("unexpected message %+v", w.msgs[0])
	}
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&recordingWriter{err: boom}, "gzip")
	if err := p.Publish(context.Background(), "t", nil, "v"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped writer error, got %v", err)
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestCloseClosesWriter(t *testing.T) {
	w := &recordingWriter{}
	if err := newProducer(w, "none").Close(); err != nil || !w.closed {
		t.Fatalf("expected writer to be closed")
	}
}
