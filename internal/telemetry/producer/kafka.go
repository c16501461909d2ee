// Package producer provides the Kafka implementation of the event emitter.
package producer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	eventdomain "github.com/trendsinusa/dealsignals/internal/event/domain"
)

// KafkaProducer implements telemetry.EventEmitter using segmentio/kafka-go.
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer creates a producer that writes accepted events to the
// given topic. Returns nil when brokers or topic are empty (telemetry
// disabled). Call Close when shutting down.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer, topic: topic}
}

// wireEvent is the JSON shape written to the stream. UserAgent is
// deliberately omitted: consumers aggregate, they never identify.
type wireEvent struct {
	ID          string    `json:"id"`
	OccurredAt  time.Time `json:"occurredAt"`
	Kind        string    `json:"kind"`
	Href        string    `json:"href"`
	ASIN        string    `json:"asin,omitempty"`
	DealID      string    `json:"dealId,omitempty"`
	Attribution string    `json:"attribution"`
}

// Emit serializes the event as JSON and writes it to the topic, keyed by
// deal id so per-deal ordering holds for consumers that care.
func (p *KafkaProducer) Emit(ctx context.Context, event *eventdomain.Event) error {
	if p == nil || p.writer == nil || event == nil {
		return nil
	}
	payload, err := json.Marshal(wireEvent{
		ID:          event.ID,
		OccurredAt:  event.OccurredAt,
		Kind:        string(event.Kind),
		Href:        event.Href,
		ASIN:        event.ASIN,
		DealID:      event.DealID,
		Attribution: event.Attribution,
	})
	if err != nil {
		return err
	}
	var key []byte
	if event.DealID != "" {
		key = []byte(event.DealID)
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, kafka.Message{Key: key, Value: payload}); err != nil {
		log.Printf("telemetry: kafka emit failed: %v", err)
		return err
	}
	return nil
}

// Close closes the Kafka writer. Safe to call multiple times and on nil.
func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
