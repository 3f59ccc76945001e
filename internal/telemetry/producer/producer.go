// Package producer publishes telemetry events to a message broker.
package producer

import (
	"context"

	"dealership-backoffice/internal/telemetry/domain"
)

// Producer is a telemetry emitter that owns a broker connection.
type Producer interface {
	Emit(ctx context.Context, event *domain.Event) error
	Close() error
}

var _ Producer = (*KafkaProducer)(nil)

// FromConfig returns a Kafka producer for topic, or nil when brokers or topic are unset.
func FromConfig(brokers []string, topic string) Producer {
	if p := NewKafkaProducer(brokers, topic); p != nil {
		return p
	}
	return nil
}
