package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"dealership-backoffice/internal/otp/domain"
)

// Message is the queue payload consumed by cmd/worker.
type Message struct {
	UserID    string         `json:"user_id"`
	Purpose   domain.Purpose `json:"purpose"`
	Code      string         `json:"code"`
	CreatedAt time.Time      `json:"created_at"`
}

// Writer is the subset of *kafka.Writer used here.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka hands codes to a worker over a Kafka topic instead of sending them in-process.
type Kafka struct {
	writer Writer
	now    func() time.Time
}

// NewKafka returns a queue channel writing to topic. Returns nil when brokers or topic are
// empty. Call Close when shutting down.
func NewKafka(brokers []string, topic string) *Kafka {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return NewKafkaWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 20 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	})
}

// NewKafkaWithWriter wraps an existing writer.
func NewKafkaWithWriter(w Writer) *Kafka {
	return &Kafka{writer: w, now: func() time.Time { return time.Now().UTC() }}
}

// Deliver publishes one message keyed by user so a user's codes stay ordered.
func (k *Kafka) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	if k == nil || k.writer == nil {
		return nil
	}
	payload, err := json.Marshal(Message{UserID: userID, Purpose: purpose, Code: code, CreatedAt: k.now()})
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(userID), Value: payload}); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	return nil
}

// Close closes the writer. Safe on nil.
func (k *Kafka) Close() error {
	if k == nil || k.writer == nil {
		return nil
	}
	return k.writer.Close()
}

// Decode parses a queue payload and drops messages that could not have come from Deliver.
func Decode(raw []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m.UserID == "" || m.Code == "" || !m.Purpose.Valid() {
		return nil, fmt.Errorf("delivery: malformed message")
	}
	return &m, nil
}

// Expired reports whether the code in m can no longer be used at now.
func (m *Message) Expired(now time.Time, ttl time.Duration) bool {
	return now.After(m.CreatedAt.Add(ttl))
}
