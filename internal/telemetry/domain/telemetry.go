// Package domain holds the telemetry event shape shared by the OTel and Kafka emitters.
package domain

import (
	"encoding/json"
	"time"
)

// Event is a single telemetry event. UserID and Role are empty for anonymous calls.
type Event struct {
	UserID    string          `json:"user_id,omitempty"`
	Role      string          `json:"role,omitempty"`
	EventType string          `json:"event_type"`
	Source    string          `json:"source"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
