package domain

import "time"

// AuditLog is one recorded action. UserID is empty for anonymous calls.
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
