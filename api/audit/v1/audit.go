// Package auditv1 holds the AuditService messages and service descriptor.
package auditv1

import "time"

type ListAuditLogsRequest struct {
	// Limit caps the number of entries; zero or out of range uses the server default.
	Limit int32 `json:"limit,omitempty"`
}

type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	IP        string    `json:"ip"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListAuditLogsResponse struct {
	Logs []*AuditLog `json:"logs"`
}
