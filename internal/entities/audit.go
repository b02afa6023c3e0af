package entities

import "time"

type AuditAction string

const (
	AuditActionAdd    AuditAction = "book_add"
	AuditActionRemove AuditAction = "book_remove"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one mutation of the collection.
type AuditEvent struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	Origin    string      `json:"origin"` // "ui", "api", "cli" or "demo"
	Index     int         `json:"index"`  // position of the affected record at the time of the change
	Book      Book        `json:"book"`
	Status    AuditStatus `json:"status"`
	ErrorMsg  string      `json:"error_msg,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
