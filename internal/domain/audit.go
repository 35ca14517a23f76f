package domain

import "time"

type AuditAction string

const (
	AuditCreate      AuditAction = "create"
	AuditApprove     AuditAction = "approve"
	AuditReject      AuditAction = "reject"
	AuditPay         AuditAction = "pay"
	AuditCancel      AuditAction = "cancel"
	AuditAdminUpdate AuditAction = "admin_update"
	AuditAdminDelete AuditAction = "admin_delete"
)

// AuditLogEntry rows are append-only: the repository exposes no update or
// delete for them and admin_delete of a booking leaves them in place.
type AuditLogEntry struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	CreatedAt time.Time   `json:"created_at"`
}
