package entity

import (
	"time"

	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// ApprovalHistoryEntry is the immutable audit record of one status
// transition. Created exactly once per successful transition, never mutated
// or deleted.
type ApprovalHistoryEntry struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Username   string          `json:"username"`
	FromStatus workflow.Status `json:"from_status"`
	ToStatus   workflow.Status `json:"to_status"`
	Comment    string          `json:"comments,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// AuditLog is a system-wide audit trail row, one per mutating operation
type AuditLog struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Details    string    `json:"details"`
	Timestamp  time.Time `json:"timestamp"`
}

// Audit log action constants
const (
	AuditActionCreate         = "CREATE"
	AuditActionSubmitApproval = "SUBMIT_APPROVAL"
	AuditActionApprove        = "APPROVE"
	AuditActionReject         = "REJECT"
	AuditActionSendToVendor   = "SEND_TO_VENDOR"
	AuditActionDeliver        = "DELIVER"
)
