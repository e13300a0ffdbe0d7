package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// PurchaseOrder represents one order placed with a supplier, tracked through
// the approval lifecycle. The PO number is unique and immutable once created.
type PurchaseOrder struct {
	ID          int64           `json:"id"`
	PONumber    string          `json:"po_number"`
	SupplierID  int64           `json:"supplier_id"`
	WarehouseID int64           `json:"warehouse_id"`
	Status      workflow.Status `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedBy   int64           `json:"created_by"`
	Comments    string          `json:"comments,omitempty"`

	// Temporal fields. Each is stamped at most once, by the transition that
	// reaches the corresponding status. ApprovedDate and RejectedDate are
	// mutually exclusive.
	OrderDate     time.Time  `json:"order_date"`
	ApprovedBy    *int64     `json:"approved_by,omitempty"`
	ApprovedDate  *time.Time `json:"approved_date"`
	RejectedBy    *int64     `json:"rejected_by,omitempty"`
	RejectedDate  *time.Time `json:"rejected_date"`
	SentDate      *time.Time `json:"sent_date"`
	DeliveredDate *time.Time `json:"delivered_date"`

	// Planned vs observed delivery, set independently of status transitions,
	// for variance computation.
	ExpectedDate       *time.Time `json:"expected_date"`
	ActualDeliveryDate *time.Time `json:"actual_delivery_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
