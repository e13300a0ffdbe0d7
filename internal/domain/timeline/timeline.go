// Package timeline builds the fixed five-checkpoint lifecycle view of a
// purchase order. Checkpoint order never varies; each checkpoint's state
// depends only on which temporal fields are present, plus the current status
// for the in-progress check.
package timeline

import (
	"time"

	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/leadtime"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// State is the display state of one checkpoint
type State string

const (
	StateCompleted  State = "completed"
	StateInProgress State = "in-progress"
	StateRejected   State = "rejected"
	StatePending    State = "pending"
)

// Checkpoint is one step of the lifecycle timeline
type Checkpoint struct {
	Label string     `json:"label"`
	State State      `json:"state"`
	Date  *time.Time `json:"date"`
	// Days carries the lead-time figure for the interval ending at this
	// checkpoint, when computable. Supplementary display data.
	Days *int `json:"days,omitempty"`
}

// Build returns the five checkpoints for an order, always in the order
// Created, Pending Approval, Approved/Rejected, Sent to Vendor, Delivered.
func Build(order *entity.PurchaseOrder, metrics leadtime.Metrics) []Checkpoint {
	orderDate := order.OrderDate

	pending := Checkpoint{Label: "Pending Approval", State: StatePending, Days: metrics.ApprovalDays}
	switch {
	case order.ApprovedDate != nil:
		pending.State = StateCompleted
		pending.Date = order.ApprovedDate
	case order.Status == workflow.StatusPendingApproval:
		pending.State = StateInProgress
	}

	decision := Checkpoint{Label: "Order Approved", State: StatePending}
	switch {
	case order.ApprovedDate != nil:
		decision.State = StateCompleted
		decision.Date = order.ApprovedDate
	case order.RejectedDate != nil:
		decision.Label = "Order Rejected"
		decision.State = StateRejected
		decision.Date = order.RejectedDate
	}

	sent := Checkpoint{Label: "Sent to Vendor", State: StatePending, Days: metrics.SendDays}
	if order.SentDate != nil {
		sent.State = StateCompleted
		sent.Date = order.SentDate
	}

	delivered := Checkpoint{Label: "Delivered", State: StatePending, Days: metrics.DeliveryDays}
	if order.DeliveredDate != nil {
		delivered.State = StateCompleted
		delivered.Date = order.DeliveredDate
	}

	return []Checkpoint{
		{Label: "Order Created", State: StateCompleted, Date: &orderDate},
		pending,
		decision,
		sent,
		delivered,
	}
}
