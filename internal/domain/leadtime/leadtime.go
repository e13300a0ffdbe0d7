// Package leadtime computes derived lead-time metrics from a purchase
// order's temporal fields. All computation is pure so it can be tested
// without any storage or network dependency.
package leadtime

import (
	"time"

	"github.com/stocktrail/po-approval/internal/domain/entity"
)

// Metrics holds the elapsed whole days between lifecycle checkpoints. A
// figure is nil whenever either endpoint of its interval is missing.
type Metrics struct {
	// ApprovalDays is order_date -> approved_date
	ApprovalDays *int `json:"approval_days"`
	// SendDays is approved_date -> sent_date
	SendDays *int `json:"send_days"`
	// DeliveryDays is sent_date -> delivered_date
	DeliveryDays *int `json:"delivery_days"`
	// TotalDays is order_date -> delivered_date
	TotalDays *int `json:"total_days"`
	// VarianceDays is expected_date -> actual_delivery_date.
	// Positive means late, zero or negative means on time or early.
	VarianceDays *int `json:"variance_days"`
}

// Compute derives the metrics for one order
func Compute(order *entity.PurchaseOrder) Metrics {
	orderDate := order.OrderDate
	return Metrics{
		ApprovalDays: daysBetween(&orderDate, order.ApprovedDate),
		SendDays:     daysBetween(order.ApprovedDate, order.SentDate),
		DeliveryDays: daysBetween(order.SentDate, order.DeliveredDate),
		TotalDays:    daysBetween(&orderDate, order.DeliveredDate),
		VarianceDays: daysBetween(order.ExpectedDate, order.ActualDeliveryDate),
	}
}

// daysBetween returns the whole days from from to to, truncated toward zero,
// or nil when either endpoint is missing.
func daysBetween(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	days := int(to.Sub(*from).Hours() / 24)
	return &days
}
