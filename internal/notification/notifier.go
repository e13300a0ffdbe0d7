// Package notification emails the people affected by a workflow transition:
// admins when an order needs approval, the requester when it is decided, and
// the supplier when it is sent out.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// EmailNotifier implements port.Notifier over SMTP
type EmailNotifier struct {
	client    *mailClient
	users     port.UserRepository
	suppliers port.SupplierRepository
	logger    *zap.Logger
}

// NewEmailNotifier creates a new email notifier. Returns nil when SMTP is not
// configured, which callers treat as notifications disabled.
func NewEmailNotifier(cfg SMTPConfig, users port.UserRepository, suppliers port.SupplierRepository, logger *zap.Logger) *EmailNotifier {
	if !cfg.Enabled() {
		logger.Info("SMTP not configured, email notifications disabled")
		return nil
	}
	return &EmailNotifier{
		client:    &mailClient{cfg: cfg},
		users:     users,
		suppliers: suppliers,
		logger:    logger,
	}
}

// NotifyTransition sends the email for a completed transition
func (n *EmailNotifier) NotifyTransition(ctx context.Context, order *entity.PurchaseOrder, action workflow.Action, actor entity.Actor, comment string) error {
	recipients, err := n.recipients(ctx, order, action)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		n.logger.Info("No recipients for transition notification",
			zap.Int64("order_id", order.ID),
			zap.String("action", action.String()))
		return nil
	}

	subject, body := composeMessage(order, action, actor, comment)
	if err := n.client.send(recipients, subject, body); err != nil {
		return err
	}

	n.logger.Info("Transition notification sent",
		zap.Int64("order_id", order.ID),
		zap.String("action", action.String()),
		zap.Int("recipients", len(recipients)))
	return nil
}

// recipients resolves who cares about the transition: submissions go to all
// admins, decisions go back to the requester, and sends go to the supplier.
func (n *EmailNotifier) recipients(ctx context.Context, order *entity.PurchaseOrder, action workflow.Action) ([]string, error) {
	switch action {
	case workflow.ActionSubmit:
		admins, err := n.users.ListByRole(ctx, workflow.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to list admins: %w", err)
		}
		addrs := make([]string, 0, len(admins))
		for _, admin := range admins {
			if admin.Email != "" {
				addrs = append(addrs, admin.Email)
			}
		}
		return addrs, nil

	case workflow.ActionApprove, workflow.ActionReject:
		requester, err := n.users.GetByID(ctx, order.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to get requester: %w", err)
		}
		if requester == nil || requester.Email == "" {
			return nil, nil
		}
		return []string{requester.Email}, nil

	case workflow.ActionSend:
		supplier, err := n.suppliers.GetByID(ctx, order.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("failed to get supplier: %w", err)
		}
		if supplier == nil || supplier.Email == "" {
			return nil, nil
		}
		return []string{supplier.Email}, nil
	}

	// Deliveries are recorded but not announced
	return nil, nil
}

func composeMessage(order *entity.PurchaseOrder, action workflow.Action, actor entity.Actor, comment string) (subject, body string) {
	switch action {
	case workflow.ActionSubmit:
		subject = fmt.Sprintf("PO %s awaiting approval", order.PONumber)
		body = fmt.Sprintf(
			"Purchase order %s was submitted for approval by %s.\n\nTotal amount: %s\n",
			order.PONumber, actor.Username, order.TotalAmount.String())
	case workflow.ActionApprove:
		subject = fmt.Sprintf("PO %s approved", order.PONumber)
		body = fmt.Sprintf("Purchase order %s was approved by %s.\n", order.PONumber, actor.Username)
	case workflow.ActionReject:
		subject = fmt.Sprintf("PO %s rejected", order.PONumber)
		body = fmt.Sprintf("Purchase order %s was rejected by %s.\n", order.PONumber, actor.Username)
	case workflow.ActionSend:
		subject = fmt.Sprintf("Purchase order %s", order.PONumber)
		body = fmt.Sprintf(
			"Please find our purchase order %s.\n\nTotal amount: %s\n",
			order.PONumber, order.TotalAmount.String())
	}

	if comment != "" {
		body += fmt.Sprintf("\nComment: %s\n", comment)
	}
	return subject, body
}

// Verify interface compliance
var _ port.Notifier = (*EmailNotifier)(nil)
