package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ApprovalService drives purchase orders through the approval workflow. All
// transition methods validate against the order's current persisted status
// and the actor's role before mutating anything; a failed transition leaves
// the order untouched.
type ApprovalService interface {
	Submit(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error)
	Approve(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error)
	Reject(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error)
	Send(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error)
	Deliver(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error)

	// History returns the order's approval history, oldest first
	History(ctx context.Context, orderID int64) ([]*entity.ApprovalHistoryEntry, error)

	// Actions returns the transitions the actor may fire on the order, a
	// pure lookup of the transition table against current status and role
	Actions(ctx context.Context, actor entity.Actor, orderID int64) ([]workflow.Action, error)
}

type approvalServiceImpl struct {
	orderRepo   port.OrderRepository
	historyRepo port.HistoryRepository
	auditRepo   port.AuditLogRepository
	txManager   port.TransactionManager
	notifier    port.Notifier
	logger      Logger
	now         func() time.Time
}

// NewApprovalService creates a new ApprovalService. notifier may be nil.
func NewApprovalService(
	orderRepo port.OrderRepository,
	historyRepo port.HistoryRepository,
	auditRepo port.AuditLogRepository,
	txManager port.TransactionManager,
	notifier port.Notifier,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit moves a draft order to pending_approval
func (s *approvalServiceImpl) Submit(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, orderID, workflow.ActionSubmit, comment)
}

// Approve moves a pending_approval order to approved
func (s *approvalServiceImpl) Approve(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, orderID, workflow.ActionApprove, comment)
}

// Reject moves a pending_approval order to rejected
func (s *approvalServiceImpl) Reject(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, orderID, workflow.ActionReject, comment)
}

// Send moves an approved order to sent_to_vendor
func (s *approvalServiceImpl) Send(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, orderID, workflow.ActionSend, comment)
}

// Deliver moves a sent_to_vendor order to delivered
func (s *approvalServiceImpl) Deliver(ctx context.Context, actor entity.Actor, orderID int64, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, orderID, workflow.ActionDeliver, comment)
}

// transition is the single path every workflow action goes through: load,
// authorize against the current persisted status, then atomically update the
// order, append one history entry, and append one audit row.
func (s *approvalServiceImpl) transition(ctx context.Context, actor entity.Actor, orderID int64, action workflow.Action, comment string) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to load order", "error", err, "order_id", orderID)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target, err := workflow.Authorize(order.Status, action, actor.Role)
	if err != nil {
		return nil, err
	}

	fromStatus := order.Status
	now := s.now()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		order.Status = target
		s.stamp(order, action, actor, now)
		if comment != "" {
			order.Comments = comment
		}
		order.UpdatedAt = now

		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		entry := &entity.ApprovalHistoryEntry{
			OrderID:    order.ID,
			UserID:     actor.UserID,
			Username:   actor.Username,
			FromStatus: fromStatus,
			ToStatus:   target,
			Comment:    comment,
			Timestamp:  now,
		}
		if err := s.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("create history: %w", err)
		}

		audit := &entity.AuditLog{
			UserID:     actor.UserID,
			Action:     auditAction(action),
			EntityType: "PurchaseOrder",
			EntityID:   order.ID,
			Details:    auditDetails(action, order.PONumber),
			Timestamp:  now,
		}
		if err := s.auditRepo.Create(txCtx, audit); err != nil {
			return fmt.Errorf("create audit log: %w", err)
		}

		return nil
	})
	if err != nil {
		// Restore in-memory state so callers never observe a half-applied
		// transition
		order.Status = fromStatus
		s.logger.Error("Transition failed", "error", err, "order_id", orderID, "action", action.String())
		return nil, err
	}

	s.logger.Info("Order transitioned",
		"order_id", order.ID,
		"po_number", order.PONumber,
		"from", fromStatus.String(),
		"to", target.String(),
		"actor", actor.Username)

	if s.notifier != nil {
		if err := s.notifier.NotifyTransition(ctx, order, action, actor, comment); err != nil {
			// Notification failures never fail the transition
			s.logger.Error("Transition notification failed", "error", err, "order_id", order.ID)
		}
	}

	return order, nil
}

// stamp sets the temporal field owned by the transition that just fired.
// Each field is written exactly once because the state machine never revisits
// a status.
func (s *approvalServiceImpl) stamp(order *entity.PurchaseOrder, action workflow.Action, actor entity.Actor, now time.Time) {
	switch action {
	case workflow.ActionApprove:
		order.ApprovedDate = &now
		userID := actor.UserID
		order.ApprovedBy = &userID
	case workflow.ActionReject:
		order.RejectedDate = &now
		userID := actor.UserID
		order.RejectedBy = &userID
	case workflow.ActionSend:
		order.SentDate = &now
	case workflow.ActionDeliver:
		order.DeliveredDate = &now
		order.ActualDeliveryDate = &now
	}
}

// History returns the approval history for an order, oldest first, in the
// order the repository persisted it.
func (s *approvalServiceImpl) History(ctx context.Context, orderID int64) ([]*entity.ApprovalHistoryEntry, error) {
	entries, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to load approval history", "error", err, "order_id", orderID)
		return nil, err
	}
	return entries, nil
}

// Actions returns the actions the actor may currently fire on the order
func (s *approvalServiceImpl) Actions(ctx context.Context, actor entity.Actor, orderID int64) ([]workflow.Action, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return workflow.AvailableActions(order.Status, actor.Role), nil
}

func auditAction(action workflow.Action) string {
	switch action {
	case workflow.ActionSubmit:
		return entity.AuditActionSubmitApproval
	case workflow.ActionApprove:
		return entity.AuditActionApprove
	case workflow.ActionReject:
		return entity.AuditActionReject
	case workflow.ActionSend:
		return entity.AuditActionSendToVendor
	case workflow.ActionDeliver:
		return entity.AuditActionDeliver
	}
	return ""
}

func auditDetails(action workflow.Action, poNumber string) string {
	switch action {
	case workflow.ActionSubmit:
		return fmt.Sprintf("Submitted PO %s for approval", poNumber)
	case workflow.ActionApprove:
		return fmt.Sprintf("Approved PO %s", poNumber)
	case workflow.ActionReject:
		return fmt.Sprintf("Rejected PO %s", poNumber)
	case workflow.ActionSend:
		return fmt.Sprintf("Sent PO %s to vendor", poNumber)
	case workflow.ActionDeliver:
		return fmt.Sprintf("Marked PO %s as delivered", poNumber)
	}
	return ""
}
