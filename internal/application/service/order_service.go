package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/leadtime"
	"github.com/stocktrail/po-approval/internal/domain/timeline"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// CreateOrderInput carries the fields of a new purchase order
type CreateOrderInput struct {
	PONumber     string
	SupplierID   int64
	WarehouseID  int64
	TotalAmount  decimal.Decimal
	ExpectedDate *time.Time
	Comments     string
}

// OrderView is an order together with its derived lead-time metrics
type OrderView struct {
	*entity.PurchaseOrder
	LeadTimeMetrics leadtime.Metrics `json:"lead_time_metrics"`
}

// OrderService owns order creation and read access. Orders always start in
// draft; every later status change goes through ApprovalService.
type OrderService interface {
	Create(ctx context.Context, actor entity.Actor, input CreateOrderInput) (*entity.PurchaseOrder, error)
	Get(ctx context.Context, id int64) (*OrderView, error)
	List(ctx context.Context, limit, offset int) ([]*OrderView, error)
	Timeline(ctx context.Context, id int64) ([]timeline.Checkpoint, error)
}

type orderServiceImpl struct {
	orderRepo    port.OrderRepository
	supplierRepo port.SupplierRepository
	auditRepo    port.AuditLogRepository
	txManager    port.TransactionManager
	logger       Logger
	now          func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo port.OrderRepository,
	supplierRepo port.SupplierRepository,
	auditRepo port.AuditLogRepository,
	txManager port.TransactionManager,
	logger Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		logger:       logger,
		now:          time.Now,
	}
}

// Create validates and persists a new draft order
func (s *orderServiceImpl) Create(ctx context.Context, actor entity.Actor, input CreateOrderInput) (*entity.PurchaseOrder, error) {
	if actor.Role != workflow.RoleAdmin && actor.Role != workflow.RoleManager {
		return nil, fmt.Errorf("%w: role %s cannot create orders", workflow.ErrRoleDenied, actor.Role)
	}
	if input.PONumber == "" {
		return nil, fmt.Errorf("%w: po_number is required", ErrValidation)
	}
	if input.SupplierID <= 0 {
		return nil, fmt.Errorf("%w: supplier_id is required", ErrValidation)
	}
	if input.WarehouseID <= 0 {
		return nil, fmt.Errorf("%w: warehouse_id is required", ErrValidation)
	}
	if input.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total_amount must be non-negative", ErrValidation)
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: supplier %d does not exist", ErrValidation, input.SupplierID)
	}

	existing, err := s.orderRepo.GetByPONumber(ctx, input.PONumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePONumber, input.PONumber)
	}

	now := s.now()
	order := &entity.PurchaseOrder{
		PONumber:     input.PONumber,
		SupplierID:   input.SupplierID,
		WarehouseID:  input.WarehouseID,
		Status:       workflow.StatusDraft,
		TotalAmount:  input.TotalAmount,
		ExpectedDate: input.ExpectedDate,
		Comments:     input.Comments,
		CreatedBy:    actor.UserID,
		OrderDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		audit := &entity.AuditLog{
			UserID:     actor.UserID,
			Action:     entity.AuditActionCreate,
			EntityType: "PurchaseOrder",
			EntityID:   order.ID,
			Details:    fmt.Sprintf("Created purchase order: %s", order.PONumber),
			Timestamp:  now,
		}
		if err := s.auditRepo.Create(txCtx, audit); err != nil {
			return fmt.Errorf("create audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create order", "error", err, "po_number", input.PONumber)
		return nil, err
	}

	s.logger.Info("Order created", "id", order.ID, "po_number", order.PONumber, "created_by", actor.Username)
	return order, nil
}

// Get returns one order with computed metrics
func (s *orderServiceImpl) Get(ctx context.Context, id int64) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return &OrderView{PurchaseOrder: order, LeadTimeMetrics: leadtime.Compute(order)}, nil
}

// List returns orders newest first, with computed metrics
func (s *orderServiceImpl) List(ctx context.Context, limit, offset int) ([]*OrderView, error) {
	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list orders", "error", err)
		return nil, err
	}
	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, &OrderView{PurchaseOrder: order, LeadTimeMetrics: leadtime.Compute(order)})
	}
	return views, nil
}

// Timeline returns the five lifecycle checkpoints for an order
func (s *orderServiceImpl) Timeline(ctx context.Context, id int64) ([]timeline.Checkpoint, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return timeline.Build(order, leadtime.Compute(order)), nil
}
