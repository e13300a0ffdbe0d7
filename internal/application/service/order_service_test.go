package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

type orderFixture struct {
	orders    *mockOrderRepo
	suppliers *mockSupplierRepo
	audit     *mockAuditRepo
	service   OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    &mockOrderRepo{},
		suppliers: &mockSupplierRepo{},
		audit:     &mockAuditRepo{},
	}
	f.service = NewOrderService(f.orders, f.suppliers, f.audit, &mockTxManager{}, &mockLogger{})
	return f
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		PONumber:    "PO-2025-100",
		SupplierID:  5,
		WarehouseID: 2,
		TotalAmount: decimal.NewFromFloat(1250.50),
	}
}

func TestOrderService_Create(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.Create(context.Background(), manager, validInput())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if order.Status != workflow.StatusDraft {
		t.Errorf("status = %s, want draft", order.Status)
	}
	if order.CreatedBy != manager.UserID {
		t.Errorf("CreatedBy = %d, want %d", order.CreatedBy, manager.UserID)
	}
	if order.OrderDate.IsZero() {
		t.Error("OrderDate not set")
	}
	if !order.TotalAmount.Equal(decimal.NewFromFloat(1250.50)) {
		t.Errorf("TotalAmount = %s, want 1250.5", order.TotalAmount)
	}
	if len(f.audit.logs) != 1 || f.audit.logs[0].Action != entity.AuditActionCreate {
		t.Errorf("audit logs = %+v, want one CREATE entry", f.audit.logs)
	}
}

func TestOrderService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		actor   entity.Actor
		mutate  func(*CreateOrderInput)
		wantErr error
	}{
		{
			name:    "viewer cannot create",
			actor:   viewer,
			mutate:  func(in *CreateOrderInput) {},
			wantErr: workflow.ErrRoleDenied,
		},
		{
			name:    "missing po number",
			actor:   admin,
			mutate:  func(in *CreateOrderInput) { in.PONumber = "" },
			wantErr: ErrValidation,
		},
		{
			name:    "missing supplier",
			actor:   admin,
			mutate:  func(in *CreateOrderInput) { in.SupplierID = 0 },
			wantErr: ErrValidation,
		},
		{
			name:    "missing warehouse",
			actor:   admin,
			mutate:  func(in *CreateOrderInput) { in.WarehouseID = 0 },
			wantErr: ErrValidation,
		},
		{
			name:    "negative amount",
			actor:   admin,
			mutate:  func(in *CreateOrderInput) { in.TotalAmount = decimal.NewFromInt(-1) },
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			input := validInput()
			tt.mutate(&input)

			_, err := f.service.Create(context.Background(), tt.actor, input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.audit.logs) != 0 {
				t.Errorf("audit written on rejected input")
			}
		})
	}
}

func TestOrderService_CreateUnknownSupplier(t *testing.T) {
	f := newOrderFixture()
	f.suppliers.getByIDFunc = func(ctx context.Context, id int64) (*entity.Supplier, error) {
		return nil, nil
	}

	_, err := f.service.Create(context.Background(), admin, validInput())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestOrderService_CreateDuplicatePONumber(t *testing.T) {
	f := newOrderFixture()
	f.orders.getByPONumberFunc = func(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
		return &entity.PurchaseOrder{ID: 99, PONumber: poNumber}, nil
	}

	_, err := f.service.Create(context.Background(), admin, validInput())
	if !errors.Is(err, ErrDuplicatePONumber) {
		t.Errorf("Create() error = %v, want ErrDuplicatePONumber", err)
	}
}

func TestOrderService_GetAttachesMetrics(t *testing.T) {
	f := newOrderFixture()
	orderDate := time.Now().Add(-5 * 24 * time.Hour)
	approved := orderDate.Add(2 * 24 * time.Hour)
	f.orders.getByIDFunc = func(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
		return &entity.PurchaseOrder{
			ID:           id,
			PONumber:     "PO-2025-101",
			Status:       workflow.StatusApproved,
			OrderDate:    orderDate,
			ApprovedDate: &approved,
		}, nil
	}

	view, err := f.service.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if view.LeadTimeMetrics.ApprovalDays == nil || *view.LeadTimeMetrics.ApprovalDays != 2 {
		t.Errorf("ApprovalDays = %v, want 2", view.LeadTimeMetrics.ApprovalDays)
	}
	if view.LeadTimeMetrics.TotalDays != nil {
		t.Error("TotalDays should be nil before delivery")
	}
}

func TestOrderService_GetNotFound(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.Get(context.Background(), 404)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Get() error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_Timeline(t *testing.T) {
	f := newOrderFixture()
	f.orders.getByIDFunc = func(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
		return &entity.PurchaseOrder{
			ID:        id,
			PONumber:  "PO-2025-102",
			Status:    workflow.StatusDraft,
			OrderDate: time.Now(),
		}, nil
	}

	checkpoints, err := f.service.Timeline(context.Background(), 1)
	if err != nil {
		t.Fatalf("Timeline() failed: %v", err)
	}
	if len(checkpoints) != 5 {
		t.Fatalf("Timeline() returned %d checkpoints, want 5", len(checkpoints))
	}
	if checkpoints[0].Label != "Order Created" {
		t.Errorf("first checkpoint = %q, want %q", checkpoints[0].Label, "Order Created")
	}
}
