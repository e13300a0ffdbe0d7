// Package port defines the interfaces the application layer depends on.
// Infrastructure packages provide the implementations.
package port

import (
	"context"

	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// OrderRepository persists purchase orders
type OrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
}

// HistoryRepository persists the append-only approval history
type HistoryRepository interface {
	Create(ctx context.Context, entry *entity.ApprovalHistoryEntry) error
	// GetByOrderID returns entries in persisted order, oldest first
	GetByOrderID(ctx context.Context, orderID int64) ([]*entity.ApprovalHistoryEntry, error)
}

// AuditLogRepository persists the system-wide audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}

// UserRepository reads user accounts
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ListByRole(ctx context.Context, role workflow.Role) ([]*entity.User, error)
}

// SupplierRepository reads suppliers
type SupplierRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
}

// TransactionManager runs a function inside a storage transaction. The
// transaction rides on the context so repositories participate transparently.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
