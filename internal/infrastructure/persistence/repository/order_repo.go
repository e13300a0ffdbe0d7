package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// OrderRepository implements port.OrderRepository on sqlite
type OrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) port.OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `
	id, po_number, supplier_id, warehouse_id, status, total_amount,
	created_by, comments, order_date, approved_by, approved_date,
	rejected_by, rejected_date, sent_date, delivered_date,
	expected_date, actual_delivery_date, created_at, updated_at
`

// Create inserts a new purchase order
func (r *OrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (
			po_number, supplier_id, warehouse_id, status, total_amount,
			created_by, comments, order_date, expected_date,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		order.PONumber,
		order.SupplierID,
		order.WarehouseID,
		order.Status.String(),
		order.TotalAmount.String(),
		order.CreatedBy,
		order.Comments,
		order.OrderDate,
		nullTime(order.ExpectedDate),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.String("po_number", order.PONumber), zap.Error(err))
		return fmt.Errorf("failed to create order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	order.ID = id
	return nil
}

// GetByID retrieves a purchase order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = ?`

	order, err := r.scanOrder(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetByPONumber retrieves a purchase order by its PO number
func (r *OrderRepository) GetByPONumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE po_number = ?`

	order, err := r.scanOrder(getExecutor(ctx, r.db).QueryRowContext(ctx, query, poNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get order by PO number", zap.String("po_number", poNumber), zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// Update persists all mutable fields of an order
func (r *OrderRepository) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET
			status = ?, total_amount = ?, comments = ?,
			approved_by = ?, approved_date = ?,
			rejected_by = ?, rejected_date = ?,
			sent_date = ?, delivered_date = ?,
			expected_date = ?, actual_delivery_date = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		order.Status.String(),
		order.TotalAmount.String(),
		order.Comments,
		nullInt64(order.ApprovedBy),
		nullTime(order.ApprovedDate),
		nullInt64(order.RejectedBy),
		nullTime(order.RejectedDate),
		nullTime(order.SentDate),
		nullTime(order.DeliveredDate),
		nullTime(order.ExpectedDate),
		nullTime(order.ActualDeliveryDate),
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update order", zap.Int64("id", order.ID), zap.Error(err))
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// List retrieves purchase orders newest first with pagination
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *OrderRepository) scanOrder(row rowScanner) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	var status, totalAmount string
	var approvedBy, rejectedBy sql.NullInt64
	var approvedDate, rejectedDate, sentDate, deliveredDate sql.NullTime
	var expectedDate, actualDeliveryDate sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.PONumber,
		&order.SupplierID,
		&order.WarehouseID,
		&status,
		&totalAmount,
		&order.CreatedBy,
		&order.Comments,
		&order.OrderDate,
		&approvedBy,
		&approvedDate,
		&rejectedBy,
		&rejectedDate,
		&sentDate,
		&deliveredDate,
		&expectedDate,
		&actualDeliveryDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = workflow.Status(status)
	amount, err := decimal.NewFromString(totalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid total_amount %q: %w", totalAmount, err)
	}
	order.TotalAmount = amount

	if approvedBy.Valid {
		order.ApprovedBy = &approvedBy.Int64
	}
	if rejectedBy.Valid {
		order.RejectedBy = &rejectedBy.Int64
	}
	if approvedDate.Valid {
		order.ApprovedDate = &approvedDate.Time
	}
	if rejectedDate.Valid {
		order.RejectedDate = &rejectedDate.Time
	}
	if sentDate.Valid {
		order.SentDate = &sentDate.Time
	}
	if deliveredDate.Valid {
		order.DeliveredDate = &deliveredDate.Time
	}
	if expectedDate.Valid {
		order.ExpectedDate = &expectedDate.Time
	}
	if actualDeliveryDate.Valid {
		order.ActualDeliveryDate = &actualDeliveryDate.Time
	}

	return &order, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

// Verify interface compliance
var _ port.OrderRepository = (*OrderRepository)(nil)
