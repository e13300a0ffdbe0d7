package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
)

// SupplierRepository implements port.SupplierRepository on sqlite
type SupplierRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *sql.DB, logger *zap.Logger) port.SupplierRepository {
	return &SupplierRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a supplier by ID
func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	query := `SELECT id, name, email FROM suppliers WHERE id = ?`

	var supplier entity.Supplier
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.Email,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get supplier by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return &supplier, nil
}

// Verify interface compliance
var _ port.SupplierRepository = (*SupplierRepository)(nil)
