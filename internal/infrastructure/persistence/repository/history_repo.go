package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// HistoryRepository implements port.HistoryRepository on sqlite
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) port.HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a history entry. The table is append-only; entries are never
// updated or deleted.
func (r *HistoryRepository) Create(ctx context.Context, entry *entity.ApprovalHistoryEntry) error {
	query := `
		INSERT INTO approval_history (
			order_id, user_id, from_status, to_status, comments, timestamp
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		entry.OrderID,
		entry.UserID,
		entry.FromStatus.String(),
		entry.ToStatus.String(),
		entry.Comment,
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create history entry", zap.Int64("order_id", entry.OrderID), zap.Error(err))
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// GetByOrderID returns the history for an order, oldest first
func (r *HistoryRepository) GetByOrderID(ctx context.Context, orderID int64) ([]*entity.ApprovalHistoryEntry, error) {
	query := `
		SELECT h.id, h.order_id, h.user_id, u.username,
			h.from_status, h.to_status, h.comments, h.timestamp
		FROM approval_history h
		JOIN users u ON u.id = h.user_id
		WHERE h.order_id = ?
		ORDER BY h.timestamp ASC, h.id ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to get history", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.ApprovalHistoryEntry
	for rows.Next() {
		var entry entity.ApprovalHistoryEntry
		var fromStatus, toStatus string

		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.UserID,
			&entry.Username,
			&fromStatus,
			&toStatus,
			&entry.Comment,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.FromStatus = workflow.Status(fromStatus)
		entry.ToStatus = workflow.Status(toStatus)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Verify interface compliance
var _ port.HistoryRepository = (*HistoryRepository)(nil)
