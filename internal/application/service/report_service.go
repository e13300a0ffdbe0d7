package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/leadtime"
)

// ReportService renders an order's approval history and lead-time summary as
// an xlsx workbook
type ReportService interface {
	// OrderReport returns the workbook bytes and a suggested filename
	OrderReport(ctx context.Context, orderID int64) (*bytes.Buffer, string, error)
}

type reportServiceImpl struct {
	orderRepo   port.OrderRepository
	historyRepo port.HistoryRepository
	logger      Logger
}

// NewReportService creates a new ReportService
func NewReportService(orderRepo port.OrderRepository, historyRepo port.HistoryRepository, logger Logger) ReportService {
	return &reportServiceImpl{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

var historyHeaders = []string{"Date", "User", "From Status", "To Status", "Comments"}

func (s *reportServiceImpl) OrderReport(ctx context.Context, orderID int64) (*bytes.Buffer, string, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", ErrOrderNotFound
	}
	entries, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	metrics := leadtime.Compute(order)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("Failed to close report workbook", "error", err)
		}
	}()
	sheet := "Sheet1"

	row := 1
	writeRow := func(cells ...interface{}) error {
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	summary := [][]interface{}{
		{"PO Number", order.PONumber},
		{"Status", order.Status.Display()},
		{"Order Date", order.OrderDate.Format("2006-01-02")},
		{"Total Amount", order.TotalAmount.String()},
		{"Approval Time", formatDays(metrics.ApprovalDays)},
		{"Send Time", formatDays(metrics.SendDays)},
		{"Delivery Time", formatDays(metrics.DeliveryDays)},
		{"Total Lead Time", formatDays(metrics.TotalDays)},
		{"Delivery Variance", formatDays(metrics.VarianceDays)},
	}
	for _, line := range summary {
		if err := writeRow(line...); err != nil {
			return nil, "", fmt.Errorf("write summary: %w", err)
		}
	}

	row++ // blank row between summary and history
	headerCells := make([]interface{}, len(historyHeaders))
	for i, h := range historyHeaders {
		headerCells[i] = h
	}
	if err := writeRow(headerCells...); err != nil {
		return nil, "", fmt.Errorf("write history header: %w", err)
	}
	for _, entry := range entries {
		err := writeRow(
			entry.Timestamp.Format(time.RFC3339),
			entry.Username,
			entry.FromStatus.Display(),
			entry.ToStatus.Display(),
			entry.Comment,
		)
		if err != nil {
			return nil, "", fmt.Errorf("write history row: %w", err)
		}
	}

	f.SetSheetName(sheet, "Approval Report")

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Failed to render report", "error", err, "order_id", orderID)
		return nil, "", fmt.Errorf("render report: %w", err)
	}

	return buf, fmt.Sprintf("po_%s_approval_report.xlsx", order.PONumber), nil
}

func formatDays(days *int) string {
	if days == nil {
		return "-"
	}
	return fmt.Sprintf("%dd", *days)
}
