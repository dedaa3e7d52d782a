package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/m3rciful/storebot/app/storage"
)

// ExportGateway is the storage surface the export depends on.
type ExportGateway interface {
	OrderExportRows(ctx context.Context) ([]storage.OrderExportRow, error)
}

// Export renders all orders with their items as tabular text.
type Export struct {
	store ExportGateway
}

// NewExport constructs the exporter over a storage gateway.
func NewExport(store ExportGateway) *Export {
	return &Export{store: store}
}

var exportHeader = []string{
	"Order ID", "User ID", "Address", "Phone", "Total Price",
	"Status", "Product ID", "Product Name", "Quantity", "Unit Price",
}

// OrdersCSV returns a UTF-8 CSV with a header row and one row per order item,
// newest order first. The boolean is false when there are no orders at all.
func (e *Export) OrdersCSV(ctx context.Context) ([]byte, bool, error) {
	rows, err := e.store.OrderExportRows(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, false, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		status := ""
		if row.Status.Valid {
			status = row.Status.String
		}
		record := []string{
			strconv.FormatInt(row.OrderID, 10),
			strconv.FormatInt(row.UserID, 10),
			row.Address,
			row.Phone,
			row.TotalPrice.StringFixed(2),
			status,
			strconv.FormatInt(row.ProductID, 10),
			row.ProductName,
			strconv.Itoa(row.Quantity),
			row.UnitPrice.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, false, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, false, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), true, nil
}
