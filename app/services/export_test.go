package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/app/storage"
)

type fakeExportStore struct {
	rows []storage.OrderExportRow
	err  error
}

func (f *fakeExportStore) OrderExportRows(_ context.Context) ([]storage.OrderExportRow, error) {
	return f.rows, f.err
}

func TestOrdersCSV(t *testing.T) {
	store := &fakeExportStore{rows: []storage.OrderExportRow{
		{
			OrderID:     42,
			UserID:      7,
			Address:     "Main st 1",
			Phone:       "+79991234567",
			TotalPrice:  decimal.RequireFromString("44.98"),
			Status:      sql.NullString{String: "paid", Valid: true},
			ProductID:   10,
			ProductName: "Earbuds",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("19.99"),
		},
		{
			OrderID:     42,
			UserID:      7,
			Address:     "Main st 1",
			Phone:       "+79991234567",
			TotalPrice:  decimal.RequireFromString("44.98"),
			ProductID:   11,
			ProductName: "Case",
			Quantity:    1,
			UnitPrice:   decimal.RequireFromString("5.00"),
		},
	}}
	export := NewExport(store)

	data, found, err := export.OrdersCSV(context.Background())
	require.NoError(t, err)
	require.True(t, found)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{
		"42", "7", "Main st 1", "+79991234567", "44.98",
		"paid", "10", "Earbuds", "2", "19.99",
	}, records[1])
	// A pending order has no status yet.
	assert.Equal(t, "", records[2][5])
	assert.Equal(t, "5.00", records[2][9])
}

func TestOrdersCSVNoOrders(t *testing.T) {
	export := NewExport(&fakeExportStore{})

	data, found, err := export.OrdersCSV(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}
