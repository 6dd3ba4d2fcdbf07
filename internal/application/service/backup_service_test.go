package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV_OneRowPerItem(t *testing.T) {
	repo := newMockReceiptRepo()
	withItems := &entity.ServiceReceipt{
		SerialNumber:        "SR-20260301-1111",
		ServiceProviderName: "Acme \"Premium\" Logistics",
		ServiceProviderCode: "VN-1001",
		ServiceDate:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:              enum.ReceiptStatusPending,
		PaymentStatus:       enum.PaymentStatusPending,
		TotalCost:           60,
		CreatedByID:         uuid.New(),
		CreatedAt:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Items: []entity.ServiceReceiptItem{
			{ID: uuid.New(), ServiceID: uuid.New(), ServiceName: "Unloading", ServiceCost: 10, NumberOfOperations: 2, NumberOfUnits: 3, TotalCost: 60},
			{ID: uuid.New(), ServiceID: uuid.New(), ServiceName: "Sorting", ServiceCost: 5.5, NumberOfOperations: 1, NumberOfUnits: 2, TotalCost: 11},
		},
	}
	repo.add(withItems)

	empty := &entity.ServiceReceipt{
		SerialNumber:        "SR-20260302-2222",
		ServiceProviderName: "Basic Co",
		ServiceProviderCode: "VN-2002",
		ServiceDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:              enum.ReceiptStatusPending,
		PaymentStatus:       enum.PaymentStatusPending,
		CreatedByID:         uuid.New(),
		CreatedAt:           time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	repo.add(empty)

	svc := NewBackupService(repo)
	data, filename, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)
	assert.Contains(t, filename, "service-receipts-backup-")

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "\uFEFF"))

	// The output must be parseable CSV with quotes intact.
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\uFEFF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Header, two item rows, one itemless receipt row.
	require.Len(t, records, 4)
	assert.Equal(t, "Serial Number", records[0][1])
	assert.Equal(t, "Item Total Cost", records[0][len(records[0])-1])

	rowsBySerial := make(map[string]int)
	for _, rec := range records[1:] {
		rowsBySerial[rec[1]]++
	}
	assert.Equal(t, 2, rowsBySerial["SR-20260301-1111"])
	assert.Equal(t, 1, rowsBySerial["SR-20260302-2222"])

	// Quotes inside provider names survive the round trip.
	assert.Contains(t, text, `"Acme ""Premium"" Logistics"`)

	// Fractional costs keep two decimals, whole ones drop them.
	assert.Contains(t, text, "5.50")
	assert.Contains(t, text, ",60,")
}

func TestExportCSV_Empty(t *testing.T) {
	svc := NewBackupService(newMockReceiptRepo())

	data, _, err := svc.ExportCSV(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "\uFEFF", string(data))
}
