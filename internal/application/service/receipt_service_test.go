package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"github.com/serviceops/receipts-api/pkg/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReceiptService() (*ReceiptService, *mockReceiptRepo) {
	repo := newMockReceiptRepo()
	providerRepo := newMockProviderRepo()
	_ = providerRepo.Create(context.Background(), &entity.ServiceProvider{
		CompanyName:  "Acme Logistics",
		VendorNumber: "VN-1001",
		Status:       enum.ProviderStatusActive,
	})
	return NewReceiptService(repo, providerRepo), repo
}

func validInput() *CreateReceiptInput {
	return &CreateReceiptInput{
		ServiceProviderName: "Acme Logistics",
		ServiceProviderCode: "VN-1001",
		ServiceDate:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StorekeeperName:     "J. Store",
		Items: []ReceiptItemInput{
			{ServiceID: uuid.New(), ServiceName: "Unloading", ServiceCost: 10, NumberOfOperations: 2, NumberOfUnits: 3},
		},
	}
}

func TestCreateReceipt_ComputesTotals(t *testing.T) {
	svc, _ := newTestReceiptService()

	receipt, err := svc.CreateReceipt(context.Background(), uuid.New(), validInput())

	require.NoError(t, err)
	// 10 per service, 2 operations, 3 units.
	assert.InDelta(t, 60, receipt.TotalCost, 1e-9)
	require.Len(t, receipt.Items, 1)
	assert.InDelta(t, 60, receipt.Items[0].TotalCost, 1e-9)
	assert.Equal(t, enum.ReceiptStatusPending, receipt.Status)
	assert.Equal(t, enum.PaymentStatusPending, receipt.PaymentStatus)
	assert.True(t, serial.IsValid(receipt.SerialNumber))
}

func TestCreateReceipt_KeepsProvidedSerial(t *testing.T) {
	svc, _ := newTestReceiptService()
	input := validInput()
	input.SerialNumber = "SR-20260301-4242"

	receipt, err := svc.CreateReceipt(context.Background(), uuid.New(), input)

	require.NoError(t, err)
	assert.Equal(t, "SR-20260301-4242", receipt.SerialNumber)
}

func TestCreateReceipt_RejectsMalformedSerial(t *testing.T) {
	svc, _ := newTestReceiptService()
	input := validInput()
	input.SerialNumber = "RECEIPT-1"

	_, err := svc.CreateReceipt(context.Background(), uuid.New(), input)

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateReceipt_RequiresItems(t *testing.T) {
	svc, _ := newTestReceiptService()
	input := validInput()
	input.Items = nil

	_, err := svc.CreateReceipt(context.Background(), uuid.New(), input)

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateReceipt_RejectsNonPositiveQuantities(t *testing.T) {
	svc, _ := newTestReceiptService()
	input := validInput()
	input.Items[0].NumberOfUnits = 0

	_, err := svc.CreateReceipt(context.Background(), uuid.New(), input)

	require.Error(t, err)
}

func TestCreateReceipt_RefusesInactiveProvider(t *testing.T) {
	repo := newMockReceiptRepo()
	providerRepo := newMockProviderRepo()
	_ = providerRepo.Create(context.Background(), &entity.ServiceProvider{
		CompanyName:  "Acme Logistics",
		VendorNumber: "VN-1001",
		Status:       enum.ProviderStatusInactive,
	})
	svc := NewReceiptService(repo, providerRepo)

	_, err := svc.CreateReceipt(context.Background(), uuid.New(), validInput())

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSearchReceipts_EmptyQuery(t *testing.T) {
	svc, repo := newTestReceiptService()
	repo.add(&entity.ServiceReceipt{SerialNumber: "SR-20260301-1234"})

	results, err := svc.SearchReceipts(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetPrintPayload_OnlyApproved(t *testing.T) {
	svc, repo := newTestReceiptService()
	r := &entity.ServiceReceipt{
		SerialNumber:  "SR-20260301-1234",
		Status:        enum.ReceiptStatusPending,
		PaymentStatus: enum.PaymentStatusPending,
	}
	repo.add(r)

	_, err := svc.GetPrintPayload(context.Background(), r.ID)
	require.Error(t, err)

	r.Status = enum.ReceiptStatusApproved
	name := "supervisor@example.com"
	r.ApprovedByName = &name
	r.TotalCost = 1234567.5
	r.Items = []entity.ServiceReceiptItem{
		{ServiceName: "Unloading", ServiceCost: 1234567.5, NumberOfOperations: 1, NumberOfUnits: 1, TotalCost: 1234567.5},
	}

	payload, err := svc.GetPrintPayload(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "SR-20260301-1234", payload.SerialNumber)
	assert.Equal(t, "supervisor@example.com", payload.ApprovedByName)
	// Amounts are grouped for display.
	assert.Equal(t, "1,234,567.50", payload.TotalCost)
}

func TestListActivity_DerivesLifecycleEvents(t *testing.T) {
	svc, repo := newTestReceiptService()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	approvedAt := created.Add(48 * time.Hour)
	paidAt := created.Add(96 * time.Hour)

	paid := &entity.ServiceReceipt{
		SerialNumber:        "SR-20260301-1111",
		ServiceProviderName: "Acme Logistics",
		TotalCost:           500,
		Status:              enum.ReceiptStatusApproved,
		PaymentStatus:       enum.PaymentStatusPaid,
		ApprovedAt:          &approvedAt,
		PaymentDate:         &paidAt,
		CreatedAt:           created,
	}
	pending := &entity.ServiceReceipt{
		SerialNumber:  "SR-20260302-2222",
		Status:        enum.ReceiptStatusPending,
		PaymentStatus: enum.PaymentStatusPending,
		CreatedAt:     created.Add(24 * time.Hour),
	}
	repo.add(paid)
	repo.add(pending)

	events, err := svc.ListActivity(context.Background(), 5)

	require.NoError(t, err)
	// One receipt at every stage plus one just created: 4 events.
	require.Len(t, events, 4)
	assert.Equal(t, "paid", events[0].Type)
	assert.Equal(t, paidAt, events[0].Date)
	assert.Equal(t, "approved", events[1].Type)
	assert.Equal(t, "created", events[2].Type)
	assert.Equal(t, pending.ID, events[2].ReceiptID)
	assert.Equal(t, "created", events[3].Type)
	assert.Equal(t, "SR-20260301-1111", events[3].SerialNumber)
}

func TestListActivity_CapsEventCount(t *testing.T) {
	svc, repo := newTestReceiptService()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		repo.add(&entity.ServiceReceipt{
			SerialNumber:  "SR-20260301-100" + string(rune('0'+i)),
			Status:        enum.ReceiptStatusPending,
			PaymentStatus: enum.PaymentStatusPending,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}

	events, err := svc.ListActivity(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, events, 3)
	// Newest first.
	assert.True(t, events[0].Date.After(events[1].Date))
}

func TestCreateReceipt_RefusesUnknownProvider(t *testing.T) {
	svc, _ := newTestReceiptService()
	input := validInput()
	input.ServiceProviderCode = "VN-9999"

	_, err := svc.CreateReceipt(context.Background(), uuid.New(), input)

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestListDelayed_AnnotatesWaitingDays(t *testing.T) {
	svc, repo := newTestReceiptService()
	repo.add(&entity.ServiceReceipt{
		SerialNumber:  "SR-20260301-1234",
		Status:        enum.ReceiptStatusPending,
		PaymentStatus: enum.PaymentStatusPending,
		CreatedAt:     time.Now().Add(-10 * 24 * time.Hour),
	})

	delayed, err := svc.ListDelayed(context.Background())

	require.NoError(t, err)
	require.Len(t, delayed, 1)
	assert.Equal(t, "SR-20260301-1234", delayed[0].SerialNumber)
	assert.Equal(t, 10, delayed[0].DaysDelayed)
}
