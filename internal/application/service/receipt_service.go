package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"github.com/serviceops/receipts-api/pkg/format"
	"github.com/serviceops/receipts-api/pkg/pagination"
	"github.com/serviceops/receipts-api/pkg/serial"
)

// delayedListLimit caps the oldest-open-receipts view.
const delayedListLimit = 5

// ReceiptService handles service receipt operations
type ReceiptService struct {
	receiptRepo  repository.ReceiptRepository
	providerRepo repository.ProviderRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.ReceiptRepository, providerRepo repository.ProviderRepository) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo, providerRepo: providerRepo}
}

// ReceiptItemInput is one service line on a new receipt
type ReceiptItemInput struct {
	ServiceID          uuid.UUID `json:"service_id" binding:"required"`
	ServiceName        string    `json:"service_name" binding:"required"`
	ServiceCost        float64   `json:"service_cost" binding:"required"`
	NumberOfOperations int       `json:"number_of_operations" binding:"required"`
	NumberOfUnits      int       `json:"number_of_units" binding:"required"`
}

// CreateReceiptInput is the create receipt input
type CreateReceiptInput struct {
	SerialNumber        string             `json:"serial_number"`
	WarehouseNumber     string             `json:"warehouse_number"`
	ServiceProviderName string             `json:"service_provider_name" binding:"required"`
	ServiceProviderCode string             `json:"service_provider_code" binding:"required"`
	WBS                 string             `json:"wbs"`
	ServiceDate         time.Time          `json:"service_date" binding:"required" time_format:"2006-01-02"`
	StorekeeperName     string             `json:"storekeeper_name"`
	Items               []ReceiptItemInput `json:"items" binding:"required"`
}

// CreateReceipt creates a receipt with its items. New receipts always
// enter the workflow as pending approval and pending payment.
func (s *ReceiptService) CreateReceipt(ctx context.Context, userID uuid.UUID, input *CreateReceiptInput) (*entity.ServiceReceipt, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "A receipt needs at least one service item"},
		})
	}

	var fieldErrors []apperror.FieldError
	for _, item := range input.Items {
		if item.ServiceCost < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "service_cost", Message: "Service cost cannot be negative"})
		}
		if item.NumberOfOperations <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "number_of_operations", Message: "Number of operations must be at least 1"})
		}
		if item.NumberOfUnits <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "number_of_units", Message: "Number of units must be at least 1"})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	provider, err := s.providerRepo.GetByVendorNumber(ctx, input.ServiceProviderCode)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewBadRequestError("Unknown service provider code")
	}
	if provider.Status != enum.ProviderStatusActive {
		return nil, apperror.NewBadRequestError("This service provider is inactive")
	}

	serialNumber := strings.TrimSpace(input.SerialNumber)
	if serialNumber == "" {
		serialNumber = serial.Generate(time.Now())
	} else if !serial.IsValid(serialNumber) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "serial_number", Message: "Serial number must match SR-YYYYMMDD-NNNN"},
		})
	}

	var total float64
	items := make([]entity.ServiceReceiptItem, 0, len(input.Items))
	for _, item := range input.Items {
		line := entity.ServiceReceiptItem{
			ServiceID:          item.ServiceID,
			ServiceName:        item.ServiceName,
			ServiceCost:        item.ServiceCost,
			NumberOfOperations: item.NumberOfOperations,
			NumberOfUnits:      item.NumberOfUnits,
		}
		line.TotalCost = line.Total()
		total += line.TotalCost
		items = append(items, line)
	}

	receipt := &entity.ServiceReceipt{
		SerialNumber:        serialNumber,
		WarehouseNumber:     input.WarehouseNumber,
		ServiceProviderName: input.ServiceProviderName,
		ServiceProviderCode: input.ServiceProviderCode,
		WBS:                 input.WBS,
		ServiceDate:         input.ServiceDate,
		StorekeeperName:     input.StorekeeperName,
		TotalCost:           total,
		CreatedByID:         userID,
	}

	if err := s.receiptRepo.Create(ctx, receipt, items); err != nil {
		return nil, err
	}
	return receipt, nil
}

// ListReceipts returns a filtered, paginated receipt page
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.Result[entity.ServiceReceipt], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.New(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewResult(receipts, p), nil
}

// SearchReceipts matches serial numbers by case-insensitive substring.
// An empty query returns no results rather than everything.
func (s *ReceiptService) SearchReceipts(ctx context.Context, query string) ([]entity.ServiceReceipt, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.ServiceReceipt{}, nil
	}
	return s.receiptRepo.Search(ctx, query)
}

// GetReceipt retrieves a receipt with its items
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.ServiceReceipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// GetReceiptItems returns the items of a receipt
func (s *ReceiptService) GetReceiptItems(ctx context.Context, receiptID uuid.UUID) ([]entity.ServiceReceiptItem, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return s.receiptRepo.GetItems(ctx, receiptID)
}

// ListDelayed returns the oldest receipts still awaiting approval or
// payment, annotated with how many days each has been waiting.
func (s *ReceiptService) ListDelayed(ctx context.Context) ([]DelayedReceipt, error) {
	receipts, err := s.receiptRepo.ListOpen(ctx, delayedListLimit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	delayed := make([]DelayedReceipt, 0, len(receipts))
	for i := range receipts {
		delayed = append(delayed, DelayedReceipt{
			ServiceReceipt: receipts[i],
			DaysDelayed:    DaysDelayed(&receipts[i], now),
		})
	}
	return delayed, nil
}

// ListRecent returns the latest receipts.
func (s *ReceiptService) ListRecent(ctx context.Context, n int) ([]entity.ServiceReceipt, error) {
	if n <= 0 || n > 50 {
		n = 10
	}
	return s.receiptRepo.ListRecent(ctx, n)
}

// ActivityEvent is one derived entry in the recent-activity feed.
type ActivityEvent struct {
	ReceiptID           uuid.UUID `json:"receipt_id"`
	Type                string    `json:"type"`
	SerialNumber        string    `json:"serial_number"`
	ServiceProviderName string    `json:"service_provider_name"`
	TotalCost           float64   `json:"total_cost"`
	Date                time.Time `json:"date"`
}

// ListActivity derives the recent-activity feed from the latest
// receipts' lifecycle timestamps. Each receipt contributes a created
// event, plus an approved and a paid event once those stages are
// reached; the newest n events win.
func (s *ReceiptService) ListActivity(ctx context.Context, n int) ([]ActivityEvent, error) {
	if n <= 0 || n > 50 {
		n = 5
	}
	receipts, err := s.receiptRepo.ListRecent(ctx, n)
	if err != nil {
		return nil, err
	}

	events := make([]ActivityEvent, 0, len(receipts)*3)
	for i := range receipts {
		r := &receipts[i]
		events = append(events, activityEvent(r, "created", r.CreatedAt))
		if r.Status == enum.ReceiptStatusApproved {
			date := r.CreatedAt
			if r.ApprovedAt != nil {
				date = *r.ApprovedAt
			}
			events = append(events, activityEvent(r, "approved", date))
		}
		if r.PaymentStatus == enum.PaymentStatusPaid {
			date := r.CreatedAt
			if r.PaymentDate != nil {
				date = *r.PaymentDate
			}
			events = append(events, activityEvent(r, "paid", date))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	if len(events) > n {
		events = events[:n]
	}
	return events, nil
}

func activityEvent(r *entity.ServiceReceipt, kind string, date time.Time) ActivityEvent {
	return ActivityEvent{
		ReceiptID:           r.ID,
		Type:                kind,
		SerialNumber:        r.SerialNumber,
		ServiceProviderName: r.ServiceProviderName,
		TotalCost:           r.TotalCost,
		Date:                date,
	}
}

// DelayedReceipt is a receipt in the delayed view with its waiting time.
type DelayedReceipt struct {
	entity.ServiceReceipt
	DaysDelayed int `json:"days_delayed"`
}

// PrintLine is one formatted item row on a printable receipt.
type PrintLine struct {
	ServiceName        string `json:"service_name"`
	ServiceCost        string `json:"service_cost"`
	NumberOfOperations int    `json:"number_of_operations"`
	NumberOfUnits      int    `json:"number_of_units"`
	TotalCost          string `json:"total_cost"`
}

// PrintPayload is the display-formatted document for printing.
type PrintPayload struct {
	SerialNumber        string      `json:"serial_number"`
	WarehouseNumber     string      `json:"warehouse_number"`
	ServiceProviderName string      `json:"service_provider_name"`
	ServiceProviderCode string      `json:"service_provider_code"`
	WBS                 string      `json:"wbs"`
	ServiceDate         string      `json:"service_date"`
	StorekeeperName     string      `json:"storekeeper_name"`
	Status              string      `json:"status"`
	PaymentStatus       string      `json:"payment_status"`
	ApprovedByName      string      `json:"approved_by_name,omitempty"`
	Lines               []PrintLine `json:"lines"`
	TotalCost           string      `json:"total_cost"`
}

// GetPrintPayload builds the printable view of a receipt. Only approved
// receipts may be printed.
func (s *ReceiptService) GetPrintPayload(ctx context.Context, id uuid.UUID) (*PrintPayload, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.Status != enum.ReceiptStatusApproved {
		return nil, apperror.NewBadRequestError("Only approved receipts can be printed")
	}

	lines := make([]PrintLine, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		lines = append(lines, PrintLine{
			ServiceName:        item.ServiceName,
			ServiceCost:        format.Amount(item.ServiceCost),
			NumberOfOperations: item.NumberOfOperations,
			NumberOfUnits:      item.NumberOfUnits,
			TotalCost:          format.Amount(item.TotalCost),
		})
	}

	payload := &PrintPayload{
		SerialNumber:        receipt.SerialNumber,
		WarehouseNumber:     receipt.WarehouseNumber,
		ServiceProviderName: receipt.ServiceProviderName,
		ServiceProviderCode: receipt.ServiceProviderCode,
		WBS:                 receipt.WBS,
		ServiceDate:         receipt.ServiceDate.Format("2006-01-02"),
		StorekeeperName:     receipt.StorekeeperName,
		Status:              string(receipt.Status),
		PaymentStatus:       string(receipt.PaymentStatus),
		Lines:               lines,
		TotalCost:           format.Amount(receipt.TotalCost),
	}
	if receipt.ApprovedByName != nil {
		payload.ApprovedByName = *receipt.ApprovedByName
	}
	return payload, nil
}
