package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/pkg/pagination"
)

// ReceiptFilterParams are the optional, AND-combined report filters.
type ReceiptFilterParams struct {
	Pagination    *pagination.Params
	SerialNumber  string // case-insensitive substring match
	ProviderCode  string
	Status        *enum.ReceiptStatus
	PaymentStatus *enum.PaymentStatus
	StartDate     *time.Time // service_date lower bound
	EndDate       *time.Time // service_date upper bound
}

// WorkflowUpdate is the column set a workflow transition writes. The
// Touch flags select which stamp columns the transition owns; within an
// owned group a nil pointer clears the column.
type WorkflowUpdate struct {
	Status         enum.ReceiptStatus
	PaymentStatus  enum.PaymentStatus
	TouchApproval  bool
	ApprovedByID   *uuid.UUID
	ApprovedByName *string
	ApprovedAt     *time.Time
	TouchPayment   bool
	PaidByID       *uuid.UUID
	PaymentDate    *time.Time
}

// ReceiptRepository defines the interface for receipt data operations.
type ReceiptRepository interface {
	// Create inserts the receipt header and its items in one transaction.
	Create(ctx context.Context, receipt *entity.ServiceReceipt, items []entity.ServiceReceiptItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceReceipt, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ServiceReceipt, error)
	GetItems(ctx context.Context, receiptID uuid.UUID) ([]entity.ServiceReceiptItem, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.ServiceReceipt, int64, error)
	// Search matches serial numbers case-insensitively, newest first.
	Search(ctx context.Context, query string) ([]entity.ServiceReceipt, error)
	// ListAll returns receipts with items loaded, optionally bounded by
	// created_at, oldest first. Used by metrics, trends and backup.
	ListAll(ctx context.Context, createdFrom, createdTo *time.Time) ([]entity.ServiceReceipt, error)
	// ListOpen returns receipts still awaiting approval or payment,
	// oldest created first, limited to n.
	ListOpen(ctx context.Context, n int) ([]entity.ServiceReceipt, error)
	// ListRecent returns the latest n receipts by creation time.
	ListRecent(ctx context.Context, n int) ([]entity.ServiceReceipt, error)
	// ApplyWorkflow applies a transition to every receipt in ids that is
	// still in the expected from state, returning how many rows changed.
	ApplyWorkflow(ctx context.Context, ids []uuid.UUID, from enum.ReceiptState, update *WorkflowUpdate) (int64, error)
}
