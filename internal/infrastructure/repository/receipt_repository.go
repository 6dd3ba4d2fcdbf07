package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	domainRepo "github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.ServiceReceipt, items []entity.ServiceReceiptItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		receipt.Items = items
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("A receipt with this serial number already exists")
	}
	return err
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceReceipt, error) {
	var receipt entity.ServiceReceipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ServiceReceipt, error) {
	var receipts []entity.ServiceReceipt
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) GetItems(ctx context.Context, receiptID uuid.UUID) ([]entity.ServiceReceiptItem, error) {
	var items []entity.ServiceReceiptItem
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.ServiceReceipt, int64, error) {
	var receipts []entity.ServiceReceipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ServiceReceipt{})

	if params.SerialNumber != "" {
		query = query.Where("serial_number ILIKE ?", "%"+params.SerialNumber+"%")
	}
	if params.ProviderCode != "" {
		query = query.Where("service_provider_code = ?", params.ProviderCode)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.StartDate != nil {
		query = query.Where("service_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("service_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) Search(ctx context.Context, query string) ([]entity.ServiceReceipt, error) {
	var receipts []entity.ServiceReceipt
	err := r.db.WithContext(ctx).
		Where("serial_number ILIKE ?", "%"+query+"%").
		Preload("Items").
		Order("created_at DESC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) ListAll(ctx context.Context, createdFrom, createdTo *time.Time) ([]entity.ServiceReceipt, error) {
	var receipts []entity.ServiceReceipt
	query := r.db.WithContext(ctx).Model(&entity.ServiceReceipt{})
	if createdFrom != nil {
		query = query.Where("created_at >= ?", *createdFrom)
	}
	if createdTo != nil {
		query = query.Where("created_at <= ?", *createdTo)
	}
	err := query.
		Preload("Items").
		Order("created_at ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) ListOpen(ctx context.Context, n int) ([]entity.ServiceReceipt, error) {
	var receipts []entity.ServiceReceipt
	err := r.db.WithContext(ctx).
		Where("status = ? OR payment_status = ?", enum.ReceiptStatusPending, enum.PaymentStatusPending).
		Order("created_at ASC").
		Limit(n).
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) ListRecent(ctx context.Context, n int) ([]entity.ServiceReceipt, error) {
	var receipts []entity.ServiceReceipt
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) ApplyWorkflow(ctx context.Context, ids []uuid.UUID, from enum.ReceiptState, update *domainRepo.WorkflowUpdate) (int64, error) {
	values := map[string]interface{}{
		"status":         update.Status,
		"payment_status": update.PaymentStatus,
	}
	if update.TouchApproval {
		values["approved_by"] = update.ApprovedByID
		values["approved_by_name"] = update.ApprovedByName
		values["approved_at"] = update.ApprovedAt
	}
	if update.TouchPayment {
		values["paid_by"] = update.PaidByID
		values["payment_date"] = update.PaymentDate
	}

	// The from-state condition in the WHERE clause keeps concurrent
	// transitions from double-applying.
	result := r.db.WithContext(ctx).Model(&entity.ServiceReceipt{}).
		Where("id IN ? AND status = ? AND payment_status = ?", ids, from.Status, from.Payment).
		Updates(values)
	return result.RowsAffected, result.Error
}
