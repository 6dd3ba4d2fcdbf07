package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	domainRepo "github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"gorm.io/gorm"
)

type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new service provider repository
func NewProviderRepository(db *gorm.DB) domainRepo.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.ServiceProvider) error {
	err := r.db.WithContext(ctx).Create(provider).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrVendorNumberTaken
	}
	return err
}

func (r *providerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceProvider, error) {
	var provider entity.ServiceProvider
	err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *providerRepository) GetByVendorNumber(ctx context.Context, vendorNumber string) (*entity.ServiceProvider, error) {
	var provider entity.ServiceProvider
	err := r.db.WithContext(ctx).First(&provider, "vendor_number = ?", vendorNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *providerRepository) List(ctx context.Context, activeOnly bool) ([]entity.ServiceProvider, error) {
	var providers []entity.ServiceProvider
	query := r.db.WithContext(ctx).Model(&entity.ServiceProvider{})
	if activeOnly {
		query = query.Where("status = ?", enum.ProviderStatusActive)
	}
	err := query.Order("created_at DESC").Find(&providers).Error
	return providers, err
}

func (r *providerRepository) Update(ctx context.Context, provider *entity.ServiceProvider) error {
	err := r.db.WithContext(ctx).Save(provider).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrVendorNumberTaken
	}
	return err
}

func (r *providerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ServiceProvider{}, "id = ?", id).Error
}
