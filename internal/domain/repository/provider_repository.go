package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
)

// ProviderRepository defines the interface for service provider data operations.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.ServiceProvider) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceProvider, error)
	GetByVendorNumber(ctx context.Context, vendorNumber string) (*entity.ServiceProvider, error)
	// List returns providers newest first; activeOnly restricts to
	// providers selectable on new receipts.
	List(ctx context.Context, activeOnly bool) ([]entity.ServiceProvider, error)
	Update(ctx context.Context, provider *entity.ServiceProvider) error
	Delete(ctx context.Context, id uuid.UUID) error
}
