package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
)

// ServiceRepository defines the interface for service catalog data operations.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}
