package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
)

// CatalogService handles the per-provider service catalog
type CatalogService struct {
	serviceRepo  repository.ServiceRepository
	providerRepo repository.ProviderRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, providerRepo repository.ProviderRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, providerRepo: providerRepo}
}

// ServiceInput is the create/update catalog service input
type ServiceInput struct {
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	Price       float64   `json:"price" binding:"required"`
	Category    string    `json:"category"`
	ProviderID  uuid.UUID `json:"provider_id" binding:"required"`
}

func (in *ServiceInput) validate() []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Service name is required"})
	}
	if in.Price <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price must be greater than zero"})
	}
	return fieldErrors
}

// CreateService adds a catalog entry under an existing provider
func (s *CatalogService) CreateService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	provider, err := s.providerRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewNotFoundError("Provider")
	}

	service := &entity.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ProviderID:  input.ProviderID,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// GetService retrieves a catalog entry by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// ListServices returns the catalog of one provider. Without a provider
// there is nothing to list, so a nil ID yields an empty slice.
func (s *CatalogService) ListServices(ctx context.Context, providerID uuid.UUID) ([]entity.Service, error) {
	if providerID == uuid.Nil {
		return []entity.Service{}, nil
	}
	return s.serviceRepo.ListByProvider(ctx, providerID)
}

// UpdateService updates a catalog entry
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *ServiceInput) (*entity.Service, error) {
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	service, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	service.Name = input.Name
	service.Description = input.Description
	service.Price = input.Price
	service.Category = input.Category

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService removes a catalog entry
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}
