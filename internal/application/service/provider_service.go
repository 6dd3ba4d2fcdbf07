package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"gorm.io/datatypes"
)

// ProviderService handles service provider operations
type ProviderService struct {
	providerRepo repository.ProviderRepository
}

// NewProviderService creates a new provider service
func NewProviderService(providerRepo repository.ProviderRepository) *ProviderService {
	return &ProviderService{providerRepo: providerRepo}
}

// ProviderInput is the create/update provider input
type ProviderInput struct {
	CompanyName       string   `json:"company_name" binding:"required"`
	ContactName       *string  `json:"contact_name"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             *string  `json:"phone"`
	VendorNumber      string   `json:"vendor_number" binding:"required"`
	ServiceCategories []string `json:"service_categories"`
	Status            string   `json:"status"`
}

func (in *ProviderInput) validate() []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.CompanyName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "company_name", Message: "Company name is required"})
	}
	if strings.TrimSpace(in.VendorNumber) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vendor_number", Message: "Vendor number is required"})
	}
	if in.Status != "" && !enum.ProviderStatus(in.Status).IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Status must be active or inactive"})
	}
	return fieldErrors
}

// CreateProvider creates a provider. Vendor numbers are unique; a taken
// number is reported as a conflict.
func (s *ProviderService) CreateProvider(ctx context.Context, input *ProviderInput) (*entity.ServiceProvider, error) {
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.providerRepo.GetByVendorNumber(ctx, input.VendorNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrVendorNumberTaken
	}

	status := enum.ProviderStatusActive
	if input.Status != "" {
		status = enum.ProviderStatus(input.Status)
	}

	provider := &entity.ServiceProvider{
		CompanyName:       input.CompanyName,
		ContactName:       input.ContactName,
		Email:             input.Email,
		Phone:             input.Phone,
		VendorNumber:      input.VendorNumber,
		ServiceCategories: datatypes.NewJSONSlice(input.ServiceCategories),
		Status:            status,
	}
	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// GetProvider retrieves a provider by ID
func (s *ProviderService) GetProvider(ctx context.Context, id uuid.UUID) (*entity.ServiceProvider, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewNotFoundError("Provider")
	}
	return provider, nil
}

// ListProviders returns providers, optionally only active ones
func (s *ProviderService) ListProviders(ctx context.Context, activeOnly bool) ([]entity.ServiceProvider, error) {
	return s.providerRepo.List(ctx, activeOnly)
}

// UpdateProvider updates a provider's details
func (s *ProviderService) UpdateProvider(ctx context.Context, id uuid.UUID, input *ProviderInput) (*entity.ServiceProvider, error) {
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VendorNumber != provider.VendorNumber {
		existing, err := s.providerRepo.GetByVendorNumber(ctx, input.VendorNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.ErrVendorNumberTaken
		}
	}

	provider.CompanyName = input.CompanyName
	provider.ContactName = input.ContactName
	provider.Email = input.Email
	provider.Phone = input.Phone
	provider.VendorNumber = input.VendorNumber
	provider.ServiceCategories = datatypes.NewJSONSlice(input.ServiceCategories)
	if input.Status != "" {
		provider.Status = enum.ProviderStatus(input.Status)
	}

	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// DeleteProvider removes a provider
func (s *ProviderService) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProvider(ctx, id); err != nil {
		return err
	}
	return s.providerRepo.Delete(ctx, id)
}
