package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
)

// mockReceiptRepo is an in-memory ReceiptRepository.
type mockReceiptRepo struct {
	receipts map[uuid.UUID]*entity.ServiceReceipt
	err      error
}

func newMockReceiptRepo() *mockReceiptRepo {
	return &mockReceiptRepo{receipts: make(map[uuid.UUID]*entity.ServiceReceipt)}
}

func (m *mockReceiptRepo) add(r *entity.ServiceReceipt) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.receipts[r.ID] = r
}

func (m *mockReceiptRepo) Create(ctx context.Context, receipt *entity.ServiceReceipt, items []entity.ServiceReceiptItem) error {
	if m.err != nil {
		return m.err
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].ReceiptID = receipt.ID
	}
	receipt.Items = items
	if receipt.Status == "" {
		receipt.Status = enum.ReceiptStatusPending
	}
	if receipt.PaymentStatus == "" {
		receipt.PaymentStatus = enum.PaymentStatusPending
	}
	receipt.CreatedAt = time.Now()
	m.receipts[receipt.ID] = receipt
	return nil
}

func (m *mockReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceReceipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.receipts[id], nil
}

func (m *mockReceiptRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ServiceReceipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.ServiceReceipt
	for _, id := range ids {
		if r, ok := m.receipts[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockReceiptRepo) GetItems(ctx context.Context, receiptID uuid.UUID) ([]entity.ServiceReceiptItem, error) {
	if r, ok := m.receipts[receiptID]; ok {
		return r.Items, nil
	}
	return nil, nil
}

func (m *mockReceiptRepo) List(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.ServiceReceipt, int64, error) {
	all, _ := m.ListAll(ctx, nil, nil)
	return all, int64(len(all)), nil
}

func (m *mockReceiptRepo) Search(ctx context.Context, query string) ([]entity.ServiceReceipt, error) {
	return m.ListAll(ctx, nil, nil)
}

func (m *mockReceiptRepo) ListAll(ctx context.Context, createdFrom, createdTo *time.Time) ([]entity.ServiceReceipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.ServiceReceipt
	for _, r := range m.receipts {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockReceiptRepo) ListOpen(ctx context.Context, n int) ([]entity.ServiceReceipt, error) {
	var out []entity.ServiceReceipt
	for _, r := range m.receipts {
		if r.Status == enum.ReceiptStatusPending || r.PaymentStatus == enum.PaymentStatusPending {
			out = append(out, *r)
		}
		if len(out) == n {
			break
		}
	}
	return out, nil
}

func (m *mockReceiptRepo) ListRecent(ctx context.Context, n int) ([]entity.ServiceReceipt, error) {
	return m.ListAll(ctx, nil, nil)
}

func (m *mockReceiptRepo) ApplyWorkflow(ctx context.Context, ids []uuid.UUID, from enum.ReceiptState, update *repository.WorkflowUpdate) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var affected int64
	for _, id := range ids {
		r, ok := m.receipts[id]
		if !ok || r.State() != from {
			continue
		}
		r.Status = update.Status
		r.PaymentStatus = update.PaymentStatus
		if update.TouchApproval {
			r.ApprovedByID = update.ApprovedByID
			r.ApprovedByName = update.ApprovedByName
			r.ApprovedAt = update.ApprovedAt
		}
		if update.TouchPayment {
			r.PaidByID = update.PaidByID
			r.PaymentDate = update.PaymentDate
		}
		affected++
	}
	return affected, nil
}

// mockProviderRepo is an in-memory ProviderRepository.
type mockProviderRepo struct {
	providers map[uuid.UUID]*entity.ServiceProvider
}

func newMockProviderRepo() *mockProviderRepo {
	return &mockProviderRepo{providers: make(map[uuid.UUID]*entity.ServiceProvider)}
}

func (m *mockProviderRepo) Create(ctx context.Context, provider *entity.ServiceProvider) error {
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	m.providers[provider.ID] = provider
	return nil
}

func (m *mockProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceProvider, error) {
	return m.providers[id], nil
}

func (m *mockProviderRepo) GetByVendorNumber(ctx context.Context, vendorNumber string) (*entity.ServiceProvider, error) {
	for _, p := range m.providers {
		if p.VendorNumber == vendorNumber {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProviderRepo) List(ctx context.Context, activeOnly bool) ([]entity.ServiceProvider, error) {
	var out []entity.ServiceProvider
	for _, p := range m.providers {
		if activeOnly && p.Status != enum.ProviderStatusActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProviderRepo) Update(ctx context.Context, provider *entity.ServiceProvider) error {
	m.providers[provider.ID] = provider
	return nil
}

func (m *mockProviderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.providers, id)
	return nil
}

// mockServiceRepo is an in-memory ServiceRepository.
type mockServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newMockServiceRepo() *mockServiceRepo {
	return &mockServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (m *mockServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	m.services[service.ID] = service
	return nil
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	return m.services[id], nil
}

func (m *mockServiceRepo) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]entity.Service, error) {
	var out []entity.Service
	for _, s := range m.services {
		if s.ProviderID == providerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	m.services[service.ID] = service
	return nil
}

func (m *mockServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.services, id)
	return nil
}

// mockProfileRepo is an in-memory ProfileRepository.
type mockProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.Role == "" {
		profile.Role = enum.RoleUser
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return m.profiles[id], nil
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProfileRepo) List(ctx context.Context) ([]entity.Profile, error) {
	var out []entity.Profile
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) UpdateRole(ctx context.Context, userID uuid.UUID, role enum.Role) error {
	p, ok := m.profiles[userID]
	if !ok {
		return errNotFound
	}
	p.Role = role
	return nil
}

var errNotFound = errors.New("not found")
