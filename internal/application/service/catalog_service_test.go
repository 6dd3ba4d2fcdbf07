package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService() (*CatalogService, *mockProviderRepo) {
	providerRepo := newMockProviderRepo()
	return NewCatalogService(newMockServiceRepo(), providerRepo), providerRepo
}

func TestCreateService_RejectsNonPositivePrice(t *testing.T) {
	svc, providers := newTestCatalogService()
	provider := &entity.ServiceProvider{CompanyName: "Acme", VendorNumber: "VN-1"}
	require.NoError(t, providers.Create(context.Background(), provider))

	_, err := svc.CreateService(context.Background(), &ServiceInput{
		Name:       "Unloading",
		Price:      0,
		ProviderID: provider.ID,
	})

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateService_UnknownProvider(t *testing.T) {
	svc, _ := newTestCatalogService()

	_, err := svc.CreateService(context.Background(), &ServiceInput{
		Name:       "Unloading",
		Price:      25,
		ProviderID: uuid.New(),
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListServices_NoProviderSelected(t *testing.T) {
	svc, providers := newTestCatalogService()
	provider := &entity.ServiceProvider{CompanyName: "Acme", VendorNumber: "VN-1"}
	require.NoError(t, providers.Create(context.Background(), provider))

	_, err := svc.CreateService(context.Background(), &ServiceInput{
		Name:       "Unloading",
		Price:      25,
		ProviderID: provider.ID,
	})
	require.NoError(t, err)

	// Without a provider selection the catalog shows nothing.
	services, err := svc.ListServices(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, services)

	services, err = svc.ListServices(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Len(t, services, 1)
}
