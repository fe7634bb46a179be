package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
	"github.com/desertbloom-landscaping/backoffice-api/internal/service"
)

func createCatalogService(db *gorm.DB) *service.CatalogService {
	return service.NewCatalogService(repository.NewServiceRepository(db), zap.NewNop())
}

func TestCatalogService_CreateService(t *testing.T) {
	db := setupTestDB(t, "catalog_service_create")
	svc := createCatalogService(db)

	t.Run("creates active entry", func(t *testing.T) {
		dto, err := svc.CreateService(context.Background(), &domain.CreateServiceRequest{
			Name:                "Lawn Care",
			Description:         "Recurring maintenance visits",
			AllowedProjectTypes: []string{"maintenance"},
			DisplayOrder:        1,
		})
		require.NoError(t, err)

		assert.True(t, dto.IsActive)
		assert.Equal(t, []pricing.ProjectType{pricing.ProjectTypeMaintenance}, dto.AllowedProjectTypes)
	})

	t.Run("rejects unknown project type", func(t *testing.T) {
		_, err := svc.CreateService(context.Background(), &domain.CreateServiceRequest{
			Name:                "Demolition",
			AllowedProjectTypes: []string{"demolition"},
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestCatalogService_ListServices(t *testing.T) {
	db := setupTestDB(t, "catalog_service_list")
	svc := createCatalogService(db)

	_, err := svc.CreateService(context.Background(), &domain.CreateServiceRequest{
		Name:                "Hardscape Repair",
		AllowedProjectTypes: []string{"repair"},
		DisplayOrder:        2,
	})
	require.NoError(t, err)
	_, err = svc.CreateService(context.Background(), &domain.CreateServiceRequest{
		Name:                "Lawn Care",
		AllowedProjectTypes: []string{"maintenance"},
		DisplayOrder:        1,
	})
	require.NoError(t, err)

	inactive := createTestService(t, db, "Retired", "maintenance")
	require.NoError(t, db.Model(&domain.Service{}).
		Where("id = ?", inactive.ID).
		Update("is_active", false).Error)

	dtos, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "Lawn Care", dtos[0].Name)
	assert.Equal(t, "Hardscape Repair", dtos[1].Name)
}

func TestCatalogService_GetAllowedProjectTypes(t *testing.T) {
	db := setupTestDB(t, "catalog_service_types")
	svc := createCatalogService(db)

	entry := createTestService(t, db, "Sprinkler Systems", "installation", "repair")

	t.Run("returns stored types", func(t *testing.T) {
		types, err := svc.GetAllowedProjectTypes(context.Background(), entry.ID)
		require.NoError(t, err)
		assert.Equal(t, []pricing.ProjectType{
			pricing.ProjectTypeInstallation,
			pricing.ProjectTypeRepair,
		}, types)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.GetAllowedProjectTypes(context.Background(), uuid.New())
		assert.ErrorIs(t, err, service.ErrServiceNotFound)
	})
}
