package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/desertbloom-landscaping/backoffice-api/internal/database"
	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
)

// setupTestDB opens an isolated in-memory sqlite database and migrates the
// schema. Each caller passes a distinct name so tests stay independent.
func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// createTestService inserts a catalog entry and returns it
func createTestService(t *testing.T, db *gorm.DB, name string, types ...string) *domain.Service {
	t.Helper()

	allowed := make(domain.ProjectTypeList, len(types))
	for i, pt := range types {
		allowed[i] = pricing.ProjectType(pt)
	}

	svc := &domain.Service{
		Name:                name,
		AllowedProjectTypes: allowed,
		IsActive:            true,
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}
