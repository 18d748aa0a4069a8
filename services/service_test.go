package services

import (
	"catalog-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB returns a fresh in-memory database per test. A single
// connection keeps the :memory: database alive across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
	)
	require.NoError(t, err)

	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category, err := CreateCategory(db, name)
	require.NoError(t, err)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, slug string, categoryID uint, images []NewProductImage) *models.Product {
	t.Helper()
	product, err := CreateProduct(db, ProductInput{
		Name:       "Product " + slug,
		Slug:       slug,
		Price:      1000,
		CategoryID: categoryID,
	}, images)
	require.NoError(t, err)
	return product
}
