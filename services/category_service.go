package services

import (
	"catalog-backend/models"
	"errors"

	"gorm.io/gorm"
)

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("id asc").Find(&categories).Error
	return categories, err
}

func CountCategories(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Category{}).Count(&count).Error
	return count, err
}

// GetCategory returns the category with up to ten of its products and the
// full product count.
func GetCategory(db *gorm.DB, id uint) (*models.Category, int64, error) {
	var category models.Category
	err := db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id asc").Limit(10)
	}).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	var productCount int64
	err = db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error
	if err != nil {
		return nil, 0, err
	}

	return &category, productCount, nil
}

// CreateCategory rejects names that already exist, compared case-insensitively.
func CreateCategory(db *gorm.DB, name string) (*models.Category, error) {
	if name == "" {
		return nil, ErrMissingField
	}

	var existing models.Category
	err := db.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func UpdateCategory(db *gorm.DB, id uint, name string) (*models.Category, error) {
	if name == "" {
		return nil, ErrMissingField
	}

	var category models.Category
	err := db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Category
	err = db.Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = name
	if err := db.Save(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCategory refuses to delete while any product still references the
// category; the conflict carries the current product count.
func DeleteCategory(db *gorm.DB, id uint) error {
	var category models.Category
	err := db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var productCount int64
	err = db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error
	if err != nil {
		return err
	}
	if productCount > 0 {
		return &DependencyConflictError{ProductCount: productCount}
	}

	return db.Delete(&category).Error
}
