package services

import (
	"catalog-backend/models"
	"errors"

	"gorm.io/gorm"
)

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type PaginatedProducts struct {
	Products []models.Product `json:"products"`
	Meta     PageMeta         `json:"meta"`
}

// NewProductImage is an object already uploaded to storage, waiting to be
// attached to a product row.
type NewProductImage struct {
	URL string
	Key string
}

type ProductInput struct {
	Name        string
	Slug        string
	Price       uint
	Description string
	IsFeatured  bool
	CategoryID  uint
}

// ProductPatch merges field-by-field: nil means "leave unchanged".
type ProductPatch struct {
	Name        *string
	Slug        *string
	Price       *uint
	Description *string
	IsFeatured  *bool
	CategoryID  *uint
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

// ListProducts returns a page of products, newest last, with images and
// category preloaded. categoryID <= 0 means no category filter.
func ListProducts(db *gorm.DB, page, limit, categoryID int) (*PaginatedProducts, error) {
	page, limit = normalizePage(page, limit)

	countQuery := db.Model(&models.Product{})
	listQuery := db.Preload("Images").Preload("Category")
	if categoryID > 0 {
		countQuery = countQuery.Where("category_id = ?", categoryID)
		listQuery = listQuery.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	err := listQuery.
		Order("id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}

	return &PaginatedProducts{
		Products: products,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}

func ListFeaturedProducts(db *gorm.DB, page, limit int) (*PaginatedProducts, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	err := db.Model(&models.Product{}).Where("is_featured = ?", true).Count(&total).Error
	if err != nil {
		return nil, err
	}

	var products []models.Product
	err = db.Preload("Images").Preload("Category").
		Where("is_featured = ?", true).
		Order("id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}

	return &PaginatedProducts{
		Products: products,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}

func CountProducts(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func GetProductByID(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := db.Preload("Images").Preload("Category").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func GetProductBySlug(db *gorm.DB, slug string) (*models.Product, error) {
	var product models.Product
	err := db.Preload("Images").Preload("Category").Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func slugTaken(db *gorm.DB, slug string, excludeID uint) (bool, error) {
	var existing models.Product
	query := db.Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// CreateProduct inserts the product row and its image rows in one
// transaction so a failed image insert cannot leave a half-created product.
func CreateProduct(db *gorm.DB, input ProductInput, images []NewProductImage) (*models.Product, error) {
	if input.Name == "" || input.Slug == "" || input.Price == 0 || input.CategoryID == 0 {
		return nil, ErrMissingField
	}

	taken, err := slugTaken(db, input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	product := models.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Price:       input.Price,
		Description: input.Description,
		IsFeatured:  input.IsFeatured,
		CategoryID:  input.CategoryID,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, image := range images {
		row := models.ProductImage{
			ProductID: product.ID,
			ImageURL:  image.URL,
			S3Key:     image.Key,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return GetProductByID(db, product.ID)
}

// UpdateProduct merges the supplied fields, removes image rows by key,
// attaches newly uploaded images, all in one transaction. Objects for
// removedKeys must already be gone from storage; this only touches rows.
func UpdateProduct(db *gorm.DB, id uint, patch ProductPatch, newImages []NewProductImage, removedKeys []string) (*models.Product, error) {
	var product models.Product
	err := db.First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Slug != nil {
		taken, err := slugTaken(db, *patch.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateSlug
		}
		product.Slug = *patch.Slug
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.IsFeatured != nil {
		product.IsFeatured = *patch.IsFeatured
	}
	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if len(removedKeys) > 0 {
		err := tx.Where("product_id = ? AND s3_key IN ?", id, removedKeys).
			Delete(&models.ProductImage{}).
			Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	for _, image := range newImages {
		row := models.ProductImage{
			ProductID: product.ID,
			ImageURL:  image.URL,
			S3Key:     image.Key,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return GetProductByID(db, id)
}

// DeleteProduct removes the image rows before the product row and returns
// the storage keys so the caller can issue best-effort object deletes.
func DeleteProduct(db *gorm.DB, id uint) ([]string, error) {
	var product models.Product
	err := db.Preload("Images").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	keys := make([]string, 0, len(product.Images))
	for _, image := range product.Images {
		keys = append(keys, image.S3Key)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return keys, nil
}
