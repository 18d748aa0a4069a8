package handlers

import (
	"catalog-backend/services"
	"catalog-backend/storage"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Protected product endpoints. Create and update consume multipart forms:
// plain fields are the product attributes, file parts under "images" are
// uploaded to object storage, and removedS3Keys lists keys to drop.

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"message": "محصول یافت نشد",
		})
	case errors.Is(err, services.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "نام، اسلاگ، قیمت و دسته‌بندی الزامی هستند",
		})
	case errors.Is(err, services.ErrDuplicateSlug):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "محصولی با این اسلاگ قبلا ثبت شده است",
		})
	default:
		log.Printf("product operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
	}
}

func validImageFiles(c *gin.Context, files []*multipart.FileHeader) bool {
	for _, file := range files {
		if !isValidImageExtension(file) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "فرمت فایل تصویر مجاز نیست",
			})
			return false
		}
	}
	return true
}

func GetAdminProductListHandler(c *gin.Context, db *gorm.DB) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := services.ListProducts(db, page, limit, -1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت لیست محصولات",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

func GetAdminProductHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := services.GetProductByID(db, id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func CreateProductHandler(c *gin.Context, db *gorm.DB, store storage.Storage) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "فرم ارسالی نامعتبر است",
		})
		return
	}

	name := c.PostForm("name")
	slug := c.PostForm("slug")
	priceRaw := c.PostForm("price")
	categoryIDRaw := c.PostForm("categoryId")
	if name == "" || slug == "" || priceRaw == "" || categoryIDRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "نام، اسلاگ، قیمت و دسته‌بندی الزامی هستند",
		})
		return
	}

	price, err := strconv.ParseUint(priceRaw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "قیمت نامعتبر است",
		})
		return
	}
	categoryID, err := strconv.ParseUint(categoryIDRaw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "شناسه دسته‌بندی نامعتبر است",
		})
		return
	}

	files := form.File["images"]
	if !validImageFiles(c, files) {
		return
	}

	uploaded, err := uploadFormFiles(c.Request.Context(), store, files)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در بارگذاری تصویر",
		})
		return
	}

	input := services.ProductInput{
		Name:        name,
		Slug:        slug,
		Price:       uint(price),
		Description: c.PostForm("description"),
		IsFeatured:  c.PostForm("isFeatured") == "true",
		CategoryID:  uint(categoryID),
	}

	product, err := services.CreateProduct(db, input, uploaded)
	if err != nil {
		// The objects are already in the bucket; undo before reporting.
		if cerr := cleanupObjects(c.Request.Context(), store, uploaded); cerr != nil {
			log.Printf("create product compensation: %v", cerr)
		}
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func UpdateProductHandler(c *gin.Context, db *gorm.DB, store storage.Storage) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "فرم ارسالی نامعتبر است",
		})
		return
	}

	// Only fields present in the form are merged.
	var patch services.ProductPatch
	if values, ok := form.Value["name"]; ok && len(values) > 0 {
		patch.Name = &values[0]
	}
	if values, ok := form.Value["slug"]; ok && len(values) > 0 {
		patch.Slug = &values[0]
	}
	if values, ok := form.Value["description"]; ok && len(values) > 0 {
		patch.Description = &values[0]
	}
	if values, ok := form.Value["price"]; ok && len(values) > 0 {
		price, err := strconv.ParseUint(values[0], 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "قیمت نامعتبر است",
			})
			return
		}
		parsed := uint(price)
		patch.Price = &parsed
	}
	if values, ok := form.Value["categoryId"]; ok && len(values) > 0 {
		categoryID, err := strconv.ParseUint(values[0], 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "شناسه دسته‌بندی نامعتبر است",
			})
			return
		}
		parsed := uint(categoryID)
		patch.CategoryID = &parsed
	}
	if values, ok := form.Value["isFeatured"]; ok && len(values) > 0 {
		featured := values[0] == "true"
		patch.IsFeatured = &featured
	}

	removedKeys, err := parseRemovedKeys(c.PostForm("removedS3Keys"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "لیست تصاویر حذف شده نامعتبر است",
		})
		return
	}

	// Removed objects go first; a failed delete is logged, not fatal.
	for _, key := range removedKeys {
		if err := store.Delete(c.Request.Context(), key); err != nil {
			log.Printf("failed to delete object %s: %v", key, err)
		}
	}

	files := form.File["images"]
	if !validImageFiles(c, files) {
		return
	}

	uploaded, err := uploadFormFiles(c.Request.Context(), store, files)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در بارگذاری تصویر",
		})
		return
	}

	product, err := services.UpdateProduct(db, id, patch, uploaded, removedKeys)
	if err != nil {
		if cerr := cleanupObjects(c.Request.Context(), store, uploaded); cerr != nil {
			log.Printf("update product compensation: %v", cerr)
		}
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func DeleteProductHandler(c *gin.Context, db *gorm.DB, store storage.Storage) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	keys, err := services.DeleteProduct(db, id)
	if err != nil {
		respondProductError(c, err)
		return
	}

	// Rows are gone; backing objects are removed best-effort.
	for _, key := range keys {
		if err := store.Delete(c.Request.Context(), key); err != nil {
			log.Printf("failed to delete object %s: %v", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "محصول با موفقیت حذف شد",
	})
}
