package handlers

import (
	"catalog-backend/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Public, unauthenticated catalog endpoints.

func GetProductListHandler(c *gin.Context, db *gorm.DB) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "شماره صفحه نامعتبر است",
		})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "تعداد درخواستی نامعتبر است",
		})
		return
	}
	categoryID, err := strconv.Atoi(c.DefaultQuery("category", "-1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "شناسه دسته‌بندی نامعتبر است",
		})
		return
	}

	response, err := services.ListProducts(db, page, limit, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت لیست محصولات",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

func GetFeaturedProductListHandler(c *gin.Context, db *gorm.DB) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := services.ListFeaturedProducts(db, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت لیست محصولات",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

func GetProductBySlugHandler(c *gin.Context, db *gorm.DB) {
	slug := c.Param("slug")

	product, err := services.GetProductBySlug(db, slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "محصول یافت نشد",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت محصول",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func GetCategoryListHandler(c *gin.Context, db *gorm.DB) {
	categories, err := services.ListCategories(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت لیست دسته‌بندی‌ها",
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}
