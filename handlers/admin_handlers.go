package handlers

import (
	"catalog-backend/services"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Protected, role-gated endpoints for categories, users and counts. The
// permission middleware runs before these; no role checks happen here.

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "شناسه نامعتبر است",
		})
		return 0, false
	}
	return uint(id), true
}

func GetAdminCategoryListHandler(c *gin.Context, db *gorm.DB) {
	categories, err := services.ListCategories(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت لیست دسته‌بندی‌ها",
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func CreateCategoryHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "نام دسته‌بندی الزامی است",
		})
		return
	}

	category, err := services.CreateCategory(db, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "دسته‌بندی با این نام قبلا ثبت شده است",
			})
			return
		}
		log.Printf("category create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func GetCategoryHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, productCount, err := services.GetCategory(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "دسته‌بندی یافت نشد",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           category.ID,
		"name":         category.Name,
		"products":     category.Products,
		"productCount": productCount,
	})
}

func UpdateCategoryHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "نام دسته‌بندی الزامی است",
		})
		return
	}

	category, err := services.UpdateCategory(db, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message": "دسته‌بندی یافت نشد",
			})
		case errors.Is(err, services.ErrDuplicateName):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "دسته‌بندی با این نام قبلا ثبت شده است",
			})
		default:
			log.Printf("category update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "خطای داخلی سرور",
			})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

func DeleteCategoryHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := services.DeleteCategory(db, id)
	if err != nil {
		var conflict *services.DependencyConflictError
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message": "دسته‌بندی یافت نشد",
			})
		case errors.As(err, &conflict):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":      "حذف دسته‌بندی دارای محصول امکان‌پذیر نیست",
				"productCount": conflict.ProductCount,
			})
		default:
			log.Printf("category delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "خطای داخلی سرور",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "دسته‌بندی با موفقیت حذف شد",
	})
}

func GetUserListHandler(c *gin.Context, db *gorm.DB) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := services.ListUsers(db, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطا در دریافت لیست کاربران",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

func GetUserHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := services.GetUserByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "کاربر یافت نشد",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateUserHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "اطلاعات وارد شده نامعتبر است",
		})
		return
	}

	user, err := services.UpdateUser(db, id, services.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message": "کاربر یافت نشد",
			})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"message": "کاربری با این ایمیل قبلا ثبت شده است",
			})
		default:
			log.Printf("user update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "خطای داخلی سرور",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func PatchUserHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Email     *string `json:"email"`
		Role      *string `json:"role"`
		Password  *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "اطلاعات وارد شده نامعتبر است",
		})
		return
	}

	user, err := services.PatchUser(db, id, services.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"message": "کاربر یافت نشد",
			})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"message": "کاربری با این ایمیل قبلا ثبت شده است",
			})
		default:
			log.Printf("user patch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "خطای داخلی سرور",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "اطلاعات کاربر با موفقیت بروزرسانی شد",
	})
}

func DeleteUserHandler(c *gin.Context, db *gorm.DB) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := services.DeleteUser(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "کاربر یافت نشد",
			})
			return
		}
		log.Printf("user delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "کاربر با موفقیت حذف شد",
	})
}

// GetCountsHandler reports the admin dashboard totals.
func GetCountsHandler(c *gin.Context, db *gorm.DB) {
	userCount, err := services.CountUsers(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}
	productCount, err := services.CountProducts(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}
	categoryCount, err := services.CountCategories(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "خطای داخلی سرور",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts": gin.H{
			"userCount":     userCount,
			"productCount":  productCount,
			"categoryCount": categoryCount,
		},
	})
}
