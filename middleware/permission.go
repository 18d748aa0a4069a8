package middleware

import (
	"catalog-backend/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const protectedProductsPrefix = "/api/protected/products"

// CheckPermissionMiddleware is the role gate for the protected API surface.
// SUPERADMIN passes everywhere; PRODUCTMANAGER only under the products
// sub-prefix; everyone else is rejected.
func CheckPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("Role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "ابتدا وارد حساب کاربری خود شوید",
			})
			c.Abort()
			return
		}

		switch role {
		case models.RoleSuperAdmin:
			c.Next()
			return
		case models.RoleProductManager:
			if strings.HasPrefix(c.Request.URL.Path, protectedProductsPrefix) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"message": "شما دسترسی لازم برای این عملیات را ندارید",
		})
		c.Abort()
	}
}
