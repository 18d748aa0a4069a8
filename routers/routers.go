package routers

import (
	"catalog-backend/handlers"
	"catalog-backend/middleware"
	"catalog-backend/storage"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, store storage.Storage, jwtSecret string) *gin.Engine {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.Use(middleware.AuthMiddleware(jwtSecret))
	{
		////Public catalog and account endpoints
		router.GET("/api/categories", func(context *gin.Context) {
			handlers.GetCategoryListHandler(context, db)
		})
		router.GET("/api/products", func(context *gin.Context) {
			handlers.GetProductListHandler(context, db)
		})
		router.GET("/api/products/featured", func(context *gin.Context) {
			handlers.GetFeaturedProductListHandler(context, db)
		})
		router.GET("/api/products/:slug", func(context *gin.Context) {
			handlers.GetProductBySlugHandler(context, db)
		})
		router.POST("/api/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, db)
		})
		router.POST("/api/login", func(context *gin.Context) {
			handlers.LoginHandler(context, db, jwtSecret)
		})
		router.POST("/api/logout", func(context *gin.Context) {
			handlers.LogoutHandler(context)
		})

		////Role-gated admin surface
		protected := router.Group("/api/protected")
		protected.Use(middleware.CheckLoginMiddleware(), middleware.CheckPermissionMiddleware())
		{
			protected.GET("/categories", func(context *gin.Context) {
				handlers.GetAdminCategoryListHandler(context, db)
			})
			protected.POST("/categories", func(context *gin.Context) {
				handlers.CreateCategoryHandler(context, db)
			})
			protected.GET("/categories/:id", func(context *gin.Context) {
				handlers.GetCategoryHandler(context, db)
			})
			protected.PATCH("/categories/:id", func(context *gin.Context) {
				handlers.UpdateCategoryHandler(context, db)
			})
			protected.DELETE("/categories/:id", func(context *gin.Context) {
				handlers.DeleteCategoryHandler(context, db)
			})

			protected.GET("/products", func(context *gin.Context) {
				handlers.GetAdminProductListHandler(context, db)
			})
			protected.POST("/products", func(context *gin.Context) {
				handlers.CreateProductHandler(context, db, store)
			})
			protected.GET("/products/:id", func(context *gin.Context) {
				handlers.GetAdminProductHandler(context, db)
			})
			protected.PATCH("/products/:id", func(context *gin.Context) {
				handlers.UpdateProductHandler(context, db, store)
			})
			protected.DELETE("/products/:id", func(context *gin.Context) {
				handlers.DeleteProductHandler(context, db, store)
			})

			protected.GET("/users", func(context *gin.Context) {
				handlers.GetUserListHandler(context, db)
			})
			protected.GET("/users/:id", func(context *gin.Context) {
				handlers.GetUserHandler(context, db)
			})
			protected.PUT("/users/:id", func(context *gin.Context) {
				handlers.UpdateUserHandler(context, db)
			})
			protected.PATCH("/users/:id", func(context *gin.Context) {
				handlers.PatchUserHandler(context, db)
			})
			protected.DELETE("/users/:id", func(context *gin.Context) {
				handlers.DeleteUserHandler(context, db)
			})

			protected.GET("/counts", func(context *gin.Context) {
				handlers.GetCountsHandler(context, db)
			})
		}
	}

	return router
}
