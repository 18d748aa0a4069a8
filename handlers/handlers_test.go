package handlers

import (
	"bytes"
	"catalog-backend/jwt"
	"catalog-backend/middleware"
	"catalog-backend/models"
	"catalog-backend/storage"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

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

// memStorage is an in-memory stand-in for the S3-compatible bucket.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStorage) PublicURL(key string) string {
	return "http://storage.local/catalog/" + key
}

func (s *memStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return s.PublicURL(key) + "?signed", nil
}

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *memStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// setupRouter wires the handlers with the same middleware chain the real
// router uses.
func setupRouter(db *gorm.DB, store storage.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret))

	r.GET("/api/categories", func(c *gin.Context) { GetCategoryListHandler(c, db) })
	r.GET("/api/products", func(c *gin.Context) { GetProductListHandler(c, db) })
	r.GET("/api/products/featured", func(c *gin.Context) { GetFeaturedProductListHandler(c, db) })
	r.GET("/api/products/:slug", func(c *gin.Context) { GetProductBySlugHandler(c, db) })
	r.POST("/api/register", func(c *gin.Context) { RegisterHandler(c, db) })
	r.POST("/api/login", func(c *gin.Context) { LoginHandler(c, db, testSecret) })
	r.POST("/api/logout", func(c *gin.Context) { LogoutHandler(c) })

	protected := r.Group("/api/protected")
	protected.Use(middleware.CheckLoginMiddleware(), middleware.CheckPermissionMiddleware())
	{
		protected.GET("/categories", func(c *gin.Context) { GetAdminCategoryListHandler(c, db) })
		protected.POST("/categories", func(c *gin.Context) { CreateCategoryHandler(c, db) })
		protected.GET("/categories/:id", func(c *gin.Context) { GetCategoryHandler(c, db) })
		protected.PATCH("/categories/:id", func(c *gin.Context) { UpdateCategoryHandler(c, db) })
		protected.DELETE("/categories/:id", func(c *gin.Context) { DeleteCategoryHandler(c, db) })

		protected.GET("/products", func(c *gin.Context) { GetAdminProductListHandler(c, db) })
		protected.POST("/products", func(c *gin.Context) { CreateProductHandler(c, db, store) })
		protected.GET("/products/:id", func(c *gin.Context) { GetAdminProductHandler(c, db) })
		protected.PATCH("/products/:id", func(c *gin.Context) { UpdateProductHandler(c, db, store) })
		protected.DELETE("/products/:id", func(c *gin.Context) { DeleteProductHandler(c, db, store) })

		protected.GET("/users", func(c *gin.Context) { GetUserListHandler(c, db) })
		protected.GET("/users/:id", func(c *gin.Context) { GetUserHandler(c, db) })
		protected.PUT("/users/:id", func(c *gin.Context) { UpdateUserHandler(c, db) })
		protected.PATCH("/users/:id", func(c *gin.Context) { PatchUserHandler(c, db) })
		protected.DELETE("/users/:id", func(c *gin.Context) { DeleteUserHandler(c, db) })

		protected.GET("/counts", func(c *gin.Context) { GetCountsHandler(c, db) })
	}

	return r
}

// createUserToken inserts a user with the given role and returns a valid
// bearer token for it.
func createUserToken(t *testing.T, db *gorm.DB, email, role string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hash),
		Role:      role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := jwt.GenerateToken(testSecret, user.ID, user.Role, time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	return token
}

// newMultipartRequest builds a multipart form request with plain fields and
// image file parts under the "images" field.
func newMultipartRequest(t *testing.T, method, url string, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
