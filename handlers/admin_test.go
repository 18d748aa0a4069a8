package handlers

import (
	"bytes"
	"catalog-backend/models"
	"catalog-backend/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(router http.Handler, req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, url string, payload any) *http.Request {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPermissionMatrix(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db, newMemStorage())

	superToken := createUserToken(t, db, "admin@example.com", models.RoleSuperAdmin)
	managerToken := createUserToken(t, db, "pm@example.com", models.RoleProductManager)
	userToken := createUserToken(t, db, "user@example.com", models.RoleUser)

	// No token at all is unauthenticated everywhere under the prefix.
	w := doRequest(router, jsonRequest(t, "GET", "/api/protected/users", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/products", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A garbage token is treated the same as none.
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/products", nil), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Regular users are denied everywhere under the prefix.
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/products", nil), userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/users", nil), userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Product managers reach the products sub-prefix only.
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/products", nil), managerToken)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/users", nil), managerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/categories", nil), managerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/counts", nil), managerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Super admins reach everything under the prefix.
	for _, url := range []string{
		"/api/protected/products",
		"/api/protected/categories",
		"/api/protected/users",
		"/api/protected/counts",
	} {
		w = doRequest(router, jsonRequest(t, "GET", url, nil), superToken)
		assert.Equal(t, http.StatusOK, w.Code, url)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db, newMemStorage())
	token := createUserToken(t, db, "admin@example.com", models.RoleSuperAdmin)

	// Create succeeds once.
	w := doRequest(router, jsonRequest(t, "POST", "/api/protected/categories", map[string]string{
		"name": "Transformers",
	}), token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// A case variant of the same name is rejected.
	w = doRequest(router, jsonRequest(t, "POST", "/api/protected/categories", map[string]string{
		"name": "transformers",
	}), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rename, then delete.
	w = doRequest(router, jsonRequest(t, "PATCH", "/api/protected/categories/1", map[string]string{
		"name": "Power Transformers",
	}), token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, jsonRequest(t, "DELETE", "/api/protected/categories/1", nil), token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, jsonRequest(t, "DELETE", "/api/protected/categories/1", nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db, newMemStorage())
	token := createUserToken(t, db, "admin@example.com", models.RoleSuperAdmin)

	category, err := services.CreateCategory(db, "Transformers")
	require.NoError(t, err)
	_, err = services.CreateProduct(db, services.ProductInput{
		Name:       "T1",
		Slug:       "t1",
		Price:      1000,
		CategoryID: category.ID,
	}, nil)
	require.NoError(t, err)

	w := doRequest(router, jsonRequest(t, "DELETE", "/api/protected/categories/1", nil), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["productCount"])
}

func TestUserManagement(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db, newMemStorage())
	token := createUserToken(t, db, "admin@example.com", models.RoleSuperAdmin)

	_, err := services.RegisterUser(db, "Ali", "Rezai", "ali@example.com", "secret1")
	require.NoError(t, err)

	// List never exposes password hashes.
	w := doRequest(router, jsonRequest(t, "GET", "/api/protected/users", nil), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "Password")

	// Promote via PATCH.
	w = doRequest(router, jsonRequest(t, "PATCH", "/api/protected/users/2", map[string]string{
		"role": models.RoleProductManager,
	}), token)
	require.Equal(t, http.StatusOK, w.Code)

	user, err := services.GetUserByID(db, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RoleProductManager, user.Role)

	// Full update via PUT.
	w = doRequest(router, jsonRequest(t, "PUT", "/api/protected/users/2", map[string]string{
		"firstName": "Ali",
		"lastName":  "Rezaei",
		"email":     "ali.rezaei@example.com",
		"role":      models.RoleUser,
	}), token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, jsonRequest(t, "DELETE", "/api/protected/users/2", nil), token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, jsonRequest(t, "GET", "/api/protected/users/2", nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCounts(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db, newMemStorage())
	token := createUserToken(t, db, "admin@example.com", models.RoleSuperAdmin)

	category, err := services.CreateCategory(db, "Transformers")
	require.NoError(t, err)
	_, err = services.CreateProduct(db, services.ProductInput{
		Name:       "T1",
		Slug:       "t1",
		Price:      1000,
		CategoryID: category.ID,
	}, nil)
	require.NoError(t, err)

	w := doRequest(router, jsonRequest(t, "GET", "/api/protected/counts", nil), token)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Counts struct {
			UserCount     int64 `json:"userCount"`
			ProductCount  int64 `json:"productCount"`
			CategoryCount int64 `json:"categoryCount"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Counts.UserCount)
	assert.Equal(t, int64(1), response.Counts.ProductCount)
	assert.Equal(t, int64(1), response.Counts.CategoryCount)
}
