package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/hisaabos/backend/internal/application/catalog"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/hisaabos/backend/internal/interfaces/http/dto"
	"github.com/hisaabos/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = middleware.RegisterValidators()
	return gin.New()
}

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		"Wireless Mouse",
		decimal.NewFromInt(800),
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
		decimal.NewFromInt(1500),
		20,
		5,
	)
	require.NoError(t, err)
	return product
}

func TestProductHandler_Create(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"name":            "Wireless Mouse",
		"purchase_price":  "800",
		"shipping_cost":   "100",
		"packaging_cost":  "50",
		"retail_price":    "1500",
		"stock_level":     20,
		"alert_threshold": 5,
	})

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)

	data := response.Data.(map[string]interface{})
	assert.Equal(t, "Wireless Mouse", data["name"])
	assert.Equal(t, "950", data["landed_cost"])
	assert.NotEmpty(t, data["sku"])

	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_InvalidJSON(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	productRepo.AssertNotCalled(t, "Save")
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	body, _ := json.Marshal(map[string]interface{}{
		"purchase_price": "800",
		"retail_price":   "1500",
	})

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	productRepo.AssertNotCalled(t, "Save")
}

func TestProductHandler_GetByID(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.GET("/products/:id", handler.GetByID)

	product := testProduct(t)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.GET("/products/:id", handler.GetByID)

	missingID := uuid.New()
	productRepo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/products/"+missingID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, dto.ErrCodeNotFound, response.Error.Code)

	productRepo.AssertExpectations(t)
}

func TestProductHandler_GetByID_InvalidID(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.GET("/products/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	productRepo.AssertNotCalled(t, "FindByID")
}

func TestProductHandler_GetBySKU(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.GET("/products/sku/:sku", handler.GetBySKU)

	product := testProduct(t)
	productRepo.On("FindBySKU", mock.Anything, product.SKU).Return(product, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/sku/"+product.SKU, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_List(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.GET("/products", handler.List)

	product := testProduct(t)
	productRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*product}, nil)
	productRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/products?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Meta)
	assert.Equal(t, int64(1), response.Meta.Total)
	assert.Equal(t, 1, response.Meta.Page)
	assert.Equal(t, 10, response.Meta.PageSize)

	productRepo.AssertExpectations(t)
}

func TestProductHandler_ListLowStock(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.GET("/products/low-stock", handler.ListLowStock)

	productRepo.On("FindLowStock", mock.Anything).Return([]catalog.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/low-stock", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Update(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.PUT("/products/:id", handler.Update)

	product := testProduct(t)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"retail_price": "1800",
	})

	req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response.Data.(map[string]interface{})
	assert.Equal(t, "1800", data["retail_price"])

	productRepo.AssertExpectations(t)
}

func TestProductHandler_Update_ConcurrencyConflict(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.PUT("/products/:id", handler.Update)

	product := testProduct(t)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*catalog.Product")).
		Return(shared.ErrConcurrencyConflict)

	body, _ := json.Marshal(map[string]interface{}{
		"stock_level": 15,
	})

	req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Delete(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := NewProductHandler(catalogapp.NewProductService(productRepo))

	router := setupTestRouter()
	router.DELETE("/products/:id", handler.Delete)

	productID := uuid.New()
	productRepo.On("Delete", mock.Anything, productID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/products/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	productRepo.AssertExpectations(t)
}
