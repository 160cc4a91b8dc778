package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		"Cotton Kurta",
		decimal.NewFromInt(450),
		decimal.NewFromInt(50),
		decimal.NewFromInt(25),
		decimal.NewFromInt(999),
		100,
		10,
	)
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates product with computed landed cost", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name:           "Cotton Kurta",
			PurchasePrice:  decimal.NewFromInt(450),
			ShippingCost:   decimal.NewFromInt(50),
			PackagingCost:  decimal.NewFromInt(25),
			RetailPrice:    decimal.NewFromInt(999),
			StockLevel:     100,
			AlertThreshold: 10,
			Category:       "apparel",
		})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(525).Equal(resp.LandedCost))
		assert.Equal(t, "apparel", resp.Category)
		assert.NotEmpty(t, resp.SKU)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name without touching the store", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), CreateProductRequest{
			Name:        "",
			RetailPrice: decimal.NewFromInt(999),
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("recomputes landed cost when a cost component changes", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		product := newTestProduct(t)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("SaveWithLock", mock.Anything, product).Return(nil)

		newShipping := decimal.NewFromInt(80)
		resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{
			ShippingCost: &newShipping,
		})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(555).Equal(resp.LandedCost), "450 + 80 + 25")
		repo.AssertExpectations(t)
	})

	t.Run("links storefront product ids", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		product := newTestProduct(t)

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("SaveWithLock", mock.Anything, product).Return(nil)

		shopifyID := "inv-555"
		wooID := "77"
		resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{
			ShopifyProductID:     &shopifyID,
			WooCommerceProductID: &wooID,
		})

		require.NoError(t, err)
		assert.Equal(t, "inv-555", resp.ShopifyProductID)
		assert.Equal(t, "77", resp.WooCommerceProductID)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		missing := uuid.New()
		repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), missing, UpdateProductRequest{})
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	product := newTestProduct(t)

	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{*product}, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(41), nil)

	result, err := service.List(context.Background(), ProductListFilter{Page: 2, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Cotton Kurta", result.Items[0].Name)
}

func TestProductService_ListLowStock(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	low := newTestProduct(t)
	low.AdjustStock(-95)
	repo.On("FindLowStock", mock.Anything).Return([]catalog.Product{*low}, nil)

	responses, err := service.ListLowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.True(t, responses[0].IsLowStock)
	assert.Equal(t, 5, responses[0].StockLevel)
}
