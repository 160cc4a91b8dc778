package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/shared"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product with a generated SKU and a computed landed cost
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(
		req.Name,
		req.PurchasePrice,
		req.ShippingCost,
		req.PackagingCost,
		req.RetailPrice,
		req.StockLevel,
		req.AlertThreshold,
	)
	if err != nil {
		return nil, err
	}

	if req.Category != "" {
		product.SetCategory(req.Category)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update. The landed cost is recomputed whenever a
// cost component changes, so the stored value is never stale.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.PurchasePrice != nil || req.ShippingCost != nil || req.PackagingCost != nil {
		if err := product.UpdateCosts(req.PurchasePrice, req.ShippingCost, req.PackagingCost); err != nil {
			return nil, err
		}
	}

	if req.RetailPrice != nil {
		if err := product.UpdateRetailPrice(*req.RetailPrice); err != nil {
			return nil, err
		}
	}

	if req.StockLevel != nil {
		if err := product.SetStockLevel(*req.StockLevel); err != nil {
			return nil, err
		}
	}

	if req.AlertThreshold != nil {
		if err := product.SetAlertThreshold(*req.AlertThreshold); err != nil {
			return nil, err
		}
	}

	if req.Category != nil {
		product.SetCategory(*req.Category)
	}

	if req.ShopifyProductID != nil {
		product.LinkShopifyProduct(*req.ShopifyProductID)
	}

	if req.WooCommerceProductID != nil {
		product.LinkWooCommerceProduct(*req.WooCommerceProductID)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete permanently removes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, productID)
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListLowStock retrieves products at or below their alert threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}
