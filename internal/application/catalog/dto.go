package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	PurchasePrice  decimal.Decimal  `json:"purchase_price"`
	ShippingCost   decimal.Decimal  `json:"shipping_cost"`
	PackagingCost  decimal.Decimal  `json:"packaging_cost"`
	RetailPrice    decimal.Decimal  `json:"retail_price"`
	StockLevel     int              `json:"stock_level" binding:"min=0"`
	AlertThreshold int              `json:"alert_threshold" binding:"min=0"`
	Category       string           `json:"category" binding:"max=100"`
}

// UpdateProductRequest represents a partial update to a product. Nil fields
// leave the stored value unchanged.
type UpdateProductRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,min=1,max=200"`
	PurchasePrice        *decimal.Decimal `json:"purchase_price"`
	ShippingCost         *decimal.Decimal `json:"shipping_cost"`
	PackagingCost        *decimal.Decimal `json:"packaging_cost"`
	RetailPrice          *decimal.Decimal `json:"retail_price"`
	StockLevel           *int             `json:"stock_level" binding:"omitempty,min=0"`
	AlertThreshold       *int             `json:"alert_threshold" binding:"omitempty,min=0"`
	Category             *string          `json:"category" binding:"omitempty,max=100"`
	ShopifyProductID     *string          `json:"shopify_product_id"`
	WooCommerceProductID *string          `json:"woocommerce_product_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                   uuid.UUID       `json:"id"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	PurchasePrice        decimal.Decimal `json:"purchase_price"`
	ShippingCost         decimal.Decimal `json:"shipping_cost"`
	PackagingCost        decimal.Decimal `json:"packaging_cost"`
	LandedCost           decimal.Decimal `json:"landed_cost"`
	RetailPrice          decimal.Decimal `json:"retail_price"`
	MarginPercent        decimal.Decimal `json:"margin_percent"`
	StockLevel           int             `json:"stock_level"`
	AlertThreshold       int             `json:"alert_threshold"`
	IsLowStock           bool            `json:"is_low_stock"`
	Category             string          `json:"category"`
	ShopifyProductID     string          `json:"shopify_product_id,omitempty"`
	WooCommerceProductID string          `json:"woocommerce_product_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	Version              int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		SKU:                  p.SKU,
		Name:                 p.Name,
		PurchasePrice:        p.PurchasePrice,
		ShippingCost:         p.ShippingCost,
		PackagingCost:        p.PackagingCost,
		LandedCost:           p.LandedCost,
		RetailPrice:          p.RetailPrice,
		MarginPercent:        p.MarginPercent(),
		StockLevel:           p.StockLevel,
		AlertThreshold:       p.AlertThreshold,
		IsLowStock:           p.IsLowStock(),
		Category:             p.Category,
		ShopifyProductID:     p.ShopifyProductID,
		WooCommerceProductID: p.WooCommerceProductID,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		Version:              p.Version,
	}
}
