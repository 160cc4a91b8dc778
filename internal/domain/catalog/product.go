package catalog

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// skuAlphabet excludes easily confused characters
const skuAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateSKU generates a random stock keeping unit code
func GenerateSKU() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a time-derived code; SKU uniqueness is enforced at the store
		return fmt.Sprintf("SKU-%09d", time.Now().UnixNano()%1e9)
	}
	for i, b := range buf {
		buf[i] = skuAlphabet[int(b)%len(skuAlphabet)]
	}
	return "SKU-" + string(buf)
}

// Product represents a catalog product with landed cost tracking.
// LandedCost is derived and recomputed on every cost mutation, never stored stale.
type Product struct {
	shared.BaseAggregateRoot
	SKU            string          `gorm:"uniqueIndex"`
	Name           string
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(14,2)"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(14,2)"`
	PackagingCost  decimal.Decimal `gorm:"type:decimal(14,2)"`
	LandedCost     decimal.Decimal `gorm:"type:decimal(14,2)"`
	RetailPrice    decimal.Decimal `gorm:"type:decimal(14,2)"`
	StockLevel     int
	AlertThreshold int
	Category       string
	// External platform product ids, set when the product is linked to a store
	ShopifyProductID     string
	WooCommerceProductID string
}

var _ shared.AggregateRoot = (*Product)(nil)

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product, assigning an id and a generated SKU
func NewProduct(name string, purchasePrice, shippingCost, packagingCost, retailPrice decimal.Decimal, stockLevel, alertThreshold int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if purchasePrice.IsNegative() || shippingCost.IsNegative() || packagingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost components cannot be negative")
	}
	if retailPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}
	if stockLevel < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock level cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               GenerateSKU(),
		Name:              name,
		PurchasePrice:     purchasePrice,
		ShippingCost:      shippingCost,
		PackagingCost:     packagingCost,
		RetailPrice:       retailPrice,
		StockLevel:        stockLevel,
		AlertThreshold:    alertThreshold,
	}
	p.recalculateLandedCost()

	return p, nil
}

// recalculateLandedCost keeps the landed cost invariant:
// landed_cost == purchase_price + shipping_cost + packaging_cost
func (p *Product) recalculateLandedCost() {
	p.LandedCost = p.PurchasePrice.Add(p.ShippingCost).Add(p.PackagingCost)
}

// UpdateCosts updates cost components and recomputes the landed cost.
// Nil arguments leave the corresponding component unchanged.
func (p *Product) UpdateCosts(purchasePrice, shippingCost, packagingCost *decimal.Decimal) error {
	if purchasePrice != nil {
		if purchasePrice.IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Purchase price cannot be negative")
		}
		p.PurchasePrice = *purchasePrice
	}
	if shippingCost != nil {
		if shippingCost.IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Shipping cost cannot be negative")
		}
		p.ShippingCost = *shippingCost
	}
	if packagingCost != nil {
		if packagingCost.IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Packaging cost cannot be negative")
		}
		p.PackagingCost = *packagingCost
	}
	p.recalculateLandedCost()
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateRetailPrice updates the retail price
func (p *Product) UpdateRetailPrice(retailPrice decimal.Decimal) error {
	if retailPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}
	p.RetailPrice = retailPrice
	p.UpdatedAt = time.Now()
	return nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(category string) {
	p.Category = category
	p.UpdatedAt = time.Now()
}

// SetAlertThreshold sets the low-stock alert threshold
func (p *Product) SetAlertThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Alert threshold cannot be negative")
	}
	p.AlertThreshold = threshold
	p.UpdatedAt = time.Now()
	return nil
}

// SetStockLevel sets the absolute stock level
func (p *Product) SetStockLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock level cannot be negative")
	}
	p.StockLevel = level
	p.UpdatedAt = time.Now()
	return nil
}

// AdjustStock applies a relative stock change (negative = decrement).
// The level is clamped at zero so an oversold order never drives it negative.
func (p *Product) AdjustStock(delta int) {
	p.StockLevel += delta
	if p.StockLevel < 0 {
		p.StockLevel = 0
	}
	p.UpdatedAt = time.Now()
}

// LinkShopifyProduct records the Shopify product id for this product
func (p *Product) LinkShopifyProduct(externalID string) {
	p.ShopifyProductID = externalID
	p.UpdatedAt = time.Now()
}

// LinkWooCommerceProduct records the WooCommerce product id for this product
func (p *Product) LinkWooCommerceProduct(externalID string) {
	p.WooCommerceProductID = externalID
	p.UpdatedAt = time.Now()
}

// MarginPercent returns (retail - landed) / retail * 100, or zero when
// the retail price is not positive
func (p *Product) MarginPercent() decimal.Decimal {
	if !p.RetailPrice.IsPositive() {
		return decimal.Zero
	}
	return p.RetailPrice.Sub(p.LandedCost).
		Div(p.RetailPrice).
		Mul(decimal.NewFromInt(100))
}

// IsLowStock returns true when the stock level is at or below the alert threshold
func (p *Product) IsLowStock() bool {
	return p.StockLevel <= p.AlertThreshold
}
