package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PlatformCode identifies an e-commerce storefront platform
type PlatformCode string

const (
	PlatformShopify     PlatformCode = "shopify"
	PlatformWooCommerce PlatformCode = "woocommerce"
)

// IsValid checks if the platform code is recognized
func (p PlatformCode) IsValid() bool {
	return p == PlatformShopify || p == PlatformWooCommerce
}

// ExternalOrderItem is one line of a storefront order
type ExternalOrderItem struct {
	Name      string
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

// ExternalOrder is a storefront order normalized to a platform-neutral
// shape. ExternalID is globally unique per platform and is the dedup key
// for repeated imports.
type ExternalOrder struct {
	Platform     PlatformCode
	ExternalID   string
	CustomerName string
	Phone        string
	Address      string
	City         string
	Items        []ExternalOrderItem
	Total        decimal.Decimal
	PlacedAt     time.Time
}

// OrderSource fetches orders awaiting fulfilment from one storefront.
// Implementations live in the infrastructure layer.
type OrderSource interface {
	// Platform identifies the storefront platform
	Platform() PlatformCode

	// FetchPendingOrders returns orders that have not been fulfilled yet
	FetchPendingOrders(ctx context.Context) ([]ExternalOrder, error)

	// TestConnection verifies the configured credentials without importing
	// anything
	TestConnection(ctx context.Context) error

	// PushStock sets the available quantity of a linked product on the
	// storefront so a sale recorded here does not oversell there
	PushStock(ctx context.Context, externalProductID string, quantity int) error
}
