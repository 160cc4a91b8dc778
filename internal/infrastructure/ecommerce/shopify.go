// Package ecommerce contains adapters for storefront platforms. Each
// adapter normalizes platform orders into integration.ExternalOrder so the
// import flow stays platform-neutral.
package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hisaabos/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shopifyAPIVersion = "2024-01"

// maxResponseBytes caps how much of a storefront response is read. An
// unfulfilled-orders page stays well under this.
const maxResponseBytes = 4 << 20

// ShopifyClient pulls unfulfilled orders from a Shopify store via the
// Admin REST API.
type ShopifyClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewShopifyClient creates a Shopify adapter for the given store domain
// (e.g. mystore.myshopify.com). A full URL is accepted as-is, which is how
// tests point the client at a local server.
func NewShopifyClient(storeDomain, accessToken string, logger *zap.Logger) *ShopifyClient {
	baseURL := storeDomain
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	return &ShopifyClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// Platform implements integration.OrderSource
func (c *ShopifyClient) Platform() integration.PlatformCode {
	return integration.PlatformShopify
}

// shopifyOrder mirrors the Admin API order payload, limited to the fields
// the import needs
type shopifyOrder struct {
	ID          json.Number `json:"id"`
	OrderNumber json.Number `json:"order_number"`
	Customer    struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		Phone          string `json:"phone"`
		DefaultAddress struct {
			Address1 string `json:"address1"`
			City     string `json:"city"`
		} `json:"default_address"`
	} `json:"customer"`
	LineItems []struct {
		ProductID json.Number `json:"product_id"`
		SKU       string      `json:"sku"`
		Title     string      `json:"title"`
		Quantity  int         `json:"quantity"`
		Price     string      `json:"price"`
	} `json:"line_items"`
	TotalPrice string `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

// FetchPendingOrders implements integration.OrderSource by listing
// unfulfilled orders
func (c *ShopifyClient) FetchPendingOrders(ctx context.Context) ([]integration.ExternalOrder, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("shopify access token is not configured")
	}

	url := fmt.Sprintf("%s/admin/api/%s/orders.json?status=unfulfilled", c.baseURL, shopifyAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building shopify request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching shopify orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify returned status %d", resp.StatusCode)
	}

	var payload struct {
		Orders []shopifyOrder `json:"orders"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding shopify response: %w", err)
	}

	c.logger.Info("fetched shopify orders", zap.Int("count", len(payload.Orders)))

	orders := make([]integration.ExternalOrder, 0, len(payload.Orders))
	for _, o := range payload.Orders {
		ext, err := c.transform(o)
		if err != nil {
			c.logger.Warn("skipping malformed shopify order",
				zap.String("external_id", o.ID.String()), zap.Error(err))
			continue
		}
		orders = append(orders, ext)
	}
	return orders, nil
}

func (c *ShopifyClient) transform(o shopifyOrder) (integration.ExternalOrder, error) {
	total, err := decimal.NewFromString(o.TotalPrice)
	if err != nil {
		return integration.ExternalOrder{}, fmt.Errorf("invalid total %q: %w", o.TotalPrice, err)
	}

	items := make([]integration.ExternalOrderItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		price, err := decimal.NewFromString(li.Price)
		if err != nil {
			return integration.ExternalOrder{}, fmt.Errorf("invalid line price %q: %w", li.Price, err)
		}
		items = append(items, integration.ExternalOrderItem{
			Name:      li.Title,
			SKU:       li.SKU,
			Quantity:  li.Quantity,
			UnitPrice: price,
		})
	}

	placedAt, _ := time.Parse(time.RFC3339, o.CreatedAt)
	name := strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)

	return integration.ExternalOrder{
		Platform:     integration.PlatformShopify,
		ExternalID:   o.ID.String(),
		CustomerName: name,
		Phone:        o.Customer.Phone,
		Address:      o.Customer.DefaultAddress.Address1,
		City:         o.Customer.DefaultAddress.City,
		Items:        items,
		Total:        total,
		PlacedAt:     placedAt,
	}, nil
}

// PushStock implements integration.OrderSource by setting the available
// quantity on the store's inventory level
func (c *ShopifyClient) PushStock(ctx context.Context, externalProductID string, quantity int) error {
	url := fmt.Sprintf("%s/admin/api/%s/inventory_levels/set.json", c.baseURL, shopifyAPIVersion)
	body := fmt.Sprintf(`{"inventory_item_id":%q,"available":%d}`, externalProductID, quantity)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("building shopify request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushing shopify inventory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify returned status %d", resp.StatusCode)
	}
	return nil
}

// TestConnection verifies the store credentials against the shop endpoint
func (c *ShopifyClient) TestConnection(ctx context.Context) error {
	url := fmt.Sprintf("%s/admin/api/%s/shop.json", c.baseURL, shopifyAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify returned status %d", resp.StatusCode)
	}
	return nil
}
