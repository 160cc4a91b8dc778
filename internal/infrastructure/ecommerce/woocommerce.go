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

// WooCommerceClient pulls processing orders from a WooCommerce site via
// the REST API v3. Authentication is basic auth with the consumer
// key/secret pair.
type WooCommerceClient struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewWooCommerceClient creates a WooCommerce adapter for the given site URL
func NewWooCommerceClient(siteURL, consumerKey, consumerSecret string, logger *zap.Logger) *WooCommerceClient {
	return &WooCommerceClient{
		baseURL:        strings.TrimRight(siteURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         logger,
	}
}

// Platform implements integration.OrderSource
func (c *WooCommerceClient) Platform() integration.PlatformCode {
	return integration.PlatformWooCommerce
}

// wooOrder mirrors the REST API order payload, limited to the fields the
// import needs
type wooOrder struct {
	ID      int64  `json:"id"`
	Number  string `json:"number"`
	Status  string `json:"status"`
	Billing struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Address1  string `json:"address_1"`
		City      string `json:"city"`
	} `json:"billing"`
	LineItems []struct {
		ProductID int64           `json:"product_id"`
		SKU       string          `json:"sku"`
		Name      string          `json:"name"`
		Quantity  int             `json:"quantity"`
		Price     decimal.Decimal `json:"price"`
	} `json:"line_items"`
	Total       string `json:"total"`
	DateCreated string `json:"date_created"`
}

// FetchPendingOrders implements integration.OrderSource by listing orders
// in processing status
func (c *WooCommerceClient) FetchPendingOrders(ctx context.Context) ([]integration.ExternalOrder, error) {
	if c.consumerKey == "" || c.consumerSecret == "" {
		return nil, fmt.Errorf("woocommerce credentials are not configured")
	}

	url := c.baseURL + "/wp-json/wc/v3/orders?status=processing"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building woocommerce request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching woocommerce orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("woocommerce returned status %d", resp.StatusCode)
	}

	var raw []wooOrder
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding woocommerce response: %w", err)
	}

	c.logger.Info("fetched woocommerce orders", zap.Int("count", len(raw)))

	orders := make([]integration.ExternalOrder, 0, len(raw))
	for _, o := range raw {
		ext, err := c.transform(o)
		if err != nil {
			c.logger.Warn("skipping malformed woocommerce order",
				zap.Int64("id", o.ID), zap.Error(err))
			continue
		}
		orders = append(orders, ext)
	}
	return orders, nil
}

func (c *WooCommerceClient) transform(o wooOrder) (integration.ExternalOrder, error) {
	total, err := decimal.NewFromString(o.Total)
	if err != nil {
		return integration.ExternalOrder{}, fmt.Errorf("invalid total %q: %w", o.Total, err)
	}

	items := make([]integration.ExternalOrderItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, integration.ExternalOrderItem{
			Name:      li.Name,
			SKU:       li.SKU,
			Quantity:  li.Quantity,
			UnitPrice: li.Price,
		})
	}

	// WooCommerce sends "2024-01-15T10:30:00" without a zone offset
	placedAt, _ := time.Parse("2006-01-02T15:04:05", o.DateCreated)
	if placedAt.IsZero() {
		placedAt, _ = time.Parse(time.RFC3339, o.DateCreated)
	}

	return integration.ExternalOrder{
		Platform:     integration.PlatformWooCommerce,
		ExternalID:   fmt.Sprintf("woo-%d", o.ID),
		CustomerName: strings.TrimSpace(o.Billing.FirstName + " " + o.Billing.LastName),
		Phone:        o.Billing.Phone,
		Address:      o.Billing.Address1,
		City:         o.Billing.City,
		Items:        items,
		Total:        total,
		PlacedAt:     placedAt,
	}, nil
}

// TestConnection verifies the site credentials with a minimal orders query
func (c *WooCommerceClient) TestConnection(ctx context.Context) error {
	url := c.baseURL + "/wp-json/wc/v3/orders?per_page=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("woocommerce returned status %d", resp.StatusCode)
	}
	return nil
}

// PushStock implements integration.OrderSource by setting the product's
// stock quantity
func (c *WooCommerceClient) PushStock(ctx context.Context, externalProductID string, quantity int) error {
	url := fmt.Sprintf("%s/wp-json/wc/v3/products/%s", c.baseURL, externalProductID)
	body := fmt.Sprintf(`{"stock_quantity":%d}`, quantity)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("building woocommerce request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushing woocommerce stock: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("woocommerce returned status %d", resp.StatusCode)
	}
	return nil
}
