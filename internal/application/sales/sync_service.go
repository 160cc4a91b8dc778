package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/integration"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SyncService imports storefront orders into the order book. Each platform
// is synced independently; one platform failing does not stop the others.
type SyncService struct {
	orderRepo     sales.OrderRepository
	productRepo   catalog.ProductRepository
	personRepo    khata.PersonRepository
	blacklistRepo khata.BlacklistRepository
	txScope       TransactionScope
	sources       []integration.OrderSource
	logger        *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	personRepo khata.PersonRepository,
	blacklistRepo khata.BlacklistRepository,
	txScope TransactionScope,
	sources []integration.OrderSource,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		personRepo:    personRepo,
		blacklistRepo: blacklistRepo,
		txScope:       txScope,
		sources:       sources,
		logger:        logger,
	}
}

// SyncAll pulls pending orders from every configured platform. Orders whose
// external id was already imported are skipped, the rest are created through
// the normal order creation path.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, 0, len(s.sources))
	for _, source := range s.sources {
		results = append(results, s.syncSource(ctx, source))
	}
	return results
}

// TestConnections checks the credentials of every configured platform
// without importing anything
func (s *SyncService) TestConnections(ctx context.Context) []ConnectionTestResult {
	results := make([]ConnectionTestResult, 0, len(s.sources))
	for _, source := range s.sources {
		result := ConnectionTestResult{Platform: string(source.Platform()), Connected: true}
		if err := source.TestConnection(ctx); err != nil {
			result.Connected = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// PushStockLevels pushes the current stock level of every linked product to
// each storefront so manual sales do not oversell the stores. Products with
// no link on a platform are skipped; a failed push is counted and the last
// error message kept, the remaining products still go out.
func (s *SyncService) PushStockLevels(ctx context.Context) ([]StockPushResult, error) {
	products, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]StockPushResult, 0, len(s.sources))
	for _, source := range s.sources {
		result := StockPushResult{Platform: string(source.Platform())}
		for i := range products {
			externalID := storefrontProductID(&products[i], source.Platform())
			if externalID == "" {
				continue
			}
			if err := source.PushStock(ctx, externalID, products[i].StockLevel); err != nil {
				s.logger.Warn("Stock push failed",
					zap.String("platform", result.Platform),
					zap.String("sku", products[i].SKU),
					zap.Error(err),
				)
				result.Failed++
				result.Error = err.Error()
				continue
			}
			result.Pushed++
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *SyncService) allProducts(ctx context.Context) ([]catalog.Product, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 200

	var products []catalog.Product
	for {
		page, err := s.productRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		products = append(products, page...)
		if len(page) < filter.PageSize {
			return products, nil
		}
		filter.Page++
	}
}

func storefrontProductID(product *catalog.Product, platform integration.PlatformCode) string {
	switch platform {
	case integration.PlatformShopify:
		return product.ShopifyProductID
	case integration.PlatformWooCommerce:
		return product.WooCommerceProductID
	}
	return ""
}

func (s *SyncService) syncSource(ctx context.Context, source integration.OrderSource) SyncResult {
	result := SyncResult{Platform: string(source.Platform())}

	externalOrders, err := source.FetchPendingOrders(ctx)
	if err != nil {
		s.logger.Warn("Platform sync failed",
			zap.String("platform", result.Platform),
			zap.Error(err),
		)
		result.Error = err.Error()
		return result
	}

	for _, externalOrder := range externalOrders {
		exists, err := s.orderRepo.ExistsByExternalOrderID(ctx, externalOrder.ExternalID)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		if exists {
			result.Skipped++
			continue
		}

		order, err := s.importOrder(ctx, externalOrder)
		if err != nil {
			s.logger.Warn("Skipping external order that failed to import",
				zap.String("platform", result.Platform),
				zap.String("external_order_id", externalOrder.ExternalID),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}

		result.Imported++
		result.Invoices = append(result.Invoices, order.InvoiceNumber)
	}

	s.logger.Info("Platform sync finished",
		zap.String("platform", result.Platform),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result
}

// importOrder creates one order from its storefront form: lines matched to
// the catalog by SKU get landed-cost snapshots and a stock decrement,
// unmatched lines come in as custom items with zero cost.
func (s *SyncService) importOrder(ctx context.Context, externalOrder integration.ExternalOrder) (*sales.Order, error) {
	invoiceNumber, err := s.orderRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	source := sales.OrderSourceShopify
	if externalOrder.Platform == integration.PlatformWooCommerce {
		source = sales.OrderSourceWooCommerce
	}

	order, err := sales.NewOrder(
		invoiceNumber,
		externalOrder.CustomerName,
		externalOrder.Phone,
		externalOrder.Address,
		externalOrder.City,
		source,
	)
	if err != nil {
		return nil, err
	}
	order.LinkExternalOrder(externalOrder.ExternalID)

	touched := make([]*catalog.Product, 0, len(externalOrder.Items))
	for _, item := range externalOrder.Items {
		var product *catalog.Product
		if item.SKU != "" {
			product, err = s.productRepo.FindBySKU(ctx, item.SKU)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
		}

		if product != nil {
			if _, err := order.AddItem(product.ID, product.Name, item.Quantity, item.UnitPrice, product.LandedCost); err != nil {
				return nil, err
			}
			product.AdjustStock(-item.Quantity)
			touched = append(touched, product)
			continue
		}

		if _, err := order.AddItem(uuid.Nil, item.Name, item.Quantity, item.UnitPrice, decimal.Zero); err != nil {
			return nil, err
		}
	}

	// The storefront total is authoritative; it may include platform
	// shipping or discounts the line items do not carry.
	if externalOrder.Total.IsPositive() {
		if err := order.OverrideTotal(externalOrder.Total); err != nil {
			return nil, err
		}
	}

	assessment, err := assessCustomerRisk(ctx, s.blacklistRepo, s.personRepo, externalOrder.Phone)
	if err != nil {
		return nil, err
	}
	order.FlagRisk(assessment)

	// Stock decrements commit together with the imported order; a failed
	// save leaves the catalog as it was so the import can be retried.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, product := range touched {
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
