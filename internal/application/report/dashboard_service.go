package report

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/finance"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// topProductLimit caps the best-sellers table
const topProductLimit = 5

// dashboardPageSize is the page size used when walking the order book
const dashboardPageSize = 500

// DashboardService computes the dashboard aggregates. Everything is
// recomputed from the order book on every read; nothing is cached or
// stored.
type DashboardService struct {
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	expenseRepo finance.ExpenseRepository
	adSpendRepo finance.AdSpendRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	expenseRepo finance.ExpenseRepository,
	adSpendRepo finance.AdSpendRepository,
) *DashboardService {
	return &DashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		expenseRepo: expenseRepo,
		adSpendRepo: adSpendRepo,
	}
}

// Dashboard computes the full dashboard over an optional date window
func (s *DashboardService) Dashboard(ctx context.Context, filter DashboardFilter) (*DashboardResponse, error) {
	orders, err := s.collectOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &DashboardResponse{
		Revenue:           decimal.Zero,
		COGS:              decimal.Zero,
		CashInHand:        decimal.Zero,
		CashInTransit:     decimal.Zero,
		ReturnRatePercent: decimal.Zero,
		TopProducts:       make([]TopProduct, 0),
		CitySales:         make([]CitySales, 0),
	}

	// landedCosts caches catalog lookups for lines missing a snapshot
	landedCosts := make(map[uuid.UUID]decimal.Decimal)

	productQty := make(map[string]int)
	productRevenue := make(map[string]decimal.Decimal)
	cityOrders := make(map[string]int)
	cityRevenue := make(map[string]decimal.Decimal)

	for i := range orders {
		order := &orders[i]
		response.TotalOrders++

		switch order.Status {
		case sales.OrderStatusCashReceived:
			response.CashInHand = response.CashInHand.Add(order.Total)
		case sales.OrderStatusDelivered, sales.OrderStatusInTransit:
			response.CashInTransit = response.CashInTransit.Add(order.Total)
		case sales.OrderStatusReturned:
			response.ReturnedOrders++
		}

		if !order.Status.IsRealized() {
			continue
		}

		response.Revenue = response.Revenue.Add(order.Total)

		city := order.City
		if city == "" {
			city = "Unknown"
		}
		cityOrders[city]++
		cityRevenue[city] = cityRevenue[city].Add(order.Total)

		for _, item := range order.Items {
			cogs, err := s.itemLandedCost(ctx, item, landedCosts)
			if err != nil {
				return nil, err
			}
			response.COGS = response.COGS.Add(cogs)

			productQty[item.ProductName] += item.Quantity
			productRevenue[item.ProductName] = productRevenue[item.ProductName].Add(item.Amount)
		}
	}

	if response.TotalOrders > 0 {
		response.ReturnRatePercent = decimal.NewFromInt(int64(response.ReturnedOrders)).
			Div(decimal.NewFromInt(int64(response.TotalOrders))).
			Mul(decimal.NewFromInt(100))
	}

	dateRange := toDateRange(filter)
	totalExpenses, err := s.expenseRepo.SumByRange(ctx, dateRange)
	if err != nil {
		return nil, err
	}
	response.TotalExpenses = totalExpenses

	totalAdSpend, err := s.adSpendRepo.SumByRange(ctx, dateRange)
	if err != nil {
		return nil, err
	}
	response.TotalAdSpend = totalAdSpend

	breakdown, err := s.expenseRepo.SumByCategory(ctx, dateRange)
	if err != nil {
		return nil, err
	}
	response.ExpenseBreakdown = make(map[string]decimal.Decimal, len(breakdown))
	for category, amount := range breakdown {
		response.ExpenseBreakdown[string(category)] = amount
	}

	response.NetProfit = response.Revenue.
		Sub(response.COGS).
		Sub(response.TotalExpenses).
		Sub(response.TotalAdSpend)

	response.TopProducts = rankTopProducts(productQty, productRevenue)
	response.CitySales = rankCitySales(cityOrders, cityRevenue)

	return response, nil
}

// collectOrders walks the whole order book page by page, keeping only
// orders created inside the window
func (s *DashboardService) collectOrders(ctx context.Context, filter DashboardFilter) ([]sales.Order, error) {
	collected := make([]sales.Order, 0)
	domainFilter := shared.DefaultFilter()
	domainFilter.PageSize = dashboardPageSize
	domainFilter.OrderBy = "created_at"
	domainFilter.OrderDir = "asc"

	for page := 1; ; page++ {
		domainFilter.Page = page
		orders, err := s.orderRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}

		for i := range orders {
			if filter.From != nil && orders[i].CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && orders[i].CreatedAt.After(*filter.To) {
				continue
			}
			collected = append(collected, orders[i])
		}

		if len(orders) < dashboardPageSize {
			return collected, nil
		}
	}
}

// itemLandedCost resolves a line's cost contribution: the creation-time
// snapshot when present, the current catalog landed cost as fallback, zero
// for lines whose product is unknown.
func (s *DashboardService) itemLandedCost(ctx context.Context, item sales.OrderItem, cache map[uuid.UUID]decimal.Decimal) (decimal.Decimal, error) {
	qty := decimal.NewFromInt(int64(item.Quantity))
	if !item.UnitLandedCost.IsZero() {
		return item.UnitLandedCost.Mul(qty), nil
	}
	if item.ProductID == uuid.Nil {
		return decimal.Zero, nil
	}

	if cost, ok := cache[item.ProductID]; ok {
		return cost.Mul(qty), nil
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			cache[item.ProductID] = decimal.Zero
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	cache[item.ProductID] = product.LandedCost
	return product.LandedCost.Mul(qty), nil
}

func rankTopProducts(qty map[string]int, revenue map[string]decimal.Decimal) []TopProduct {
	products := make([]TopProduct, 0, len(qty))
	for name, count := range qty {
		products = append(products, TopProduct{
			ProductName: name,
			Quantity:    count,
			Revenue:     revenue[name],
		})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity != products[j].Quantity {
			return products[i].Quantity > products[j].Quantity
		}
		return products[i].ProductName < products[j].ProductName
	})
	if len(products) > topProductLimit {
		products = products[:topProductLimit]
	}
	return products
}

func rankCitySales(orders map[string]int, revenue map[string]decimal.Decimal) []CitySales {
	cities := make([]CitySales, 0, len(orders))
	for city, count := range orders {
		cities = append(cities, CitySales{
			City:    city,
			Orders:  count,
			Revenue: revenue[city],
		})
	}
	sort.Slice(cities, func(i, j int) bool {
		if !cities[i].Revenue.Equal(cities[j].Revenue) {
			return cities[i].Revenue.GreaterThan(cities[j].Revenue)
		}
		return cities[i].City < cities[j].City
	})
	return cities
}

func toDateRange(filter DashboardFilter) finance.DateRange {
	dateRange := finance.DateRange{}
	if filter.From != nil {
		dateRange.From = *filter.From
	}
	if filter.To != nil {
		dateRange.To = *filter.To
	}
	return dateRange
}
