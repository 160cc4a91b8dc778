package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardFilter bounds the dashboard window. Nil bounds mean all time.
// The window applies to order creation dates and to expense/ad-spend dates.
type DashboardFilter struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TopProduct is one row of the best-sellers table
type TopProduct struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CitySales is one row of the city-wise sales table
type CitySales struct {
	City    string          `json:"city"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardResponse is the full dashboard, recomputed on every read.
// Revenue counts orders in Cash Received or Delivered; COGS uses the
// landed-cost snapshots taken at order creation.
type DashboardResponse struct {
	Revenue           decimal.Decimal            `json:"revenue"`
	COGS              decimal.Decimal            `json:"cogs"`
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	TotalAdSpend      decimal.Decimal            `json:"total_ad_spend"`
	NetProfit         decimal.Decimal            `json:"net_profit"`
	CashInHand        decimal.Decimal            `json:"cash_in_hand"`
	CashInTransit     decimal.Decimal            `json:"cash_in_transit"`
	TotalOrders       int                        `json:"total_orders"`
	ReturnedOrders    int                        `json:"returned_orders"`
	ReturnRatePercent decimal.Decimal            `json:"return_rate_percent"`
	TopProducts       []TopProduct               `json:"top_products"`
	CitySales         []CitySales                `json:"city_sales"`
	ExpenseBreakdown  map[string]decimal.Decimal `json:"expense_breakdown"`
}
