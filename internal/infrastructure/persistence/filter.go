package persistence

import (
	"fmt"
	"strings"

	"github.com/hisaabos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// validateSortOrder normalizes the sort order to ASC or DESC, defaulting
// to DESC
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist; column names
// are never interpolated from raw client input
func validateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowed[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyFilter applies pagination and whitelisted ordering to a query
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	field := validateSortField(filter.OrderBy, sortFields, "created_at")
	dir := validateSortOrder(filter.OrderDir)
	return query.
		Order(fmt.Sprintf("%s %s", field, dir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

var productSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"sku":          true,
	"name":         true,
	"category":     true,
	"landed_cost":  true,
	"retail_price": true,
	"stock_level":  true,
}

var orderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"customer_name":  true,
	"city":           true,
	"status":         true,
	"total":          true,
	"courier":        true,
}

var personSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone":        true,
	"type":         true,
	"balance":      true,
	"return_count": true,
}

var projectSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"start_date": true,
}

var expenseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"expense_date": true,
	"category":     true,
	"amount":       true,
}

var adSpendSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"spend_date": true,
	"platform":   true,
	"amount":     true,
}
