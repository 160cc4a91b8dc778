package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of a new order. ProductID links the line to
// the catalog; a line without a product id is a custom item and must carry
// its own name and unit price.
type OrderItemRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	ProductName string           `json:"product_name" binding:"max=200"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to create a new order
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerPhone   string             `json:"customer_phone" binding:"required,pk_phone"`
	CustomerAddress string             `json:"customer_address" binding:"max=500"`
	City            string             `json:"city" binding:"max=100"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalOverride   *decimal.Decimal   `json:"total_override"`
	ProjectID       *uuid.UUID         `json:"project_id"`
}

// UpdateOrderRequest represents a partial update to an order
type UpdateOrderRequest struct {
	CustomerName    *string    `json:"customer_name" binding:"omitempty,min=1,max=200"`
	CustomerPhone   *string    `json:"customer_phone" binding:"omitempty,pk_phone"`
	CustomerAddress *string    `json:"customer_address" binding:"omitempty,max=500"`
	City            *string    `json:"city" binding:"omitempty,max=100"`
	ProjectID       *uuid.UUID `json:"project_id"`
	ClearProject    bool       `json:"clear_project"`
}

// UpdateStatusRequest moves an order to a new lifecycle status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is a line item in API responses
type OrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	UnitLandedCost decimal.Decimal `json:"unit_landed_cost"`
	Amount         decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	InvoiceNumber     string              `json:"invoice_number"`
	CustomerName      string              `json:"customer_name"`
	CustomerPhone     string              `json:"customer_phone"`
	CustomerAddress   string              `json:"customer_address"`
	City              string              `json:"city"`
	Items             []OrderItemResponse `json:"items"`
	Total             decimal.Decimal     `json:"total"`
	Status            string              `json:"status"`
	Courier           string              `json:"courier,omitempty"`
	TrackingID        string              `json:"tracking_id,omitempty"`
	ConsignmentNumber string              `json:"consignment_number,omitempty"`
	Source            string              `json:"source"`
	ExternalOrderID   string              `json:"external_order_id,omitempty"`
	IsHighRisk        bool                `json:"is_high_risk"`
	RiskReason        string              `json:"risk_reason,omitempty"`
	ProjectID         *uuid.UUID          `json:"project_id,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Version           int                 `json:"version"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	City       string `form:"city"`
	Source     string `form:"source" binding:"omitempty,oneof=manual shopify woocommerce"`
	IsHighRisk *bool  `form:"is_high_risk"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BulkBookRequest books a batch of orders with one courier
type BulkBookRequest struct {
	Courier  string      `json:"courier" binding:"required"`
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// SkippedOrder names an order the bulk booking did not touch and why
type SkippedOrder struct {
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

// BulkBookResponse reports the outcome of a bulk booking
type BulkBookResponse struct {
	Courier string          `json:"courier"`
	Booked  []OrderResponse `json:"booked"`
	Skipped []SkippedOrder  `json:"skipped"`
}

// FactoringQuoteRequest asks for an early COD settlement quote over a batch
// of orders
type FactoringQuoteRequest struct {
	Courier  string      `json:"courier" binding:"required"`
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// FactoringQuoteResponse carries the courier's quote
type FactoringQuoteResponse struct {
	Courier string                  `json:"courier"`
	Orders  int                     `json:"orders"`
	Quote   shipping.FactoringQuote `json:"quote"`
}

// ConnectionTestResult reports whether one platform's credentials work
type ConnectionTestResult struct {
	Platform  string `json:"platform"`
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// StockPushResult reports one platform's stock push outcome
type StockPushResult struct {
	Platform string `json:"platform"`
	Pushed   int    `json:"pushed"`
	Failed   int    `json:"failed"`
	Error    string `json:"error,omitempty"`
}

// SyncResult reports one platform's import outcome. Err is a message rather
// than an error value so the result serializes cleanly.
type SyncResult struct {
	Platform string   `json:"platform"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Invoices []string `json:"invoices,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			UnitLandedCost: item.UnitLandedCost,
			Amount:         item.Amount,
		})
	}

	return OrderResponse{
		ID:                o.ID,
		InvoiceNumber:     o.InvoiceNumber,
		CustomerName:      o.CustomerName,
		CustomerPhone:     o.CustomerPhone,
		CustomerAddress:   o.CustomerAddress,
		City:              o.City,
		Items:             items,
		Total:             o.Total,
		Status:            o.Status.String(),
		Courier:           o.Courier,
		TrackingID:        o.TrackingID,
		ConsignmentNumber: o.ConsignmentNumber,
		Source:            string(o.Source),
		ExternalOrderID:   o.ExternalOrderID,
		IsHighRisk:        o.IsHighRisk,
		RiskReason:        o.RiskReason,
		ProjectID:         o.ProjectID,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Version:           o.Version,
	}
}
