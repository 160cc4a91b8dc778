package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order.
// The values are the display strings used across the product, couriers
// included, so they are stored verbatim.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "Pending"
	OrderStatusConfirmed    OrderStatus = "Confirmed"
	OrderStatusInTransit    OrderStatus = "In Transit"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCashReceived OrderStatus = "Cash Received"
	OrderStatusReturned     OrderStatus = "Returned (RTO)"
)

// IsValid checks if the status is a recognized OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCashReceived, OrderStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The happy path is Pending -> Confirmed -> In Transit -> Delivered -> Cash
// Received; Returned (RTO) is reachable from any state where the parcel is
// with a courier.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusInTransit || target == OrderStatusReturned
	case OrderStatusInTransit:
		return target == OrderStatusDelivered || target == OrderStatusReturned
	case OrderStatusDelivered:
		return target == OrderStatusCashReceived || target == OrderStatusReturned
	case OrderStatusCashReceived, OrderStatusReturned:
		return false // Terminal states
	}
	return false
}

// IsRealized returns true for statuses that count as realized revenue
func (s OrderStatus) IsRealized() bool {
	return s == OrderStatusCashReceived || s == OrderStatusDelivered
}

// OrderSource identifies where an order was created
type OrderSource string

const (
	OrderSourceManual      OrderSource = "manual"
	OrderSourceShopify     OrderSource = "shopify"
	OrderSourceWooCommerce OrderSource = "woocommerce"
)

// IsValid checks if the source is recognized
func (s OrderSource) IsValid() bool {
	switch s {
	case OrderSourceManual, OrderSourceShopify, OrderSourceWooCommerce:
		return true
	}
	return false
}

// OrderItem is a line item in an order. Product name, unit price and unit
// landed cost are snapshotted at order time and do not track later catalog
// changes, so profit reporting stays historically accurate.
type OrderItem struct {
	ID             uuid.UUID `gorm:"primaryKey"`
	OrderID        uuid.UUID `gorm:"index"`
	ProductID      uuid.UUID
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal `gorm:"type:decimal(14,2)"`
	UnitLandedCost decimal.Decimal `gorm:"type:decimal(14,2)"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2)"` // Quantity * UnitPrice
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice, unitLandedCost decimal.Decimal) (*OrderItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unitLandedCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit landed cost cannot be negative")
	}

	now := time.Now()
	qty := decimal.NewFromInt(int64(quantity))
	return &OrderItem{
		ID:             uuid.New(),
		OrderID:        orderID,
		ProductID:      productID,
		ProductName:    productName,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		UnitLandedCost: unitLandedCost,
		Amount:         unitPrice.Mul(qty),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// LandedCost returns the total landed cost for the line (snapshot * quantity)
func (i *OrderItem) LandedCost() decimal.Decimal {
	return i.UnitLandedCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Summary returns the "Name xQty" form used on courier load sheets
func (i *OrderItem) Summary() string {
	return fmt.Sprintf("%s x%d", i.ProductName, i.Quantity)
}

// Order is the order aggregate root. Customer identity is denormalized on the
// order; the customer's khata record is matched by phone, not a foreign key.
type Order struct {
	shared.BaseAggregateRoot
	InvoiceNumber     string `gorm:"uniqueIndex"`
	CustomerName      string
	CustomerPhone     string
	CustomerAddress   string
	City              string
	Items             []OrderItem     `gorm:"foreignKey:OrderID"`
	Total             decimal.Decimal `gorm:"type:decimal(14,2)"`
	Status            OrderStatus
	Courier           string // courier code, empty until booked
	TrackingID        string
	ConsignmentNumber string
	Source            OrderSource
	ExternalOrderID   string `gorm:"index"` // dedup key for platform imports
	IsHighRisk        bool
	RiskReason        string
	ProjectID         *uuid.UUID `gorm:"index"`
}

var _ shared.AggregateRoot = (*Order)(nil)

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in Pending status
func NewOrder(invoiceNumber, customerName, customerPhone, customerAddress, city string, source OrderSource) (*Order, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if customerPhone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_PHONE", "Customer phone cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown order source")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerName:      customerName,
		CustomerPhone:     customerPhone,
		CustomerAddress:   customerAddress,
		City:              city,
		Items:             make([]OrderItem, 0),
		Total:             decimal.Zero,
		Status:            OrderStatusPending,
		Source:            source,
	}, nil
}

// AddItem adds a line item and recomputes the total.
// Only allowed while the order is Pending.
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int, unitPrice, unitLandedCost decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewOrderItem(o.ID, productID, productName, quantity, unitPrice, unitLandedCost)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// recalculateTotal recomputes the total as the sum of item amounts
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.Total = total
}

// OverrideTotal sets a caller-supplied total. The total is deliberately not
// forced to match the item sum (COD amounts are sometimes rounded by hand).
func (o *Order) OverrideTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	o.Total = total
	o.UpdatedAt = time.Now()
	return nil
}

// TransitionTo moves the order to the target status, enforcing the
// transition table
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// AssignCourier records the courier booking on the order and confirms it
func (o *Order) AssignCourier(courierCode, trackingID, consignmentNumber string) error {
	if courierCode == "" || trackingID == "" {
		return shared.NewDomainError("INVALID_BOOKING", "Courier code and tracking id are required")
	}
	if err := o.TransitionTo(OrderStatusConfirmed); err != nil {
		return err
	}
	o.Courier = courierCode
	o.TrackingID = trackingID
	o.ConsignmentNumber = consignmentNumber
	return nil
}

// LinkExternalOrder records the storefront order id this order was imported
// from. The id is the dedup key for repeated sync runs.
func (o *Order) LinkExternalOrder(externalOrderID string) {
	o.ExternalOrderID = externalOrderID
	o.UpdatedAt = time.Now()
}

// FlagRisk records the risk assessment for the order's customer
func (o *Order) FlagRisk(assessment RiskAssessment) {
	o.IsHighRisk = assessment.IsHighRisk
	o.RiskReason = assessment.Reason
	o.UpdatedAt = time.Now()
}

// TagProject tags the order for project P&L; nil clears the tag
func (o *Order) TagProject(projectID *uuid.UUID) {
	o.ProjectID = projectID
	o.UpdatedAt = time.Now()
}

// UpdateCustomer updates the denormalized customer fields; empty strings
// leave the field unchanged
func (o *Order) UpdateCustomer(name, phone, address, city string) {
	if name != "" {
		o.CustomerName = name
	}
	if phone != "" {
		o.CustomerPhone = phone
	}
	if address != "" {
		o.CustomerAddress = address
	}
	if city != "" {
		o.City = city
	}
	o.UpdatedAt = time.Now()
}

// ItemSummary returns the comma-joined line summaries for courier bookings
func (o *Order) ItemSummary() string {
	summary := ""
	for idx, item := range o.Items {
		if idx > 0 {
			summary += ", "
		}
		summary += item.Summary()
	}
	return summary
}

// LandedCost returns the total landed cost of the order's items from the
// creation-time snapshots
func (o *Order) LandedCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LandedCost())
	}
	return total
}

// IsReturned returns true if the order came back as RTO
func (o *Order) IsReturned() bool {
	return o.Status == OrderStatusReturned
}

// IsTerminal returns true if the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCashReceived || o.Status == OrderStatusReturned
}
