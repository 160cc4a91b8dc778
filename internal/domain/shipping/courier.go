package shipping

import (
	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CourierCode identifies a courier company
type CourierCode string

const (
	CourierTrax     CourierCode = "trax"
	CourierLeopards CourierCode = "leopards"
	CourierTCS      CourierCode = "tcs"
	CourierPostEx   CourierCode = "postex"
	CourierMNP      CourierCode = "mnp"
)

// IsValid checks if the courier code is recognized
func (c CourierCode) IsValid() bool {
	switch c {
	case CourierTrax, CourierLeopards, CourierTCS, CourierPostEx, CourierMNP:
		return true
	}
	return false
}

// DisplayName returns the courier's trading name
func (c CourierCode) DisplayName() string {
	switch c {
	case CourierTrax:
		return "Trax"
	case CourierLeopards:
		return "Leopards"
	case CourierTCS:
		return "TCS"
	case CourierPostEx:
		return "PostEx"
	case CourierMNP:
		return "M&P"
	}
	return string(c)
}

// BookingRequest carries everything a courier needs to generate a COD
// consignment for one order.
type BookingRequest struct {
	OrderID       uuid.UUID
	InvoiceNumber string
	CustomerName  string
	CustomerPhone string
	Address       string
	City          string
	CODAmount     decimal.Decimal
	ItemSummary   string
	Pieces        int
}

// BookingResult is the courier's acknowledgement of a single booking
type BookingResult struct {
	OrderID           uuid.UUID
	Courier           CourierCode
	TrackingID        string
	ConsignmentNumber string
}

// FactoringQuote prices early COD settlement. NetAmount is the gross COD
// amount less the factoring fee. Amounts are PKR money so the API response
// carries the currency alongside the figure.
type FactoringQuote struct {
	GrossAmount valueobject.Money `json:"gross_amount"`
	FeePercent  decimal.Decimal   `json:"fee_percent"`
	NetAmount   valueobject.Money `json:"net_amount"`
}
