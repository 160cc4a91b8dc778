package shipping

import (
	"context"

	"github.com/hisaabos/backend/internal/domain/shared/valueobject"
)

// Provider books consignments with one courier company. Implementations
// live in the infrastructure layer; only PostEx additionally implements
// Factorer.
type Provider interface {
	// Code identifies the courier
	Code() CourierCode

	// Book creates one consignment and returns the assigned tracking id and
	// consignment number
	Book(ctx context.Context, req BookingRequest) (*BookingResult, error)

	// BulkBook creates consignments for a batch of orders in one call.
	// Results are returned in request order.
	BulkBook(ctx context.Context, reqs []BookingRequest) ([]BookingResult, error)
}

// Factorer quotes early COD settlement against a booked manifest
type Factorer interface {
	// QuoteFactoring prices paying out the gross COD total now instead of
	// on delivery remittance
	QuoteFactoring(ctx context.Context, gross valueobject.Money) (*FactoringQuote, error)
}

// Registry resolves a courier code to its provider
type Registry interface {
	// Provider returns the provider for the code, or shared.ErrNotFound
	// style failure when the courier is unknown
	Provider(code CourierCode) (Provider, error)

	// Codes lists the registered courier codes
	Codes() []CourierCode
}
