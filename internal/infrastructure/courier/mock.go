// Package courier contains simulated adapters for Pakistani courier
// companies. Each adapter honors the shipping.Provider contract and
// fabricates tracking ids in the format the real API returns, so the rest
// of the system can be exercised without live credentials.
package courier

import (
	"context"
	"fmt"
	"strings"

	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/hisaabos/backend/internal/domain/shipping"
	"go.uber.org/zap"
)

// mockProvider simulates one courier's booking API. Tracking ids follow
// <PREFIX>-<CITY>-<base+index> and consignment numbers CN-<PREFIX>-<base+index>,
// with the index restarting per manifest the way the real bulk endpoints
// number shipments within a request.
type mockProvider struct {
	code         shipping.CourierCode
	prefix       string
	sequenceBase int
	apiKey       string
	logger       *zap.Logger
}

func newMockProvider(code shipping.CourierCode, prefix string, sequenceBase int, apiKey string, logger *zap.Logger) *mockProvider {
	return &mockProvider{
		code:         code,
		prefix:       prefix,
		sequenceBase: sequenceBase,
		apiKey:       apiKey,
		logger:       logger,
	}
}

func (p *mockProvider) Code() shipping.CourierCode {
	return p.code
}

func (p *mockProvider) Book(ctx context.Context, req shipping.BookingRequest) (*shipping.BookingResult, error) {
	results, err := p.BulkBook(ctx, []shipping.BookingRequest{req})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func (p *mockProvider) BulkBook(ctx context.Context, reqs []shipping.BookingRequest) ([]shipping.BookingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, shared.NewDomainError("EMPTY_MANIFEST", "No orders to book")
	}
	if p.apiKey == "" {
		return nil, shared.NewDomainError("MISSING_API_KEY", fmt.Sprintf("No API key configured for %s", p.code.DisplayName()))
	}

	p.logger.Info("creating bulk booking",
		zap.String("courier", string(p.code)),
		zap.Int("orders", len(reqs)),
	)

	results := make([]shipping.BookingResult, 0, len(reqs))
	for i, req := range reqs {
		seq := p.sequenceBase + i
		results = append(results, shipping.BookingResult{
			OrderID:           req.OrderID,
			Courier:           p.code,
			TrackingID:        fmt.Sprintf("%s-%s-%d", p.prefix, strings.ToUpper(req.City), seq),
			ConsignmentNumber: fmt.Sprintf("CN-%s-%d", p.prefix, seq),
		})
	}
	return results, nil
}

// NewTrax returns the Trax adapter
func NewTrax(apiKey string, logger *zap.Logger) shipping.Provider {
	return newMockProvider(shipping.CourierTrax, "TRX", 100000, apiKey, logger)
}

// NewLeopards returns the Leopards adapter
func NewLeopards(apiKey string, logger *zap.Logger) shipping.Provider {
	return newMockProvider(shipping.CourierLeopards, "LEO", 200000, apiKey, logger)
}

// NewTCS returns the TCS adapter
func NewTCS(apiKey string, logger *zap.Logger) shipping.Provider {
	return newMockProvider(shipping.CourierTCS, "TCS", 300000, apiKey, logger)
}

// NewMNP returns the M&P adapter
func NewMNP(apiKey string, logger *zap.Logger) shipping.Provider {
	return newMockProvider(shipping.CourierMNP, "MP", 500000, apiKey, logger)
}
