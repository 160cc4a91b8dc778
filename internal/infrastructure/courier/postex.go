package courier

import (
	"context"

	"github.com/hisaabos/backend/internal/domain/shared/valueobject"
	"github.com/hisaabos/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// defaultFactoringFeePercent is PostEx's standard early-settlement fee
var defaultFactoringFeePercent = decimal.NewFromInt(3)

// postExProvider is the PostEx adapter. On top of booking it quotes
// factoring: PostEx pays the COD amount upfront less a service fee instead
// of remitting after delivery.
type postExProvider struct {
	*mockProvider
	feePercent decimal.Decimal
}

// NewPostEx returns the PostEx adapter. A non-positive feePercent falls
// back to the standard 3%.
func NewPostEx(apiKey string, feePercent decimal.Decimal, logger *zap.Logger) shipping.Provider {
	if !feePercent.IsPositive() {
		feePercent = defaultFactoringFeePercent
	}
	return &postExProvider{
		mockProvider: newMockProvider(shipping.CourierPostEx, "PEX", 400000, apiKey, logger),
		feePercent:   feePercent,
	}
}

// QuoteFactoring implements shipping.Factorer.
// net = gross - gross * fee% / 100
func (p *postExProvider) QuoteFactoring(ctx context.Context, gross valueobject.Money) (*shipping.FactoringQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fee := gross.CalculatePercentage(p.feePercent)
	net, err := gross.Subtract(fee)
	if err != nil {
		return nil, err
	}

	return &shipping.FactoringQuote{
		GrossAmount: gross,
		FeePercent:  p.feePercent,
		NetAmount:   net,
	}, nil
}
