package courier

import (
	"fmt"
	"sort"

	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/hisaabos/backend/internal/domain/shipping"
	"github.com/hisaabos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// registry is a fixed map of courier code to provider, built once at startup
type registry struct {
	providers map[shipping.CourierCode]shipping.Provider
}

// NewRegistry builds the courier registry from configuration. Every known
// courier gets an adapter; adapters with no API key reject bookings at
// call time rather than being absent, so "courier not configured" and
// "courier does not exist" stay distinguishable.
func NewRegistry(cfg config.CourierConfig, logger *zap.Logger) shipping.Registry {
	providers := []shipping.Provider{
		NewTrax(cfg.TraxAPIKey, logger),
		NewLeopards(cfg.LeopardsAPIKey, logger),
		NewTCS(cfg.TCSAPIKey, logger),
		NewPostEx(cfg.PostExAPIKey, cfg.PostExFactoringFeePercent, logger),
		NewMNP(cfg.MNPAPIKey, logger),
	}

	m := make(map[shipping.CourierCode]shipping.Provider, len(providers))
	for _, p := range providers {
		m[p.Code()] = p
	}
	return &registry{providers: m}
}

func (r *registry) Provider(code shipping.CourierCode) (shipping.Provider, error) {
	p, ok := r.providers[code]
	if !ok {
		return nil, shared.NewDomainError("UNKNOWN_COURIER", fmt.Sprintf("Unknown courier %q", code))
	}
	return p, nil
}

func (r *registry) Codes() []shipping.CourierCode {
	codes := make([]shipping.CourierCode, 0, len(r.providers))
	for code := range r.providers {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
