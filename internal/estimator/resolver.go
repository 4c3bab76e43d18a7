package estimator

import (
	"context"
	"log"
	"time"

	"github.com/pavans5097/EVS-pro/internal/domain"
)

// HarvestGateway is the external estimator contract. It may fail or time
// out; the Resolver absorbs that.
type HarvestGateway interface {
	EstimateHarvestDate(ctx context.Context, cropName, sowingDate, location string) (string, error)
}

// Resolver produces a harvest date from the gateway, substituting the local
// maturity-table estimate whenever the gateway fails or returns an
// unusable date. Given a crop name and a valid sowing date, Resolve never
// returns an empty result.
type Resolver struct {
	gateway HarvestGateway
}

// NewResolver creates a Resolver over the given gateway.
func NewResolver(gateway HarvestGateway) *Resolver {
	return &Resolver{gateway: gateway}
}

// Resolve returns the expected harvest date in YYYY-MM-DD form.
func (r *Resolver) Resolve(ctx context.Context, cropName, sowingDate, location string) string {
	if cropName == "" || sowingDate == "" {
		return ""
	}

	fallback := FallbackHarvestDateString(cropName, sowingDate)

	if r.gateway == nil {
		return fallback
	}

	estimate, err := r.gateway.EstimateHarvestDate(ctx, cropName, sowingDate, location)
	if err != nil {
		log.Printf("estimator: gateway estimate failed, using local fallback: %v", err)
		return fallback
	}
	if _, err := time.Parse(domain.DateLayout, estimate); err != nil {
		log.Printf("estimator: gateway returned unusable date %q, using local fallback", estimate)
		return fallback
	}
	return estimate
}
