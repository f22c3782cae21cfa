package ephem

import (
	"context"
	"fmt"

	"astromap/internal/bodies"
	"astromap/internal/logger"
)

// Resolver obtains normalized coordinates per body and isolates per-body
// failure: a provider error for one body never fails the whole request.
type Resolver struct {
	provider Provider
}

// NewResolver wraps a Provider.
func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p}
}

// Provider exposes the wrapped provider for callers that need obliquity or
// sidereal time alongside positions.
func (r *Resolver) Provider() Provider {
	return r.provider
}

// Resolve returns coordinates for a body, or nil when the provider cannot
// supply them. The nil return is the signal to exclude the body and continue.
func (r *Resolver) Resolve(ctx context.Context, body bodies.Body, jd float64, flags int) (*Coordinates, error) {
	coords, err := r.provider.Position(ctx, body.ID, jd, flags)
	if err != nil {
		logger.Warnf("[ephem] resolve failed body=%s provider=%s jd=%.5f err=%v", body.ID, r.provider.Name(), jd, err)
		return nil, fmt.Errorf("resolving %s: %w", body.ID, err)
	}
	return &coords, nil
}
