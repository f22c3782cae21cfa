// Package ephem supplies normalized celestial positions. Position computation
// itself is delegated to a Provider; this package ships a JPL Horizons HTTP
// implementation and a deterministic analytic one for tests and offline use.
package ephem

import (
	"context"
	"errors"

	"astromap/internal/astro"
)

// Coordinates is a position snapshot for one (body, instant) pair. It is
// epoch-dependent and must never be cached across requests.
type Coordinates struct {
	RightAscension float64 `json:"ra"`
	Declination    float64 `json:"dec"`
	EclipticLon    float64 `json:"lambda"`
	EclipticLat    float64 `json:"beta"`
	Distance       float64 `json:"distance,omitempty"` // AU, 0 when unknown
	Speed          float64 `json:"speed,omitempty"`    // deg/day along the ecliptic, 0 when unknown
}

// ErrUnsupportedBody reports that a provider has no data source for a body.
var ErrUnsupportedBody = errors.New("body not supported by provider")

// Provider computes positions for body ids at a Julian day (UT1). Obliquity
// and sidereal time are exposed through the same interface so callers never
// mix epoch conventions across sources.
type Provider interface {
	Name() string
	Position(ctx context.Context, bodyID string, jd float64, flags int) (Coordinates, error)
	Obliquity(jd float64) float64
	SiderealTime(jd float64) float64
}

// complete fills whichever coordinate pair the provider left empty using the
// obliquity transform. Providers that know only equatorial (fixed stars) or
// only ecliptic (analytic planets) both come out fully populated.
func complete(c Coordinates, obliquityDeg float64) Coordinates {
	eclSet := c.EclipticLon != 0 || c.EclipticLat != 0
	eqSet := c.RightAscension != 0 || c.Declination != 0
	switch {
	case eclSet && !eqSet:
		c.RightAscension, c.Declination = astro.EclipticToEquatorial(c.EclipticLon, c.EclipticLat, obliquityDeg)
	case eqSet && !eclSet:
		c.EclipticLon, c.EclipticLat = astro.EquatorialToEcliptic(c.RightAscension, c.Declination, obliquityDeg)
	}
	return c
}
