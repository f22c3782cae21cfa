package ephem

import (
	"context"
	"fmt"
	"math"

	"astromap/internal/astro"
)

// AnalyticProvider computes low-precision positions from closed-form mean
// elements. It needs no network and is fully deterministic, which makes it the
// default for tests and offline deployments. Accuracy is a fraction of a
// degree for the Sun and Moon and a few degrees for the mean-element planets;
// line geometry tolerates that, interpretation-grade work should use the
// Horizons provider.
type AnalyticProvider struct{}

// NewAnalyticProvider returns the builtin analytic ephemeris.
func NewAnalyticProvider() *AnalyticProvider {
	return &AnalyticProvider{}
}

// Name implements Provider.
func (p *AnalyticProvider) Name() string { return "analytic" }

// Obliquity implements Provider.
func (p *AnalyticProvider) Obliquity(jd float64) float64 {
	return astro.MeanObliquity(jd)
}

// SiderealTime implements Provider.
func (p *AnalyticProvider) SiderealTime(jd float64) float64 {
	return astro.GMST(jd)
}

// meanElement holds a linear ecliptic mean-longitude model: lon(jd) = l0 + rate*d,
// d in days since J2000. Good enough for map-line placement.
type meanElement struct {
	l0   float64 // mean longitude at J2000, degrees
	rate float64 // deg/day
}

var meanElements = map[string]meanElement{
	"mercury": {252.2509, 4.0923344},
	"venus":   {181.9798, 1.6021303},
	"mars":    {355.4330, 0.5240330},
	"jupiter": {34.3515, 0.0830912},
	"saturn":  {50.0774, 0.0334597},
	"uranus":  {314.0550, 0.0117258},
	"neptune": {304.3487, 0.0059951},
	"pluto":   {238.9288, 0.0039757},
	"ceres":   {80.3932, 0.2140893},
	"chiron":  {50.0675, 0.0195577},
	"lilith":  {83.3532, 0.1114041}, // mean lunar apogee
}

// fixedStars are J2000 equatorial positions; proper motion is ignored.
var fixedStars = map[string][2]float64{
	"regulus":   {152.093, 11.967},
	"spica":     {201.298, -11.161},
	"sirius":    {101.287, -16.716},
	"aldebaran": {68.980, 16.509},
	"antares":   {247.352, -26.432},
	"algol":     {47.042, 40.956},
}

// fixedPoints are ecliptic positions treated as constant.
var fixedPoints = map[string][2]float64{
	"galactic_center": {266.851, -5.607},
	"vertex":          {0, 0}, // chart-dependent; placed at the equinox when charted standalone
}

// Position implements Provider.
func (p *AnalyticProvider) Position(ctx context.Context, bodyID string, jd float64, flags int) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	d := jd - astro.J2000
	eps := p.Obliquity(jd)

	var c Coordinates
	switch bodyID {
	case "sun":
		lon, dist := sunLongitude(jd)
		c = Coordinates{EclipticLon: lon, EclipticLat: 0, Distance: dist, Speed: 0.9856}
	case "moon":
		lon, lat := moonPosition(d)
		c = Coordinates{EclipticLon: lon, EclipticLat: lat, Distance: 0.00257, Speed: 13.1764}
	case "north_node":
		c = Coordinates{EclipticLon: astro.Wrap360(125.0445 - 0.0529538*d), Speed: -0.0529538}
	case "south_node":
		c = Coordinates{EclipticLon: astro.Wrap360(305.0445 - 0.0529538*d), Speed: -0.0529538}
	default:
		if el, ok := meanElements[bodyID]; ok {
			c = Coordinates{EclipticLon: astro.Wrap360(el.l0 + el.rate*d), Speed: el.rate}
			break
		}
		if eq, ok := fixedStars[bodyID]; ok {
			c = Coordinates{RightAscension: eq[0], Declination: eq[1]}
			break
		}
		if ecl, ok := fixedPoints[bodyID]; ok {
			c = Coordinates{EclipticLon: ecl[0], EclipticLat: ecl[1]}
			break
		}
		return Coordinates{}, fmt.Errorf("analytic ephemeris: %w: %s", ErrUnsupportedBody, bodyID)
	}
	return complete(c, eps), nil
}

// sunLongitude returns the apparent ecliptic longitude of the Sun (degrees)
// and the Earth-Sun distance (AU). Simplified Astronomical Almanac series.
func sunLongitude(jd float64) (lonDeg, distAU float64) {
	T := (jd - astro.J2000) / 36525.0

	l0 := astro.Wrap360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	m := astro.Wrap360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	mRad := astro.DegToRad(m)

	c := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(mRad) +
		(0.019993-0.000101*T)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	trueLon := l0 + c
	omega := 125.04 - 1934.136*T
	apparent := trueLon - 0.00569 - 0.00478*math.Sin(astro.DegToRad(omega))

	e := 0.016708634 - 0.000042037*T
	v := astro.DegToRad(m + c)
	dist := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(v))

	return astro.Wrap360(apparent), dist
}

// moonPosition returns low-precision ecliptic coordinates of the Moon.
func moonPosition(d float64) (lonDeg, latDeg float64) {
	l := astro.Wrap360(218.316 + 13.176396*d)  // mean longitude
	m := astro.Wrap360(134.963 + 13.064993*d)  // mean anomaly
	f := astro.Wrap360(93.272 + 13.229350*d)   // argument of latitude

	lon := l + 6.289*math.Sin(astro.DegToRad(m))
	lat := 5.128 * math.Sin(astro.DegToRad(f))
	return astro.Wrap360(lon), lat
}
