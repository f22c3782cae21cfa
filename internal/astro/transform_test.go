package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsJ2000 = 23.4392911

func TestEclipticToEquatorial(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantRA   float64
		wantDec  float64
	}{
		{"vernal equinox", 0, 0, 0, 0},
		{"summer solstice point", 90, 0, 90, epsJ2000},
		{"autumnal equinox", 180, 0, 180, 0},
		{"winter solstice point", 270, 0, 270, -epsJ2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, dec := EclipticToEquatorial(tt.lon, tt.lat, epsJ2000)
			assert.InDelta(t, tt.wantRA, ra, 1e-9)
			assert.InDelta(t, tt.wantDec, dec, 1e-9)
		})
	}
}

func TestEclipticEquatorialRoundTrip(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 30 {
		for lat := -60.0; lat <= 60; lat += 30 {
			ra, dec := EclipticToEquatorial(lon, lat, epsJ2000)
			gotLon, gotLat := EquatorialToEcliptic(ra, dec, epsJ2000)
			assert.InDelta(t, lon, Wrap360(gotLon), 1e-8, "lon round trip at (%v,%v)", lon, lat)
			assert.InDelta(t, lat, gotLat, 1e-8, "lat round trip at (%v,%v)", lon, lat)
		}
	}
}

func TestHorizonHourAngle(t *testing.T) {
	// Equatorial body rises everywhere with H0 = 90.
	h0, ok := HorizonHourAngle(45, 0)
	assert.True(t, ok)
	assert.InDelta(t, 90, h0, 1e-9)

	// On the equator every body has H0 = 90 regardless of declination.
	h0, ok = HorizonHourAngle(0, 67)
	assert.True(t, ok)
	assert.InDelta(t, 90, h0, 1e-9)

	// Circumpolar: no crossing.
	_, ok = HorizonHourAngle(80, 45)
	assert.False(t, ok)

	// Symmetric in sign: H0(lat,dec) == H0(-lat,-dec).
	a, okA := HorizonHourAngle(50, 20)
	b, okB := HorizonHourAngle(-50, -20)
	assert.True(t, okA)
	assert.True(t, okB)
	assert.InDelta(t, a, b, 1e-12)
}

func TestAscendant(t *testing.T) {
	// With zero obliquity the ecliptic coincides with the equator and the
	// rising point is 90 degrees east of the meridian.
	for lst := 0.0; lst < 360; lst += 45 {
		asc := Ascendant(lst, 0, 0)
		assert.InDelta(t, Wrap360(lst+90), asc, 1e-9, "lst=%v", lst)
	}

	// At the equator with real obliquity: Aries culminating puts 90 (Cancer
	// cusp) on the horizon.
	asc := Ascendant(0, 0, epsJ2000)
	assert.InDelta(t, 90, asc, 1e-9)

	// Result stays in [0,360) over a latitude sweep.
	for lat := -80.0; lat <= 80; lat += 10 {
		for lst := 0.0; lst < 360; lst += 30 {
			asc := Ascendant(lst, lat, epsJ2000)
			assert.GreaterOrEqual(t, asc, 0.0)
			assert.Less(t, asc, 360.0)
		}
	}
}
