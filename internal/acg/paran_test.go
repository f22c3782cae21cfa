package acg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLST(t *testing.T) {
	b := BodyAngles{RA: 100, Dec: 0}

	lst, ok := eventLST(b, EventCulm, 45)
	require.True(t, ok)
	assert.InDelta(t, 100.0, lst, 1e-9)

	lst, ok = eventLST(b, EventAnti, 45)
	require.True(t, ok)
	assert.InDelta(t, 280.0, lst, 1e-9)

	// On the celestial equator H0 is exactly 90 at every latitude.
	lst, ok = eventLST(b, EventRise, 45)
	require.True(t, ok)
	assert.InDelta(t, 10.0, lst, 1e-9)

	lst, ok = eventLST(b, EventSet, 45)
	require.True(t, ok)
	assert.InDelta(t, 190.0, lst, 1e-9)

	// Circumpolar: dec=60 never rises above lat 30.
	_, ok = eventLST(BodyAngles{RA: 0, Dec: 60}, EventRise, 50)
	assert.False(t, ok)
}

func TestParanLatitudesRiseCulm(t *testing.T) {
	// Body a rises when lst = raA - H0(lat, decA); body b culminates at
	// lst = raB. With decA != 0 the mismatch varies with latitude and crosses
	// zero where H0(lat, decA) = raA - raB.
	a := BodyAngles{RA: 130, Dec: 20}
	b := BodyAngles{RA: 40, Dec: -5}
	p := Params{}

	lats := ParanLatitudes(a, b, EventRise, EventCulm, p)
	require.NotEmpty(t, lats)
	assert.LessOrEqual(t, len(lats), 2)

	for _, lat := range lats {
		assert.GreaterOrEqual(t, lat, -90.0)
		assert.LessOrEqual(t, lat, 90.0)
		// The solved latitude must actually satisfy the simultaneity relation.
		err, ok := paranError(a, b, EventRise, EventCulm, lat)
		require.True(t, ok)
		assert.InDelta(t, 0.0, err, 0.01)
	}
}

func TestParanLatitudesCulmAntiConstant(t *testing.T) {
	// Culmination and anticulmination are latitude-independent, so the
	// mismatch is constant: either no solution, or none reported rather than
	// a continuum.
	a := BodyAngles{RA: 130, Dec: 20}
	b := BodyAngles{RA: 40, Dec: -5}

	lats := ParanLatitudes(a, b, EventCulm, EventAnti, Params{})
	assert.Empty(t, lats, "a constant nonzero mismatch has no root")
}

func TestParanLatitudesNoSolution(t *testing.T) {
	// Two equatorial bodies rise at fixed sidereal times everywhere; with
	// distinct right ascensions the mismatch never vanishes.
	a := BodyAngles{RA: 10, Dec: 0}
	b := BodyAngles{RA: 200, Dec: 0}
	assert.Empty(t, ParanLatitudes(a, b, EventRise, EventRise, Params{}))
}

func TestParanBandExtent(t *testing.T) {
	g := ParanBand(42, Params{ParanBandDeg: 2})
	require.NotNil(t, g)
	require.True(t, g.IsPolygon())
	require.Len(t, g.Polygon, 1)
	ring := g.Polygon[0]
	require.Len(t, ring, 5)

	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for _, pt := range ring {
		minLon = math.Min(minLon, pt[0])
		maxLon = math.Max(maxLon, pt[0])
		assert.InDelta(t, 42.0, pt[1], 1.0+1e-9)
	}
	assert.Equal(t, -180.0, minLon, "band must span the full longitude range")
	assert.Equal(t, 180.0, maxLon)
	assert.Equal(t, ring[0], ring[len(ring)-1], "ring must be closed")
}

func TestParanBandClampsAtPoles(t *testing.T) {
	g := ParanBand(89.5, Params{ParanBandDeg: 2})
	require.True(t, g.IsPolygon())
	for _, pt := range g.Polygon[0] {
		assert.LessOrEqual(t, pt[1], 90.0)
	}
}

func TestParansFixedPairs(t *testing.T) {
	a := BodyPosition{RA: 130, Dec: 20}
	b := BodyPosition{RA: 40, Dec: -5}

	parans := Parans(a, b, Params{})
	require.NotEmpty(t, parans)

	allowed := map[[2]Event]bool{}
	for _, pair := range ParanEventPairs {
		allowed[pair] = true
	}
	for _, pr := range parans {
		assert.True(t, allowed[pr.Events], "unexpected event pair %v", pr.Events)
		assert.Equal(t, LineParan, pr.Line.Type)
		assert.Equal(t, MethodParanSolve, pr.Line.Method)
		assert.InDelta(t, pr.Latitude, pr.Line.Angle, 1e-9)
		require.NotNil(t, pr.Line.Geometry)
		assert.True(t, pr.Line.Geometry.IsPolygon())
	}
}
