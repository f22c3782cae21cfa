package natal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigns(t *testing.T) {
	p := NewBuiltinProvider()
	tests := []struct {
		lon  float64
		sign string
	}{
		{0, "aries"},
		{29.999, "aries"},
		{30, "taurus"},
		{185, "libra"},
		{359.9, "pisces"},
		{-10, "pisces"}, // wraps
	}
	for _, tt := range tests {
		ctx, ok := p.Enrich("sun", Position{EclipticLon: tt.lon}, ChartContext{})
		require.True(t, ok)
		assert.Equal(t, tt.sign, ctx.Sign, "lon=%v", tt.lon)
	}
}

func TestWholeSignHouses(t *testing.T) {
	p := NewBuiltinProvider()
	chart := ChartContext{AscendantLon: 95} // cancer rising

	ctx, _ := p.Enrich("sun", Position{EclipticLon: 100}, chart) // cancer
	assert.Equal(t, 1, ctx.House)

	ctx, _ = p.Enrich("sun", Position{EclipticLon: 130}, chart) // leo
	assert.Equal(t, 2, ctx.House)

	ctx, _ = p.Enrich("sun", Position{EclipticLon: 80}, chart) // gemini, wraps to 12
	assert.Equal(t, 12, ctx.House)
}

func TestDignities(t *testing.T) {
	p := NewBuiltinProvider()
	tests := []struct {
		body    string
		lon     float64
		dignity string
	}{
		{"sun", 135, "domicile"},    // leo
		{"sun", 10, "exaltation"},   // aries
		{"sun", 315, "detriment"},   // aquarius, opposite leo
		{"sun", 190, "fall"},        // libra, opposite aries
		{"mars", 5, "domicile"},     // aries
		{"saturn", 290, "domicile"}, // capricorn
		{"pluto", 5, ""},            // no traditional dignity
	}
	for _, tt := range tests {
		ctx, _ := p.Enrich(tt.body, Position{EclipticLon: tt.lon}, ChartContext{})
		assert.Equal(t, tt.dignity, ctx.Dignity, "%s at %v", tt.body, tt.lon)
	}
}

func TestAscendantAspects(t *testing.T) {
	p := NewBuiltinProvider()
	chart := ChartContext{AscendantLon: 95}

	// Separations from the 95-degree ascendant: 2, 60, 90, 120, 177 (within
	// the opposition orb), 240 (wraps to 120), and 35 (no classical aspect).
	tests := []struct {
		lon     float64
		aspects []string
	}{
		{97, []string{"conjunction"}},
		{155, []string{"sextile"}},
		{185, []string{"square"}},
		{215, []string{"trine"}},
		{272, []string{"opposition"}},
		{335, []string{"trine"}},
		{130, nil},
	}
	for _, tt := range tests {
		ctx, _ := p.Enrich("sun", Position{EclipticLon: tt.lon}, chart)
		assert.Equal(t, tt.aspects, ctx.Aspects, "lon=%v", tt.lon)
	}
}

func TestRetrograde(t *testing.T) {
	p := NewBuiltinProvider()

	ctx, _ := p.Enrich("mercury", Position{EclipticLon: 50, SpeedDegPerDay: -1.2}, ChartContext{})
	assert.True(t, ctx.Retrograde)

	ctx, _ = p.Enrich("mercury", Position{EclipticLon: 50, SpeedDegPerDay: 1.5}, ChartContext{})
	assert.False(t, ctx.Retrograde)
}
