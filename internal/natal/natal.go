// Package natal optionally enriches feature metadata with natal chart
// context: zodiac sign, whole-sign house, essential dignity, and retrograde
// motion. Enrichment is best effort and never blocks feature emission.
package natal

import (
	"math"
	"strings"

	"astromap/internal/astro"
)

// ChartContext is the per-request natal frame. AscendantLon is the ecliptic
// longitude of the chart's ascendant; houses are whole-sign from its sign.
type ChartContext struct {
	AscendantLon float64
}

// Position is what enrichment needs per body.
type Position struct {
	EclipticLon    float64
	SpeedDegPerDay float64
}

// Context is one body's natal enrichment, merged into feature metadata.
// Aspects lists the classical aspects the body forms with the ascendant.
type Context struct {
	Sign       string   `json:"sign"`
	House      int      `json:"house"`
	Dignity    string   `json:"dignity,omitempty"`
	Retrograde bool     `json:"retrograde"`
	Aspects    []string `json:"aspects,omitempty"`
}

// Provider computes natal context for a body. Implementations may consult an
// external chart service; the builtin provider derives everything locally.
type Provider interface {
	Enrich(bodyID string, pos Position, chart ChartContext) (Context, bool)
}

var signs = []string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// signIndex maps an ecliptic longitude to its zodiac sign index, 0-11.
func signIndex(lon float64) int {
	idx := int(math.Floor(astro.Wrap360(lon) / 30))
	if idx > 11 {
		idx = 11
	}
	return idx
}

// Traditional rulership and exaltation by sign. A body absent from both
// tables has no recorded dignity.
var rulers = map[string]string{
	"aries": "mars", "taurus": "venus", "gemini": "mercury",
	"cancer": "moon", "leo": "sun", "virgo": "mercury",
	"libra": "venus", "scorpio": "mars", "sagittarius": "jupiter",
	"capricorn": "saturn", "aquarius": "saturn", "pisces": "jupiter",
}

var exaltations = map[string]string{
	"aries": "sun", "taurus": "moon", "cancer": "jupiter",
	"virgo": "mercury", "libra": "saturn", "capricorn": "mars",
	"pisces": "venus",
}

func dignity(bodyID, sign string) string {
	switch bodyID {
	case rulers[sign]:
		return "domicile"
	case exaltations[sign]:
		return "exaltation"
	case rulers[oppositeSign(sign)]:
		return "detriment"
	case exaltations[oppositeSign(sign)]:
		return "fall"
	default:
		return ""
	}
}

func oppositeSign(sign string) string {
	for i, s := range signs {
		if s == sign {
			return signs[(i+6)%12]
		}
	}
	return ""
}

// Classical aspects recognized against the ascendant, with the orb applied
// on either side.
var aspectAngles = []struct {
	name string
	deg  float64
}{
	{"conjunction", 0},
	{"sextile", 60},
	{"square", 90},
	{"trine", 120},
	{"opposition", 180},
}

const aspectOrbDeg = 6.0

// ascendantAspects names the aspects a body forms with the ascendant.
// Separation is measured along the ecliptic, both points at zero latitude.
func ascendantAspects(bodyLon, ascLon float64) []string {
	sep := astro.AngularSeparation(bodyLon, 0, ascLon, 0)
	var out []string
	for _, a := range aspectAngles {
		if math.Abs(sep-a.deg) <= aspectOrbDeg {
			out = append(out, a.name)
		}
	}
	return out
}

// BuiltinProvider derives natal context from positions alone: sign from
// ecliptic longitude, whole-sign house from the ascendant's sign, dignity
// from the traditional tables, retrograde from negative daily motion.
type BuiltinProvider struct{}

// NewBuiltinProvider returns the local enrichment provider.
func NewBuiltinProvider() *BuiltinProvider {
	return &BuiltinProvider{}
}

func (p *BuiltinProvider) Enrich(bodyID string, pos Position, chart ChartContext) (Context, bool) {
	bodySign := signIndex(pos.EclipticLon)
	ascSign := signIndex(chart.AscendantLon)

	sign := signs[bodySign]
	return Context{
		Sign: sign,
		// Whole-sign: the ascendant's sign is house 1.
		House:      ((bodySign-ascSign)+12)%12 + 1,
		Dignity:    dignity(strings.ToLower(bodyID), sign),
		Retrograde: pos.SpeedDegPerDay < 0,
		Aspects:    ascendantAspects(pos.EclipticLon, chart.AscendantLon),
	}, true
}
