package acg

import (
	"astromap/internal/astro"
)

// horizonLatLimit bounds the sampled latitude range. The crossing relation
// degenerates at the poles.
const horizonLatLimit = 89.0

// HorizonLines builds the AC (rising) and DC (setting) curves for a body.
// For each sampled latitude the hour angle H0 of the horizon crossing comes
// from cos(H0) = -tan(lat)*tan(dec); latitudes with no real solution are
// skipped, which leaves the curve ragged near the poles for bodies of extreme
// declination. Either returned slice may be empty.
func HorizonLines(ra, dec float64, p Params) []Line {
	step := p.latStep()

	var acPoints, dcPoints [][]float64
	for lat := -horizonLatLimit; lat <= horizonLatLimit; lat += step {
		h0, ok := astro.HorizonHourAngle(lat, dec)
		if !ok {
			continue
		}
		// Rising branch: body east of the meridian (H = -H0).
		acPoints = append(acPoints, []float64{ra - h0 - p.GMST, lat})
		// Setting branch: H = +H0.
		dcPoints = append(dcPoints, []float64{ra + h0 - p.GMST, lat})
	}

	var lines []Line
	if g := BuildLineGeometry(acPoints); g != nil {
		lines = append(lines, Line{Type: LineAC, Angle: dec, Method: MethodHorizon, Geometry: g})
	}
	if g := BuildLineGeometry(dcPoints); g != nil {
		lines = append(lines, Line{Type: LineDC, Angle: dec, Method: MethodHorizon, Geometry: g})
	}
	return lines
}
