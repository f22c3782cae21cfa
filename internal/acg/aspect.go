package acg

import (
	"math"

	"astromap/internal/astro"
)

const (
	// aspectLatLimit cuts the AC aspect search above +/-85 degrees where the
	// ascendant relation is numerically unstable; such samples are dropped,
	// never emitted as invalid coordinates.
	aspectLatLimit = 85.0

	// rootScanStep is the coarse longitude scan spacing for the AC aspect
	// root search.
	rootScanStep = 2.0

	// rootTolerance is the bisection stopping width in degrees.
	rootTolerance = 1e-4
)

// MCAspectLine builds the contour where a body forms the given aspect to the
// local Midheaven. Closed form: the meridian construction offset by the
// aspect angle in right ascension.
func MCAspectLine(ra, aspect float64, p Params) Line {
	lon := astro.WrapLongitude(ra + aspect - p.GMST)
	return Line{
		Type:     LineMCAspect,
		Aspect:   aspect,
		Angle:    lon,
		Method:   MethodMeridianAspect,
		Geometry: meridianGeometry(lon),
	}
}

// ACAspectLine builds the contour where the local Ascendant forms the given
// aspect to the body's ecliptic longitude. There is no closed form: for each
// sampled latitude the longitude is located by a coarse scan for a sign
// change of the wrapped aspect error followed by bisection. Latitudes where
// the search does not converge are dropped. Returns false when no latitude
// produced a point.
func ACAspectLine(eclipticLon, aspect float64, p Params) (Line, bool) {
	step := p.latStep()
	target := astro.Wrap360(eclipticLon + aspect)

	var points [][]float64
	for lat := -aspectLatLimit; lat <= aspectLatLimit; lat += step {
		lon, ok := findAscendantLongitude(target, lat, p)
		if !ok {
			continue
		}
		points = append(points, []float64{lon, lat})
	}

	g := BuildLineGeometry(points)
	if g == nil {
		return Line{}, false
	}
	return Line{
		Type:     LineACAspect,
		Aspect:   aspect,
		Angle:    target,
		Method:   MethodAscendantRoot,
		Geometry: g,
	}, true
}

// ascendantError is the wrapped difference between the ascendant at a
// location and the target ecliptic longitude, in (-180, 180].
func ascendantError(lon, lat, target float64, p Params) float64 {
	lst := astro.Wrap360(p.GMST + lon)
	return astro.WrapSigned(astro.Ascendant(lst, lat, p.Obliquity) - target)
}

// findAscendantLongitude locates the longitude at which the ascendant equals
// target for a fixed latitude. The ascendant sweeps the full circle as
// longitude does, so one root is expected; the first sign change wins.
func findAscendantLongitude(target, lat float64, p Params) (float64, bool) {
	prevLon := -180.0
	prevErr := ascendantError(prevLon, lat, target, p)

	for lon := prevLon + rootScanStep; lon <= 180; lon += rootScanStep {
		curErr := ascendantError(lon, lat, target, p)
		// A jump near the wrap boundary is a branch cut, not a root.
		if prevErr*curErr <= 0 && math.Abs(curErr-prevErr) < 180 {
			root, ok := bisectAscendant(prevLon, lon, lat, target, p)
			if ok {
				return root, true
			}
		}
		prevLon, prevErr = lon, curErr
	}
	return 0, false
}

func bisectAscendant(lo, hi, lat, target float64, p Params) (float64, bool) {
	fLo := ascendantError(lo, lat, target, p)
	for i := 0; i < 64 && hi-lo > rootTolerance; i++ {
		mid := (lo + hi) / 2
		fMid := ascendantError(mid, lat, target, p)
		if math.Abs(fMid-fLo) >= 180 {
			// Branch cut inside the bracket; the root is spurious.
			return 0, false
		}
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2, true
}
