package acg

import (
	"math"

	geojson "github.com/paulmach/go.geojson"

	"astromap/internal/astro"
)

// paranLatLimit bounds the paran latitude scan, matching the horizon curves.
const paranLatLimit = 89.0

// maxParanSolutions caps solutions per event pair; parans are symmetric and
// never produce more than two distinct latitudes.
const maxParanSolutions = 2

// BodyAngles is the (ra, dec) pair the paran solver needs per body.
type BodyAngles struct {
	RA  float64
	Dec float64
}

// eventLST returns the local sidereal time (degrees) at which a body reaches
// an angular event for an observer at the given latitude. ok is false where
// the event does not occur (no horizon crossing at that latitude).
func eventLST(b BodyAngles, ev Event, lat float64) (float64, bool) {
	switch ev {
	case EventCulm:
		return astro.Wrap360(b.RA), true
	case EventAnti:
		return astro.Wrap360(b.RA + 180), true
	case EventRise:
		h0, ok := astro.HorizonHourAngle(lat, b.Dec)
		if !ok {
			return 0, false
		}
		return astro.Wrap360(b.RA - h0), true
	case EventSet:
		h0, ok := astro.HorizonHourAngle(lat, b.Dec)
		if !ok {
			return 0, false
		}
		return astro.Wrap360(b.RA + h0), true
	default:
		return 0, false
	}
}

// paranError is the wrapped sidereal-time mismatch between the two events at
// a latitude. A root means both bodies reach their events simultaneously.
func paranError(a, b BodyAngles, evA, evB Event, lat float64) (float64, bool) {
	lstA, okA := eventLST(a, evA, lat)
	if !okA {
		return 0, false
	}
	lstB, okB := eventLST(b, evB, lat)
	if !okB {
		return 0, false
	}
	return astro.WrapSigned(lstA - lstB), true
}

// ParanLatitudes solves for the latitudes at which body a reaches evA while
// body b simultaneously reaches evB. Returns 0, 1, or 2 solutions, each in
// [-90, 90]. Latitudes where either event is undefined are skipped.
func ParanLatitudes(a, b BodyAngles, evA, evB Event, p Params) []float64 {
	step := p.latStep()

	var solutions []float64
	havePrev := false
	var prevLat, prevErr float64

	for lat := -paranLatLimit; lat <= paranLatLimit; lat += step {
		curErr, ok := paranError(a, b, evA, evB, lat)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev && math.Abs(curErr-prevErr) < 180 {
			if prevErr == 0 && curErr != 0 {
				solutions = appendSolution(solutions, prevLat)
			} else if prevErr*curErr < 0 {
				if root, ok := bisectParan(a, b, evA, evB, prevLat, lat); ok {
					solutions = appendSolution(solutions, root)
				}
			}
		}
		if len(solutions) >= maxParanSolutions {
			break
		}
		prevLat, prevErr, havePrev = lat, curErr, true
	}
	return solutions
}

func bisectParan(a, b BodyAngles, evA, evB Event, lo, hi float64) (float64, bool) {
	fLo, ok := paranError(a, b, evA, evB, lo)
	if !ok {
		return 0, false
	}
	for i := 0; i < 64 && hi-lo > rootTolerance; i++ {
		mid := (lo + hi) / 2
		fMid, ok := paranError(a, b, evA, evB, mid)
		if !ok || math.Abs(fMid-fLo) >= 180 {
			return 0, false
		}
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return astro.ClampLatitude((lo + hi) / 2), true
}

// appendSolution adds a root, ignoring near-duplicates from adjacent brackets.
func appendSolution(solutions []float64, lat float64) []float64 {
	for _, s := range solutions {
		if math.Abs(s-lat) < 0.1 {
			return solutions
		}
	}
	return append(solutions, lat)
}

// ParanBand materializes a paran latitude as a polygon band spanning the full
// longitude range at lat +/- band/2. Paran precision does not warrant an
// infinitesimal line.
func ParanBand(lat float64, p Params) *geojson.Geometry {
	half := p.paranBand() / 2
	south := astro.ClampLatitude(lat - half)
	north := astro.ClampLatitude(lat + half)
	ring := [][]float64{
		{-180, south},
		{180, south},
		{180, north},
		{-180, north},
		{-180, south},
	}
	return geojson.NewPolygonGeometry([][][]float64{ring})
}
