package acg

import (
	geojson "github.com/paulmach/go.geojson"

	"astromap/internal/astro"
)

// NormalizePoint bounds a [lon, lat] pair to [-180,180] / [-90,90].
// Idempotent: normalizing a normalized point is a no-op.
func NormalizePoint(pt []float64) []float64 {
	return []float64{astro.WrapLongitude(pt[0]), astro.ClampLatitude(pt[1])}
}

// NormalizeCoords normalizes a polyline in place and returns it.
func NormalizeCoords(points [][]float64) [][]float64 {
	for i, pt := range points {
		points[i] = NormalizePoint(pt)
	}
	return points
}

// SegmentPolyline splits a polyline into segments wherever consecutive
// samples jump more than 180 degrees of longitude: an antimeridian crossing
// or a numerical discontinuity in the underlying root solve. Points are
// normalized before the scan.
func SegmentPolyline(points [][]float64) [][][]float64 {
	points = NormalizeCoords(points)
	if len(points) == 0 {
		return nil
	}

	var segments [][][]float64
	current := [][]float64{points[0]}
	for i := 1; i < len(points); i++ {
		dLon := points[i][0] - points[i-1][0]
		if dLon > 180 || dLon < -180 {
			if len(current) >= 2 {
				segments = append(segments, current)
			}
			current = [][]float64{points[i]}
			continue
		}
		current = append(current, points[i])
	}
	if len(current) >= 2 {
		segments = append(segments, current)
	}
	return segments
}

// BuildLineGeometry turns a raw polyline into GeoJSON geometry: one surviving
// segment yields a LineString, several a MultiLineString. Coordinates are
// re-normalized immediately before emission. Returns nil when fewer than two
// usable points remain.
func BuildLineGeometry(points [][]float64) *geojson.Geometry {
	segments := SegmentPolyline(points)
	if len(segments) == 0 {
		return nil
	}
	for _, seg := range segments {
		NormalizeCoords(seg)
	}
	if len(segments) == 1 {
		return geojson.NewLineStringGeometry(segments[0])
	}
	return geojson.NewMultiLineStringGeometry(segments...)
}
