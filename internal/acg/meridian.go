package acg

import (
	geojson "github.com/paulmach/go.geojson"

	"astromap/internal/astro"
)

// meridianSampleStep is the latitude spacing of meridian line vertices. The
// line is straight in longitude, the sampling only controls vertex density.
const meridianSampleStep = 2.0

// Line is one generated map line with the context the metadata layer needs.
type Line struct {
	Type     LineType
	Aspect   float64 // aspect angle for aspect contours, 0 otherwise
	Angle    float64 // the defining longitude or latitude of the construction
	Method   string
	Geometry *geojson.Geometry
}

// MCLongitude returns the longitude where a body with right ascension ra
// culminates, given Greenwich sidereal time. Both inputs in degrees.
func MCLongitude(ra, gmst float64) float64 {
	return astro.WrapLongitude(ra - gmst)
}

// ICLongitude is the antimeridian of the MC longitude, exactly.
func ICLongitude(ra, gmst float64) float64 {
	return astro.WrapLongitude(MCLongitude(ra, gmst) + 180)
}

// MeridianLines builds the MC and IC lines for a body: pole-to-pole
// LineStrings at constant longitude. No discontinuity handling is needed,
// latitude sweeps monotonically.
func MeridianLines(ra float64, p Params) (mc, ic Line) {
	mcLon := MCLongitude(ra, p.GMST)
	icLon := ICLongitude(ra, p.GMST)
	return Line{
			Type:     LineMC,
			Angle:    mcLon,
			Method:   MethodMeridian,
			Geometry: meridianGeometry(mcLon),
		}, Line{
			Type:     LineIC,
			Angle:    icLon,
			Method:   MethodMeridian,
			Geometry: meridianGeometry(icLon),
		}
}

func meridianGeometry(lon float64) *geojson.Geometry {
	points := make([][]float64, 0, int(180/meridianSampleStep)+1)
	for lat := -90.0; lat <= 90.0; lat += meridianSampleStep {
		points = append(points, []float64{lon, lat})
	}
	return geojson.NewLineStringGeometry(NormalizeCoords(points))
}
