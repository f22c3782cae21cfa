// Package acg computes astrocartography map lines: meridian (MC/IC) and
// horizon (AC/DC) loci, aspect contours to those angles, and paran latitude
// bands, emitted as GeoJSON geometry.
package acg

import "strings"

// LineType is the closed set of map line variants. Generation dispatches over
// it exhaustively; adding a value requires touching every switch.
type LineType string

const (
	LineMC       LineType = "MC"
	LineIC       LineType = "IC"
	LineAC       LineType = "AC"
	LineDC       LineType = "DC"
	LineMCAspect LineType = "MC_ASPECT"
	LineACAspect LineType = "AC_ASPECT"
	LineParan    LineType = "PARAN"
)

// AllLineTypes lists every variant in emission order.
var AllLineTypes = []LineType{LineMC, LineIC, LineAC, LineDC, LineMCAspect, LineACAspect, LineParan}

// ParseLineType maps a request string to a LineType.
func ParseLineType(s string) (LineType, bool) {
	lt := LineType(strings.ToUpper(strings.TrimSpace(s)))
	switch lt {
	case LineMC, LineIC, LineAC, LineDC, LineMCAspect, LineACAspect, LineParan:
		return lt, true
	default:
		return "", false
	}
}

// DefaultAspects are the six standard aspect angles used for MC_ASPECT and
// AC_ASPECT contours. Conjunction and opposition are the MC/IC lines
// themselves and are not repeated here.
var DefaultAspects = []float64{60, 90, 120, 240, 270, 300}

// Event is an angular event a body can reach in local sidereal time.
type Event string

const (
	EventRise Event = "RISE"
	EventSet  Event = "SET"
	EventCulm Event = "CULM"
	EventAnti Event = "ANTI"
)

// ParanEventPairs is the fixed set of event pairs evaluated per body pair.
// The reduction from the 16 possible combinations to these 4 is a domain
// convention carried over unchanged; do not re-derive or extend it.
var ParanEventPairs = [4][2]Event{
	{EventRise, EventCulm},
	{EventSet, EventCulm},
	{EventRise, EventSet},
	{EventCulm, EventAnti},
}

// Params carries the per-request astronomical context and sampling knobs.
type Params struct {
	GMST         float64 // Greenwich mean sidereal time, degrees
	Obliquity    float64 // degrees
	LatStepDeg   float64 // horizon/aspect latitude sampling step
	ParanBandDeg float64 // paran band height, degrees
}

// Defaults for zero-valued sampling knobs.
const (
	defaultLatStep   = 0.5
	defaultParanBand = 2.0
)

func (p Params) latStep() float64 {
	if p.LatStepDeg <= 0 {
		return defaultLatStep
	}
	return p.LatStepDeg
}

func (p Params) paranBand() float64 {
	if p.ParanBandDeg <= 0 {
		return defaultParanBand
	}
	return p.ParanBandDeg
}

// Method names recorded in feature metadata, one per construction.
const (
	MethodMeridian       = "meridian_closed_form"
	MethodHorizon        = "horizon_hour_angle"
	MethodMeridianAspect = "meridian_aspect_offset"
	MethodAscendantRoot  = "ascendant_root_search"
	MethodParanSolve     = "paran_latitude_solve"
	MethodOrbPoint       = "orb_point"
)
