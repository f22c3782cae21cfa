package acg

import "fmt"

// BodyPosition is the resolved position a body needs for line generation:
// equatorial for meridian/horizon constructions, ecliptic longitude for
// ascendant aspect contours.
type BodyPosition struct {
	RA          float64
	Dec         float64
	EclipticLon float64
}

func (bp BodyPosition) angles() BodyAngles {
	return BodyAngles{RA: bp.RA, Dec: bp.Dec}
}

// Generate builds every requested single-body line for one position. The
// aspects slice applies to MC_ASPECT and AC_ASPECT; when nil, DefaultAspects
// is used. PARAN is a pair-level construction and is rejected here.
func Generate(pos BodyPosition, types []LineType, aspects []float64, p Params) ([]Line, error) {
	if len(aspects) == 0 {
		aspects = DefaultAspects
	}

	var lines []Line
	for _, t := range types {
		switch t {
		case LineMC:
			mc, _ := MeridianLines(pos.RA, p)
			lines = append(lines, mc)
		case LineIC:
			_, ic := MeridianLines(pos.RA, p)
			lines = append(lines, ic)
		case LineAC, LineDC:
			for _, hl := range HorizonLines(pos.RA, pos.Dec, p) {
				if hl.Type == t {
					lines = append(lines, hl)
				}
			}
		case LineMCAspect:
			for _, a := range aspects {
				lines = append(lines, MCAspectLine(pos.RA, a, p))
			}
		case LineACAspect:
			for _, a := range aspects {
				if l, ok := ACAspectLine(pos.EclipticLon, a, p); ok {
					lines = append(lines, l)
				}
			}
		case LineParan:
			return nil, fmt.Errorf("paran lines are generated per body pair, not per body")
		default:
			return nil, fmt.Errorf("unknown line type %q", t)
		}
	}
	return lines, nil
}

// Paran is one solved simultaneous-angularity latitude for a body pair.
type Paran struct {
	Events   [2]Event
	Latitude float64
	Line     Line
}

// Parans evaluates the fixed event pairs for two bodies and returns every
// solved latitude as a band polygon.
func Parans(a, b BodyPosition, p Params) []Paran {
	angA, angB := a.angles(), b.angles()

	var out []Paran
	for _, pair := range ParanEventPairs {
		for _, lat := range ParanLatitudes(angA, angB, pair[0], pair[1], p) {
			out = append(out, Paran{
				Events:   pair,
				Latitude: lat,
				Line: Line{
					Type:     LineParan,
					Angle:    lat,
					Method:   MethodParanSolve,
					Geometry: ParanBand(lat, p),
				},
			})
		}
	}
	return out
}
