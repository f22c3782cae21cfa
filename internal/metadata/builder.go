package metadata

import (
	"time"
)

// Feature kinds.
const (
	KindLine  = "line"
	KindParan = "paran"
	KindOrb   = "orb"
)

// Manager stamps provenance onto feature properties and enforces the schema
// before anything is emitted.
type Manager struct {
	source    string
	seVersion string
}

// NewManager builds a Manager. source names the position provider the
// features were computed from; seVersion is its reported version and may be
// empty.
func NewManager(source, seVersion string) *Manager {
	return &Manager{source: source, seVersion: seVersion}
}

// LineInfo describes the construction behind a feature's geometry.
type LineInfo struct {
	Angle     float64
	Aspect    float64
	Type      string
	Method    string
	SegmentID string
	Orb       float64
}

// Input is everything a feature's properties are assembled from. Zero-valued
// optional fields are omitted from the output.
type Input struct {
	ID        string
	BodyType  string
	Kind      string
	Epoch     time.Time
	JD        float64
	GMST      float64
	Obliquity float64
	Coords    any
	Line      LineInfo
	Elapsed   time.Duration

	Number               int
	Natal                map[string]any
	Flags                int
	Color                string
	Style                map[string]any
	ZIndex               int
	HitRadius            float64
	InfluenceRadiusMiles float64
	RenderOrbOnly        bool
	Custom               map[string]any
}

// Properties assembles and validates one feature's property map. A schema
// violation is returned as an error; no invalid feature is ever handed back.
func (m *Manager) Properties(in Input) (map[string]any, error) {
	line := map[string]any{
		"angle":     in.Line.Angle,
		"aspect":    in.Line.Aspect,
		"line_type": in.Line.Type,
		"method":    in.Line.Method,
	}
	if in.Line.SegmentID != "" {
		line["segment_id"] = in.Line.SegmentID
	}
	if in.Line.Orb > 0 {
		line["orb"] = in.Line.Orb
	}

	props := map[string]any{
		"id":                  in.ID,
		"type":                in.BodyType,
		"kind":                in.Kind,
		"epoch":               in.Epoch.UTC().Format(time.RFC3339),
		"jd":                  in.JD,
		"gmst":                in.GMST,
		"obliquity":           in.Obliquity,
		"coords":              in.Coords,
		"line":                line,
		"source":              m.source,
		"calculation_time_ms": float64(in.Elapsed) / float64(time.Millisecond),
	}

	if in.Number > 0 {
		props["number"] = in.Number
	}
	if in.Natal != nil {
		props["natal"] = in.Natal
	}
	if in.Flags != 0 {
		props["flags"] = in.Flags
	}
	if m.seVersion != "" {
		props["se_version"] = m.seVersion
	}
	if in.Color != "" {
		props["color"] = in.Color
	}
	if in.Style != nil {
		props["style"] = in.Style
	}
	if in.ZIndex != 0 {
		props["z_index"] = in.ZIndex
	}
	if in.HitRadius > 0 {
		props["hit_radius"] = in.HitRadius
	}
	if in.InfluenceRadiusMiles > 0 {
		props["influence_radius_miles"] = in.InfluenceRadiusMiles
	}
	if in.RenderOrbOnly {
		props["render_orb_only"] = true
	}
	if in.Custom != nil {
		props["custom"] = in.Custom
	}

	if err := Validate(props); err != nil {
		return nil, err
	}
	return props, nil
}
