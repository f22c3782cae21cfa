package service

import (
	"sort"
	"strings"
	"time"

	"astromap/internal/acg"
	"astromap/internal/astro"
	"astromap/internal/bodies"
)

// BodyRef selects one body in a request. Type and Number are advisory; the
// registry entry is authoritative.
type BodyRef struct {
	ID     string `json:"id"`
	Type   string `json:"type,omitempty"`
	Number int    `json:"number,omitempty"`
}

// Options tunes line generation for one request.
type Options struct {
	LineTypes     []string  `json:"line_types,omitempty"`
	Aspects       []float64 `json:"aspects,omitempty"`
	IncludeParans *bool     `json:"include_parans,omitempty"`
	OrbDeg        float64   `json:"orb_deg,omitempty"`
	Flags         int       `json:"flags,omitempty"`
}

// NatalRequest carries the chart frame for optional natal enrichment.
type NatalRequest struct {
	AscendantLon float64 `json:"ascendant_lon"`
}

// Request is one map computation.
type Request struct {
	Epoch   string        `json:"epoch"`
	JD      *float64      `json:"jd,omitempty"`
	Bodies  []BodyRef     `json:"bodies,omitempty"`
	Options *Options      `json:"options,omitempty"`
	Natal   *NatalRequest `json:"natal,omitempty"`
}

// BatchRequest is a list of independent requests.
type BatchRequest struct {
	Requests []Request `json:"requests"`
}

// AnimateRequest sweeps an epoch range by a fixed step.
type AnimateRequest struct {
	EpochStart  string    `json:"epoch_start"`
	EpochEnd    string    `json:"epoch_end"`
	StepMinutes int       `json:"step_minutes"`
	Bodies      []BodyRef `json:"bodies,omitempty"`
	Options     *Options  `json:"options,omitempty"`
}

// parsedRequest is a validated request with everything resolved: concrete
// bodies from the registry, the temporal frame, and normalized options.
type parsedRequest struct {
	epoch         time.Time
	jd            float64
	explicitJD    *float64
	bodies        []bodies.Body
	lineTypes     []acg.LineType
	aspects       []float64
	includeParans bool
	orbDeg        float64
	flags         int
	natal         *NatalRequest
}

func (p parsedRequest) bodyIDs() []string {
	ids := make([]string, len(p.bodies))
	for i, b := range p.bodies {
		ids[i] = b.ID
	}
	sort.Strings(ids)
	return ids
}

// singleLineTypes are the per-body variants; PARAN is controlled by
// include_parans, never by the line_types list directly.
var singleLineTypes = []acg.LineType{
	acg.LineMC, acg.LineIC, acg.LineAC, acg.LineDC, acg.LineMCAspect, acg.LineACAspect,
}

var knownAspects = map[float64]bool{60: true, 90: true, 120: true, 240: true, 270: true, 300: true}

// parseRequest validates a request against the registry. It makes no
// provider calls: invalid input must short-circuit before any computation.
func (s *Service) parseRequest(req Request) (*parsedRequest, error) {
	if strings.TrimSpace(req.Epoch) == "" {
		return nil, validationErrorf("epoch is required")
	}
	epoch, err := time.Parse(time.RFC3339, req.Epoch)
	if err != nil {
		return nil, validationErrorf("epoch %q is not a valid ISO-8601 timestamp", req.Epoch)
	}

	jd := astro.JulianDay(epoch)
	if req.JD != nil {
		if *req.JD <= 0 {
			return nil, validationErrorf("jd must be positive, got %v", *req.JD)
		}
		jd = *req.JD
	}

	snapshot := s.registry.Snapshot()
	var selected []bodies.Body
	if len(req.Bodies) == 0 {
		selected = snapshot.Bodies
	} else {
		seen := make(map[string]bool, len(req.Bodies))
		for _, ref := range req.Bodies {
			id := strings.ToLower(strings.TrimSpace(ref.ID))
			if id == "" {
				return nil, validationErrorf("body id cannot be empty")
			}
			if seen[id] {
				return nil, validationErrorf("body %q listed twice", id)
			}
			seen[id] = true
			body, ok := snapshot.Body(id)
			if !ok {
				return nil, validationErrorf("unknown body id %q", id)
			}
			selected = append(selected, body)
		}
	}

	parsed := &parsedRequest{
		epoch:         epoch,
		jd:            jd,
		explicitJD:    req.JD,
		bodies:        selected,
		lineTypes:     singleLineTypes,
		aspects:       acg.DefaultAspects,
		includeParans: true,
		natal:         req.Natal,
	}

	if req.Options == nil {
		return parsed, nil
	}
	opt := req.Options

	paranRequested := false
	if len(opt.LineTypes) > 0 {
		var types []acg.LineType
		for _, raw := range opt.LineTypes {
			lt, ok := acg.ParseLineType(raw)
			if !ok {
				return nil, validationErrorf("unknown line type %q", raw)
			}
			if lt == acg.LineParan {
				// Parans are pair-level, not per-body; listing the type opts
				// in, and a PARAN-only list yields paran output alone.
				paranRequested = true
				continue
			}
			types = append(types, lt)
		}
		parsed.lineTypes = types
	}

	if len(opt.Aspects) > 0 {
		for _, a := range opt.Aspects {
			if !knownAspects[a] {
				return nil, validationErrorf("unsupported aspect angle %v", a)
			}
		}
		parsed.aspects = opt.Aspects
	}

	if paranRequested {
		parsed.includeParans = true
	}
	if opt.IncludeParans != nil {
		parsed.includeParans = *opt.IncludeParans
	}
	if len(parsed.lineTypes) == 0 && !parsed.includeParans {
		return nil, validationErrorf("line_types selects no lines")
	}
	if opt.OrbDeg < 0 {
		return nil, validationErrorf("orb_deg cannot be negative")
	}
	parsed.orbDeg = opt.OrbDeg
	parsed.flags = opt.Flags
	return parsed, nil
}
