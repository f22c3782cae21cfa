// Package service orchestrates map computation: resolve body positions, run
// the line generators, assemble features with validated metadata, and wrap
// the whole pipeline with the result cache and the request journal.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	geojson "github.com/paulmach/go.geojson"
	"golang.org/x/sync/errgroup"

	"astromap/internal/acg"
	"astromap/internal/bodies"
	"astromap/internal/cache"
	"astromap/internal/ephem"
	"astromap/internal/logger"
	"astromap/internal/metadata"
	"astromap/internal/natal"
	"astromap/internal/store"
	"astromap/internal/store/model"
)

// Deps are the service's collaborators. Registry and Resolver are required;
// Cache, Journal and Natal degrade to disabled when nil.
type Deps struct {
	Registry *bodies.Registry
	Resolver *ephem.Resolver
	Cache    *cache.Cache
	Journal  store.Journal
	Natal    natal.Provider

	Workers      int
	LatStepDeg   float64
	ParanBandDeg float64
	FrameCap     int
}

// Service computes map requests.
type Service struct {
	registry *bodies.Registry
	resolver *ephem.Resolver
	meta     *metadata.Manager
	cache    *cache.Cache
	journal  store.Journal
	natal    natal.Provider

	workers      int
	latStep      float64
	paranBand    float64
	frameCap     int
}

// New builds a Service.
func New(deps Deps) (*Service, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("service requires a body registry")
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("service requires a position resolver")
	}
	journal := deps.Journal
	if journal == nil {
		journal = store.NopJournal{}
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = 4
	}
	frameCap := deps.FrameCap
	if frameCap <= 0 {
		frameCap = 100
	}
	provider := deps.Resolver.Provider()
	return &Service{
		registry:  deps.Registry,
		resolver:  deps.Resolver,
		meta:      metadata.NewManager(provider.Name(), ""),
		cache:     deps.Cache,
		journal:   journal,
		natal:     deps.Natal,
		workers:   workers,
		latStep:   deps.LatStepDeg,
		paranBand: deps.ParanBandDeg,
		frameCap:  frameCap,
	}, nil
}

// Result is one computed (or cache-served) map.
type Result struct {
	Collection  *geojson.FeatureCollection `json:"data"`
	Fingerprint string                     `json:"fingerprint"`
	CacheHit    bool                       `json:"cache_hit"`
	Skipped     []string                   `json:"skipped_bodies,omitempty"`
	Warnings    []string                   `json:"warnings,omitempty"`
	Elapsed     time.Duration              `json:"-"`
}

// Compute serves one map request: validation, cache lookup, full pipeline on
// a miss. A request that produced at least one feature succeeds; a request
// where every body failed returns an error with no partial data.
func (s *Service) Compute(ctx context.Context, req Request) (*Result, error) {
	parsed, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}
	return s.computeParsed(ctx, req, parsed, "map")
}

func (s *Service) computeParsed(ctx context.Context, req Request, parsed *parsedRequest, kind string) (*Result, error) {
	fp, err := cache.Fingerprint(fingerprintInput(req, parsed))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if entry, ok := s.cache.Get(fp); ok {
			fc, err := geojson.UnmarshalFeatureCollection(entry.Result)
			if err == nil {
				res := &Result{Collection: fc, Fingerprint: fp, CacheHit: true}
				s.record(ctx, req, parsed, fp, kind, res, 0, nil)
				return res, nil
			}
			logger.Warnf("[service] cached result unreadable, recomputing fingerprint=%s err=%v", fp, err)
		}
	}

	start := time.Now()
	res, err := s.pipeline(ctx, parsed)
	elapsed := time.Since(start)
	if err != nil {
		s.record(ctx, req, parsed, fp, kind, nil, elapsed, err)
		return nil, err
	}
	res.Fingerprint = fp
	res.Elapsed = elapsed

	if s.cache != nil {
		if raw, err := json.Marshal(res.Collection); err == nil {
			s.cache.Set(fp, raw, elapsed)
		} else {
			logger.Warnf("[service] result marshal for cache failed: %v", err)
		}
	}
	s.record(ctx, req, parsed, fp, kind, res, elapsed, nil)
	return res, nil
}

// pipeline runs the full computation for a validated request.
func (s *Service) pipeline(ctx context.Context, parsed *parsedRequest) (*Result, error) {
	provider := s.resolver.Provider()
	params := acg.Params{
		GMST:         provider.SiderealTime(parsed.jd),
		Obliquity:    provider.Obliquity(parsed.jd),
		LatStepDeg:   s.latStep,
		ParanBandDeg: s.paranBand,
	}

	resolved, skipped := s.resolveAll(ctx, parsed)

	fc := geojson.NewFeatureCollection()
	var warnings []string

	for _, rb := range resolved {
		features, warn := s.bodyFeatures(rb, parsed, params)
		for _, f := range features {
			fc.AddFeature(f)
		}
		warnings = append(warnings, warn...)
	}

	if parsed.includeParans {
		for _, f := range s.paranFeatures(resolved, parsed, params) {
			fc.AddFeature(f)
		}
	}

	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("no body could be computed (skipped: %s)", strings.Join(skipped, ", "))
	}
	return &Result{Collection: fc, Skipped: skipped, Warnings: warnings}, nil
}

// resolvedBody pairs a catalog entry with its position for this request.
type resolvedBody struct {
	body   bodies.Body
	coords ephem.Coordinates
}

// resolveAll fans body resolution out over the worker pool. Failures are
// collected as skipped ids, never as request errors.
func (s *Service) resolveAll(ctx context.Context, parsed *parsedRequest) ([]resolvedBody, []string) {
	results := make([]*ephem.Coordinates, len(parsed.bodies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	var mu sync.Mutex
	for i, body := range parsed.bodies {
		i, body := i, body
		g.Go(func() error {
			coords, err := s.resolver.Resolve(gctx, body, parsed.jd, parsed.flags)
			if err != nil {
				return nil // already logged; the body is simply excluded
			}
			mu.Lock()
			results[i] = coords
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	var resolved []resolvedBody
	var skipped []string
	for i, body := range parsed.bodies {
		if results[i] == nil {
			skipped = append(skipped, body.ID)
			continue
		}
		resolved = append(resolved, resolvedBody{body: body, coords: *results[i]})
	}
	return resolved, skipped
}

// bodyFeatures builds all features for one resolved body. Orb-only bodies
// yield a single point record and never reach the line generators.
func (s *Service) bodyFeatures(rb resolvedBody, parsed *parsedRequest, params acg.Params) ([]*geojson.Feature, []string) {
	start := time.Now()

	if rb.body.RenderOrbOnly {
		f, err := s.orbFeature(rb, parsed, params, time.Since(start))
		if err != nil {
			cerr := &CalculationError{BodyID: rb.body.ID, Err: err}
			logger.Errorf("[service] orb feature rejected: %v", cerr)
			return nil, []string{cerr.Error()}
		}
		return []*geojson.Feature{f}, nil
	}

	pos := acg.BodyPosition{
		RA:          rb.coords.RightAscension,
		Dec:         rb.coords.Declination,
		EclipticLon: rb.coords.EclipticLon,
	}
	lines, err := acg.Generate(pos, parsed.lineTypes, parsed.aspects, params)
	if err != nil {
		cerr := &CalculationError{BodyID: rb.body.ID, Err: err}
		logger.Errorf("[service] generation failed: %v", cerr)
		return nil, []string{cerr.Error()}
	}
	elapsed := time.Since(start)

	var features []*geojson.Feature
	var warnings []string
	for _, line := range lines {
		f, err := s.lineFeature(rb, line, parsed, params, elapsed)
		if err != nil {
			logger.Errorf("[service] feature rejected body=%s line=%s: %v", rb.body.ID, line.Type, err)
			warnings = append(warnings, fmt.Sprintf("body %s line %s: %v", rb.body.ID, line.Type, err))
			continue
		}
		features = append(features, f)
	}
	return features, warnings
}

func (s *Service) lineFeature(rb resolvedBody, line acg.Line, parsed *parsedRequest, params acg.Params, elapsed time.Duration) (*geojson.Feature, error) {
	id := string(line.Type)
	if line.Aspect != 0 {
		id = fmt.Sprintf("%s_%g", id, line.Aspect)
	}
	props, err := s.meta.Properties(metadata.Input{
		ID:                   fmt.Sprintf("%s_%s", rb.body.ID, id),
		BodyType:             string(rb.body.Category),
		Kind:                 metadata.KindLine,
		Epoch:                parsed.epoch,
		JD:                   parsed.jd,
		GMST:                 params.GMST,
		Obliquity:            params.Obliquity,
		Coords:               rb.coords,
		Line:                 lineInfo(line, parsed.orbDeg),
		Elapsed:              elapsed,
		Number:               rb.body.CatalogNumber,
		Natal:                s.natalContext(rb, parsed),
		Flags:                parsed.flags,
		InfluenceRadiusMiles: rb.body.InfluenceRadiusMiles,
	})
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(line.Geometry)
	f.Properties = props
	return f, nil
}

// orbFeature is the point record for a render_orb_only body: the location
// where the body is at zenith, with its influence radius attached.
func (s *Service) orbFeature(rb resolvedBody, parsed *parsedRequest, params acg.Params, elapsed time.Duration) (*geojson.Feature, error) {
	lon := acg.MCLongitude(rb.coords.RightAscension, params.GMST)
	lat := rb.coords.Declination

	props, err := s.meta.Properties(metadata.Input{
		ID:        fmt.Sprintf("%s_ORB", rb.body.ID),
		BodyType:  string(rb.body.Category),
		Kind:      metadata.KindOrb,
		Epoch:     parsed.epoch,
		JD:        parsed.jd,
		GMST:      params.GMST,
		Obliquity: params.Obliquity,
		Coords:    rb.coords,
		Line: metadata.LineInfo{
			Angle:  lon,
			Type:   "ORB",
			Method: acg.MethodOrbPoint,
		},
		Elapsed:              elapsed,
		Number:               rb.body.CatalogNumber,
		Natal:                s.natalContext(rb, parsed),
		Flags:                parsed.flags,
		InfluenceRadiusMiles: rb.body.InfluenceRadiusMiles,
		RenderOrbOnly:        true,
	})
	if err != nil {
		return nil, err
	}
	pt := acg.NormalizePoint([]float64{lon, lat})
	f := geojson.NewPointFeature(pt)
	f.Properties = props
	return f, nil
}

// paranFeatures runs the fixed event pairs across every body pair. Orb-only
// bodies never participate.
func (s *Service) paranFeatures(resolved []resolvedBody, parsed *parsedRequest, params acg.Params) []*geojson.Feature {
	var lineBodies []resolvedBody
	for _, rb := range resolved {
		if !rb.body.RenderOrbOnly {
			lineBodies = append(lineBodies, rb)
		}
	}

	var features []*geojson.Feature
	for i := 0; i < len(lineBodies); i++ {
		for j := i + 1; j < len(lineBodies); j++ {
			a, b := lineBodies[i], lineBodies[j]
			start := time.Now()
			parans := acg.Parans(
				acg.BodyPosition{RA: a.coords.RightAscension, Dec: a.coords.Declination},
				acg.BodyPosition{RA: b.coords.RightAscension, Dec: b.coords.Declination},
				params,
			)
			elapsed := time.Since(start)

			for n, pr := range parans {
				props, err := s.meta.Properties(metadata.Input{
					ID: fmt.Sprintf("%s_%s_PARAN_%s_%s_%d",
						a.body.ID, b.body.ID, pr.Events[0], pr.Events[1], n),
					BodyType:  string(a.body.Category),
					Kind:      metadata.KindParan,
					Epoch:     parsed.epoch,
					JD:        parsed.jd,
					GMST:      params.GMST,
					Obliquity: params.Obliquity,
					Coords:    a.coords,
					Line:      lineInfo(pr.Line, parsed.orbDeg),
					Elapsed:   elapsed,
					Flags:     parsed.flags,
					Custom: map[string]any{
						"pair":     []string{a.body.ID, b.body.ID},
						"events":   []string{string(pr.Events[0]), string(pr.Events[1])},
						"latitude": pr.Latitude,
					},
				})
				if err != nil {
					logger.Errorf("[service] paran feature rejected pair=%s/%s: %v", a.body.ID, b.body.ID, err)
					continue
				}
				f := geojson.NewFeature(pr.Line.Geometry)
				f.Properties = props
				features = append(features, f)
			}
		}
	}
	return features
}

func (s *Service) natalContext(rb resolvedBody, parsed *parsedRequest) map[string]any {
	if s.natal == nil || parsed.natal == nil {
		return nil
	}
	ctx, ok := s.natal.Enrich(rb.body.ID, natal.Position{
		EclipticLon:    rb.coords.EclipticLon,
		SpeedDegPerDay: rb.coords.Speed,
	}, natal.ChartContext{AscendantLon: parsed.natal.AscendantLon})
	if !ok {
		return nil
	}
	out := map[string]any{
		"sign":       ctx.Sign,
		"house":      ctx.House,
		"retrograde": ctx.Retrograde,
	}
	if ctx.Dignity != "" {
		out["dignity"] = ctx.Dignity
	}
	if len(ctx.Aspects) > 0 {
		out["aspects"] = ctx.Aspects
	}
	return out
}

func lineInfo(line acg.Line, orbDeg float64) metadata.LineInfo {
	return metadata.LineInfo{
		Angle:  line.Angle,
		Aspect: line.Aspect,
		Type:   string(line.Type),
		Method: line.Method,
		Orb:    orbDeg,
	}
}

func fingerprintInput(req Request, parsed *parsedRequest) cache.FingerprintInput {
	opts := map[string]any{
		"line_types":     parsed.lineTypes,
		"aspects":        parsed.aspects,
		"include_parans": parsed.includeParans,
		"orb_deg":        parsed.orbDeg,
		"flags":          parsed.flags,
	}
	if parsed.natal != nil {
		opts["natal"] = parsed.natal
	}
	return cache.FingerprintInput{
		Epoch:   parsed.epoch.UTC().Format(time.RFC3339),
		JD:      parsed.explicitJD,
		Bodies:  parsed.bodyIDs(),
		Options: opts,
	}
}

// record journals the request outcome, best effort.
func (s *Service) record(ctx context.Context, req Request, parsed *parsedRequest, fp, kind string, res *Result, elapsed time.Duration, cause error) {
	rec := &model.RequestRecord{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		Kind:        kind,
		Epoch:       parsed.epoch.UTC().Format(time.RFC3339),
		JD:          parsed.jd,
		Fingerprint: fp,
		BodyCount:   len(parsed.bodies),
		DurationMs:  float64(elapsed) / float64(time.Millisecond),
		Status:      "ok",
	}
	if res != nil {
		rec.CacheHit = res.CacheHit
		if res.Collection != nil {
			rec.Features = len(res.Collection.Features)
		}
	}
	if cause != nil {
		rec.Status = "error"
		rec.Error = cause.Error()
	}
	if req.Options != nil {
		if raw, err := json.Marshal(req.Options); err == nil {
			rec.Options = raw
		}
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		logger.Warnf("[service] journal write failed: %v", err)
	}
}

// Journal exposes the request journal for the transport layer.
func (s *Service) Journal() store.Journal {
	return s.journal
}

// CacheStats returns cache counters, or zeros when the cache is disabled.
func (s *Service) CacheStats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stats()
}

// Bodies returns the current catalog snapshot.
func (s *Service) Bodies() bodies.Snapshot {
	return s.registry.Snapshot()
}
