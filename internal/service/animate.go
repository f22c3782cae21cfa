package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"golang.org/x/sync/errgroup"

	"astromap/internal/logger"
)

// Frame is one epoch in an animation sweep.
type Frame struct {
	Epoch string                     `json:"epoch"`
	JD    float64                    `json:"jd"`
	Data  *geojson.FeatureCollection `json:"data,omitempty"`
	Error string                     `json:"error,omitempty"`
}

// AnimateResult carries the frames plus a truncation warning when the sweep
// exceeded the frame cap.
type AnimateResult struct {
	Frames   []Frame  `json:"frames"`
	Warnings []string `json:"warnings,omitempty"`
}

// Animate computes a frame per step across [epoch_start, epoch_end]. Frames
// are independent and computed in parallel; frames beyond the cap are dropped
// with a warning, never an error.
func (s *Service) Animate(ctx context.Context, req AnimateRequest) (*AnimateResult, error) {
	if strings.TrimSpace(req.EpochStart) == "" || strings.TrimSpace(req.EpochEnd) == "" {
		return nil, validationErrorf("epoch_start and epoch_end are required")
	}
	start, err := time.Parse(time.RFC3339, req.EpochStart)
	if err != nil {
		return nil, validationErrorf("epoch_start %q is not a valid ISO-8601 timestamp", req.EpochStart)
	}
	end, err := time.Parse(time.RFC3339, req.EpochEnd)
	if err != nil {
		return nil, validationErrorf("epoch_end %q is not a valid ISO-8601 timestamp", req.EpochEnd)
	}
	if !end.After(start) {
		return nil, validationErrorf("epoch_end must be after epoch_start")
	}
	if req.StepMinutes <= 0 {
		return nil, validationErrorf("step_minutes must be positive")
	}

	step := time.Duration(req.StepMinutes) * time.Minute
	var epochs []time.Time
	truncated := false
	for t := start; !t.After(end); t = t.Add(step) {
		if len(epochs) >= s.frameCap {
			truncated = true
			break
		}
		epochs = append(epochs, t)
	}

	// Validate the shared request shape once, before any frame computes.
	probe := Request{Epoch: start.UTC().Format(time.RFC3339), Bodies: req.Bodies, Options: req.Options}
	if _, err := s.parseRequest(probe); err != nil {
		return nil, err
	}

	frames := make([]Frame, len(epochs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	var mu sync.Mutex
	for i, epoch := range epochs {
		i, epoch := i, epoch
		g.Go(func() error {
			sub := Request{
				Epoch:   epoch.UTC().Format(time.RFC3339),
				Bodies:  req.Bodies,
				Options: req.Options,
			}
			frame := Frame{Epoch: sub.Epoch}
			parsed, err := s.parseRequest(sub)
			if err != nil {
				frame.Error = err.Error()
			} else {
				frame.JD = parsed.jd
				res, err := s.computeParsed(gctx, sub, parsed, "frame")
				if err != nil {
					frame.Error = err.Error()
				} else {
					frame.Data = res.Collection
				}
			}
			mu.Lock()
			frames[i] = frame
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	result := &AnimateResult{Frames: frames}
	if truncated {
		warning := fmt.Sprintf("animation truncated at %d frames (step %dm over the requested range exceeds the cap)",
			s.frameCap, req.StepMinutes)
		result.Warnings = append(result.Warnings, warning)
		logger.Warnf("[service] %s", warning)
	}
	return result, nil
}
