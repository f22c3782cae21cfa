package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchItem is one batch entry's outcome: exactly one of Response or Error
// is set.
type BatchItem struct {
	CorrelationID string  `json:"correlation_id"`
	Response      *Result `json:"response,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// BatchResult preserves request order.
type BatchResult struct {
	Results []BatchItem `json:"results"`
}

const maxBatchSize = 50

// Batch processes independent requests; a failing item becomes an error
// record and never aborts its siblings.
func (s *Service) Batch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.Requests) == 0 {
		return nil, validationErrorf("batch requires at least one request")
	}
	if len(req.Requests) > maxBatchSize {
		return nil, validationErrorf("batch size %d exceeds the cap of %d", len(req.Requests), maxBatchSize)
	}

	items := make([]BatchItem, len(req.Requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	var mu sync.Mutex
	for i, sub := range req.Requests {
		i, sub := i, sub
		g.Go(func() error {
			item := BatchItem{CorrelationID: uuid.NewString()}
			res, err := s.computeBatchItem(gctx, sub)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Response = res
			}
			mu.Lock()
			items[i] = item
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return &BatchResult{Results: items}, nil
}

func (s *Service) computeBatchItem(ctx context.Context, req Request) (*Result, error) {
	parsed, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}
	return s.computeParsed(ctx, req, parsed, "batch_item")
}
