// Package store defines the request journal: a persistent log of served map
// requests used for diagnostics and the journal endpoint.
package store

import (
	"context"

	"astromap/internal/store/model"
)

// Journal persists one record per served request.
type Journal interface {
	// Record appends a request record.
	Record(ctx context.Context, rec *model.RequestRecord) error
	// Recent returns the newest records, up to limit.
	Recent(ctx context.Context, limit int) ([]model.RequestRecord, error)
	// Close releases the backing database.
	Close() error
}

// NopJournal discards everything. Used when journaling is disabled.
type NopJournal struct{}

func (NopJournal) Record(context.Context, *model.RequestRecord) error { return nil }
func (NopJournal) Recent(context.Context, int) ([]model.RequestRecord, error) {
	return nil, nil
}
func (NopJournal) Close() error { return nil }
