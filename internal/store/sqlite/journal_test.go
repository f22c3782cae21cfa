package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astromap/internal/store/model"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := j.Record(ctx, &model.RequestRecord{
			ID:          uuid.NewString(),
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
			Kind:        "map",
			Epoch:       "2024-03-20T03:06:00Z",
			JD:          2460389.6292,
			Fingerprint: "abc",
			BodyCount:   3,
			Features:    42,
			CacheHit:    i == 2,
			DurationMs:  12.5,
			Status:      "ok",
			Options:     []byte(`{"include_parans":true}`),
		})
		require.NoError(t, err)
	}

	recs, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].CreatedAt.After(recs[1].CreatedAt), "newest first")
	assert.True(t, recs[0].CacheHit)
	assert.Equal(t, "map", recs[0].Kind)
	assert.JSONEq(t, `{"include_parans":true}`, string(recs[0].Options))
}

func TestJournalRejectsNil(t *testing.T) {
	j := newTestJournal(t)
	assert.Error(t, j.Record(context.Background(), nil))
}

func TestJournalEmptyPath(t *testing.T) {
	_, err := NewJournal("  ")
	assert.Error(t, err)
}

func TestJournalRecentDefaultLimit(t *testing.T) {
	j := newTestJournal(t)
	recs, err := j.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
