package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterministic(t *testing.T) {
	jd := 2460389.5
	a := FingerprintInput{
		Epoch:   "2024-03-20T03:06:00Z",
		JD:      &jd,
		Bodies:  []string{"sun", "moon", "mars"},
		Options: map[string]any{"include_parans": true},
	}

	fp1, err := Fingerprint(a)
	require.NoError(t, err)
	fp2, err := Fingerprint(a)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64)
}

func TestFingerprintBodyOrderInsensitive(t *testing.T) {
	base := FingerprintInput{Epoch: "2024-03-20T03:06:00Z", Bodies: []string{"sun", "moon"}}
	swapped := FingerprintInput{Epoch: "2024-03-20T03:06:00Z", Bodies: []string{"moon", "sun"}}

	fp1, err := Fingerprint(base)
	require.NoError(t, err)
	fp2, err := Fingerprint(swapped)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)
}

func TestFingerprintSensitiveToInputs(t *testing.T) {
	base := FingerprintInput{Epoch: "2024-03-20T03:06:00Z", Bodies: []string{"sun"}}

	fpBase, err := Fingerprint(base)
	require.NoError(t, err)

	other := base
	other.Epoch = "2024-03-20T03:07:00Z"
	fpEpoch, err := Fingerprint(other)
	require.NoError(t, err)
	assert.NotEqual(t, fpBase, fpEpoch)

	withOpts := base
	withOpts.Options = map[string]any{"include_parans": false}
	fpOpts, err := Fingerprint(withOpts)
	require.NoError(t, err)
	assert.NotEqual(t, fpBase, fpOpts)
}

func TestCacheHitMissStats(t *testing.T) {
	c := New(8, time.Minute)

	_, ok := c.Get("fp1")
	assert.False(t, ok)

	c.Set("fp1", []byte(`{"type":"FeatureCollection"}`), 40*time.Millisecond)

	entry, ok := c.Get("fp1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"type":"FeatureCollection"}`), entry.Result)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 40*time.Millisecond, stats.TimeSaved)
	assert.InDelta(t, 40.0, stats.TimeSavedMs, 1e-9)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(8, 30*time.Millisecond)
	c.Set("fp1", []byte("r"), time.Millisecond)

	_, ok := c.Get("fp1")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("fp1")
	assert.False(t, ok, "entries must never be served past their TTL")
}

func TestCacheEviction(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)
	c.Set("c", []byte("3"), 0)

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted at capacity")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCachePurge(t *testing.T) {
	c := New(8, time.Minute)
	c.Set("a", []byte("1"), 0)
	c.Purge()
	assert.Equal(t, 0, c.Stats().Entries)
}
