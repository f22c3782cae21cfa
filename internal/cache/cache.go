// Package cache memoizes whole-request results keyed by a deterministic
// request fingerprint. Entries expire by TTL; hits record the computation
// time they saved. There is no single-flight: concurrent identical misses
// each recompute, which is harmless since results are deterministic.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"astromap/internal/logger"
)

// FingerprintInput is the set of request fields that determine a result.
// Anything not listed here must not influence the computation.
type FingerprintInput struct {
	Epoch   string   `json:"epoch"`
	JD      *float64 `json:"jd,omitempty"`
	Bodies  []string `json:"bodies"`
	Options any      `json:"options"`
}

// Fingerprint hashes the input deterministically. The body list is sorted so
// request order does not fragment the cache.
func Fingerprint(in FingerprintInput) (string, error) {
	bodies := append([]string(nil), in.Bodies...)
	sort.Strings(bodies)
	in.Bodies = bodies

	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("fingerprint request: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Entry is a cached result with the cost of the computation it replaces.
type Entry struct {
	Result     []byte
	ComputedIn time.Duration
	InsertedAt time.Time
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Hits        uint64        `json:"hits"`
	Misses      uint64        `json:"misses"`
	Entries     int           `json:"entries"`
	TimeSaved   time.Duration `json:"-"`
	TimeSavedMs float64       `json:"time_saved_ms"`
}

// Cache is a TTL-bounded LRU of serialized results.
type Cache struct {
	lru *expirable.LRU[string, Entry]

	hits        atomic.Uint64
	misses      atomic.Uint64
	timeSavedNs atomic.Int64
}

// New builds a cache holding up to size entries, each expiring ttl after
// insertion. size <= 0 disables the bound; ttl <= 0 disables expiry.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

// Get returns the cached entry for a fingerprint. Expired entries are never
// returned. Hit/miss and time-saved counters are updated as a side effect.
func (c *Cache) Get(fingerprint string) (Entry, bool) {
	entry, ok := c.lru.Get(fingerprint)
	if !ok {
		c.misses.Add(1)
		return Entry{}, false
	}
	c.hits.Add(1)
	c.timeSavedNs.Add(int64(entry.ComputedIn))
	logger.Debugf("[cache] hit fingerprint=%s saved=%s", shortKey(fingerprint), entry.ComputedIn)
	return entry, true
}

// Set stores a result under its fingerprint.
func (c *Cache) Set(fingerprint string, result []byte, computedIn time.Duration) {
	c.lru.Add(fingerprint, Entry{
		Result:     result,
		ComputedIn: computedIn,
		InsertedAt: time.Now(),
	})
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	saved := time.Duration(c.timeSavedNs.Load())
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Entries:     c.lru.Len(),
		TimeSaved:   saved,
		TimeSavedMs: float64(saved) / float64(time.Millisecond),
	}
}

// Purge drops every entry. Counters are kept.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func shortKey(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
