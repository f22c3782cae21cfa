package bodies

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryDefaults(t *testing.T) {
	r, err := NewRegistry("", false)
	require.NoError(t, err)

	snap := r.Snapshot()
	assert.NotEmpty(t, snap.Bodies)
	assert.Equal(t, int64(1), snap.Version)

	sun, ok := r.Body("sun")
	require.True(t, ok)
	assert.Equal(t, CategoryPlanet, sun.Category)
	assert.False(t, sun.RenderOrbOnly)

	// Lookup is case-insensitive.
	_, ok = r.Body("  SUN ")
	assert.True(t, ok)

	// Orb-only entries exist in the default catalog.
	vertex, ok := r.Body("vertex")
	require.True(t, ok)
	assert.True(t, vertex.RenderOrbOnly)

	chiron, ok := r.Body("chiron")
	require.True(t, ok)
	assert.Equal(t, CategoryAsteroid, chiron.Category)
	assert.Equal(t, 2060, chiron.CatalogNumber)

	_, ok = r.Body("nibiru")
	assert.False(t, ok)
}

const oneBodyCatalog = `bodies:
  - id: sun
    name: Sun
    category: planet
    influence_radius_miles: 150
`

const twoBodyCatalog = oneBodyCatalog + `  - id: moon
    name: Moon
    category: planet
    influence_radius_miles: 150
`

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRegistryWatchDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	writeCatalog(t, path, oneBodyCatalog)

	r, err := NewRegistry(path, false)
	require.NoError(t, err)
	require.Len(t, r.Snapshot().Bodies, 1)

	writeCatalog(t, path, twoBodyCatalog)
	time.Sleep(300 * time.Millisecond)

	snap := r.Snapshot()
	assert.Equal(t, int64(1), snap.Version, "catalog must stay fixed without watch")
	assert.Len(t, snap.Bodies, 1)
}

func TestRegistryWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	writeCatalog(t, path, oneBodyCatalog)

	r, err := NewRegistry(path, true)
	require.NoError(t, err)
	require.Len(t, r.Snapshot().Bodies, 1)

	writeCatalog(t, path, twoBodyCatalog)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if r.Snapshot().Version > 1 {
			break
		}
		time.Sleep(25 * time.Millisecond)
	}
	snap := r.Snapshot()
	require.Greater(t, snap.Version, int64(1), "watched catalog must reload on change")
	assert.Len(t, snap.Bodies, 2)
}

func TestBuildSnapshotRejectsBadEntries(t *testing.T) {
	_, err := buildSnapshot(nil, 1)
	assert.Error(t, err)

	_, err = buildSnapshot([]Body{{ID: "", Category: CategoryPlanet}}, 1)
	assert.Error(t, err)

	_, err = buildSnapshot([]Body{
		{ID: "sun", Category: CategoryPlanet},
		{ID: "Sun", Category: CategoryPlanet},
	}, 1)
	assert.Error(t, err, "duplicate ids must be rejected")

	_, err = buildSnapshot([]Body{{ID: "x", Category: "comet"}}, 1)
	assert.Error(t, err, "unknown category must be rejected")
}

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory(" Fixed_Star ")
	assert.True(t, ok)
	assert.Equal(t, CategoryFixedStar, cat)

	_, ok = ParseCategory("satellite")
	assert.False(t, ok)
}
