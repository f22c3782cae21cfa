package bodies

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"astromap/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Snapshot is the immutable view handed to callers. Bodies preserves catalog
// order; the index map is keyed by lowercase id.
type Snapshot struct {
	Version  int64
	LoadedAt time.Time
	Bodies   []Body
	index    map[string]int
}

// Body looks up an entry by id (case-insensitive).
func (s Snapshot) Body(id string) (Body, bool) {
	idx, ok := s.index[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Body{}, false
	}
	return s.Bodies[idx], true
}

// Registry manages the body catalog. A configured catalog file can be watched
// and reloaded as a whole-snapshot swap; the embedded default catalog is used
// when no path is given.
type Registry struct {
	path string
	v    *viper.Viper

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewRegistry builds a registry from a catalog file, or from the embedded
// defaults when path is empty. With watch set, file changes swap the snapshot
// in place; without it the catalog is read once and stays fixed.
func NewRegistry(path string, watch bool) (*Registry, error) {
	r := &Registry{path: strings.TrimSpace(path)}

	if r.path == "" {
		catalog, err := defaultCatalog()
		if err != nil {
			return nil, err
		}
		snap, err := buildSnapshot(catalog, 1)
		if err != nil {
			return nil, err
		}
		r.snapshot = snap
		return r, nil
	}

	v := viper.New()
	v.SetConfigFile(r.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read body catalog failed: %w", err)
	}
	r.v = v
	if err := r.reload(); err != nil {
		return nil, err
	}
	if watch {
		v.OnConfigChange(func(evt fsnotify.Event) {
			if err := r.reload(); err != nil {
				logger.Errorf("[bodies] catalog reload failed: %v", err)
				return
			}
			logger.Infof("[bodies] catalog reloaded path=%s bodies=%d", r.path, len(r.Snapshot().Bodies))
		})
		v.WatchConfig()
	}
	return r, nil
}

func (r *Registry) reload() error {
	if err := r.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read body catalog failed: %w", err)
	}
	var file struct {
		Bodies []Body `mapstructure:"bodies"`
	}
	if err := r.v.Unmarshal(&file); err != nil {
		return fmt.Errorf("parse body catalog failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	snap, err := buildSnapshot(file.Bodies, r.snapshot.Version+1)
	if err != nil {
		return err
	}
	r.snapshot = snap
	return nil
}

func buildSnapshot(catalog []Body, version int64) (Snapshot, error) {
	if len(catalog) == 0 {
		return Snapshot{}, fmt.Errorf("body catalog is empty")
	}
	bodiesCopy := make([]Body, 0, len(catalog))
	index := make(map[string]int, len(catalog))
	for _, b := range catalog {
		id := strings.ToLower(strings.TrimSpace(b.ID))
		if id == "" {
			return Snapshot{}, fmt.Errorf("body catalog entry without id")
		}
		if _, dup := index[id]; dup {
			return Snapshot{}, fmt.Errorf("duplicate body id %q", id)
		}
		cat, ok := ParseCategory(string(b.Category))
		if !ok {
			return Snapshot{}, fmt.Errorf("body %q has unknown category %q", id, b.Category)
		}
		b.ID = id
		b.Category = cat
		index[id] = len(bodiesCopy)
		bodiesCopy = append(bodiesCopy, b)
	}
	return Snapshot{
		Version:  version,
		LoadedAt: time.Now(),
		Bodies:   bodiesCopy,
		index:    index,
	}, nil
}

// Snapshot returns the current immutable catalog view.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Body looks up a catalog entry by id.
func (r *Registry) Body(id string) (Body, bool) {
	return r.Snapshot().Body(id)
}
