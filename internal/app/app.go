// Package app wires configuration into the running service: provider,
// registry, cache, journal, HTTP server.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"astromap/internal/astro"
	"astromap/internal/bodies"
	"astromap/internal/cache"
	"astromap/internal/config"
	"astromap/internal/ephem"
	"astromap/internal/logger"
	"astromap/internal/natal"
	"astromap/internal/service"
	"astromap/internal/store"
	"astromap/internal/store/gormstore"
	"astromap/internal/store/sqlite"
	acghttp "astromap/internal/transport/http"
)

// App owns the application-level orchestration: build dependencies from
// config, then run the HTTP server until shutdown.
type App struct {
	cfg     *config.Config
	httpSrv *acghttp.Server
	journal store.Journal
}

// NewApp builds the application from config without starting it.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	registry, err := bodies.NewRegistry(cfg.Registry.BodiesPath, cfg.Registry.Watch)
	if err != nil {
		return nil, fmt.Errorf("body registry: %w", err)
	}

	provider, err := buildProvider(cfg.Ephemeris)
	if err != nil {
		return nil, err
	}
	if cfg.Ephemeris.ProbeOnStart {
		if err := probeProvider(provider); err != nil {
			return nil, &service.FatalError{Err: fmt.Errorf("ephemeris provider unreachable: %w", err)}
		}
	}

	var resultCache *cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.New(cfg.Cache.Size, cfg.Cache.TTL())
	}

	journal, err := buildJournal(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("request journal: %w", err)
	}

	var natalProvider natal.Provider
	if cfg.Natal.Enabled {
		natalProvider = natal.NewBuiltinProvider()
	}

	svc, err := service.New(service.Deps{
		Registry:     registry,
		Resolver:     ephem.NewResolver(provider),
		Cache:        resultCache,
		Journal:      journal,
		Natal:        natalProvider,
		Workers:      cfg.Compute.Workers,
		LatStepDeg:   cfg.Compute.LatStepDeg,
		ParanBandDeg: cfg.Compute.ParanBandDeg,
		FrameCap:     cfg.Compute.FrameCap,
	})
	if err != nil {
		journal.Close()
		return nil, err
	}

	httpSrv, err := acghttp.NewServer(acghttp.ServerConfig{
		Addr:            cfg.Server.Addr,
		Service:         svc,
		RecentLimit:     cfg.Store.RecentLimit,
		ReadTimeout:     cfg.Server.ReadTimeout(),
		WriteTimeout:    cfg.Server.WriteTimeout(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout(),
	})
	if err != nil {
		journal.Close()
		return nil, err
	}

	logger.Infof("[app] initialized env=%s provider=%s bodies=%d cache=%v journal=%s",
		cfg.App.Env, provider.Name(), len(registry.Snapshot().Bodies),
		cfg.Cache.Enabled, cfg.Store.Backend)

	return &App{cfg: cfg, httpSrv: httpSrv, journal: journal}, nil
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	defer a.journal.Close()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.httpSrv.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}

func buildProvider(cfg config.EphemerisConfig) (ephem.Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "horizons":
		return ephem.NewHorizonsProvider(cfg.HorizonsURL, cfg.Timeout()), nil
	case "analytic", "":
		return ephem.NewAnalyticProvider(), nil
	default:
		return nil, fmt.Errorf("unknown ephemeris provider %q", cfg.Provider)
	}
}

// probeProvider asks for the sun at the current instant; a failure here means
// the provider is unusable and startup must abort.
func probeProvider(p ephem.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := p.Position(ctx, "sun", astro.JulianDay(time.Now()), 0)
	return err
}

func buildJournal(cfg config.StoreConfig) (store.Journal, error) {
	switch strings.ToLower(cfg.Backend) {
	case "sqlite":
		return sqlite.NewJournal(cfg.Path)
	case "gorm":
		return gormstore.NewJournal(cfg.Path)
	case "none", "":
		return store.NopJournal{}, nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Backend)
	}
}
