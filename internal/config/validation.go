package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	level := strings.ToLower(strings.TrimSpace(cfg.App.LogLevel))
	if !validLogLevels[level] {
		return fmt.Errorf("app.log_level must be one of debug/info/warn/error, got %q", cfg.App.LogLevel)
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	switch strings.ToLower(cfg.Ephemeris.Provider) {
	case "analytic":
	case "horizons":
		if strings.TrimSpace(cfg.Ephemeris.HorizonsURL) == "" {
			return fmt.Errorf("ephemeris.horizons_url required for the horizons provider")
		}
	default:
		return fmt.Errorf("ephemeris.provider must be analytic or horizons, got %q", cfg.Ephemeris.Provider)
	}
	if cfg.Ephemeris.TimeoutSeconds <= 0 {
		return fmt.Errorf("ephemeris.timeout_seconds must be positive")
	}

	if cfg.Compute.Workers <= 0 {
		return fmt.Errorf("compute.workers must be positive")
	}
	if cfg.Compute.LatStepDeg <= 0 || cfg.Compute.LatStepDeg > 10 {
		return fmt.Errorf("compute.lat_step_deg must be in (0, 10], got %v", cfg.Compute.LatStepDeg)
	}
	if cfg.Compute.ParanBandDeg <= 0 || cfg.Compute.ParanBandDeg > 30 {
		return fmt.Errorf("compute.paran_band_deg must be in (0, 30], got %v", cfg.Compute.ParanBandDeg)
	}
	if cfg.Compute.FrameCap <= 0 {
		return fmt.Errorf("compute.frame_cap must be positive")
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.Size <= 0 {
			return fmt.Errorf("cache.size must be positive when the cache is enabled")
		}
		if cfg.Cache.TTLSeconds <= 0 {
			return fmt.Errorf("cache.ttl_seconds must be positive when the cache is enabled")
		}
	}

	switch strings.ToLower(cfg.Store.Backend) {
	case "sqlite", "gorm":
		if strings.TrimSpace(cfg.Store.Path) == "" {
			return fmt.Errorf("store.path required for backend %q", cfg.Store.Backend)
		}
	case "none", "":
	default:
		return fmt.Errorf("store.backend must be sqlite, gorm or none, got %q", cfg.Store.Backend)
	}
	if cfg.Store.RecentLimit < 0 {
		return fmt.Errorf("store.recent_limit cannot be negative")
	}
	return nil
}
