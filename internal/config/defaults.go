package config

import "github.com/spf13/viper"

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_path", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("ephemeris.provider", "analytic")
	v.SetDefault("ephemeris.horizons_url", "https://ssd.jpl.nasa.gov/api/horizons.api")
	v.SetDefault("ephemeris.timeout_seconds", 20)
	v.SetDefault("ephemeris.probe_on_start", false)

	v.SetDefault("compute.workers", 4)
	v.SetDefault("compute.lat_step_deg", 0.5)
	v.SetDefault("compute.paran_band_deg", 2.0)
	v.SetDefault("compute.frame_cap", 100)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl_seconds", 3600)

	v.SetDefault("registry.bodies_path", "")
	v.SetDefault("registry.watch", false)

	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", "data/journal.db")
	v.SetDefault("store.recent_limit", 50)

	v.SetDefault("natal.enabled", false)
}
