package config

import "time"

// Config is the service's main configuration carrier.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	Compute   ComputeConfig   `yaml:"compute"`
	Cache     CacheConfig     `yaml:"cache"`
	Registry  RegistryConfig  `yaml:"registry"`
	Store     StoreConfig     `yaml:"store"`
	Natal     NatalConfig     `yaml:"natal"`
}

type AppConfig struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	LogPath  string `yaml:"log_path"`
}

type ServerConfig struct {
	Addr                   string `yaml:"addr"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// EphemerisConfig selects and tunes the position provider.
type EphemerisConfig struct {
	Provider       string `yaml:"provider"` // "analytic" | "horizons"
	HorizonsURL    string `yaml:"horizons_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ProbeOnStart   bool   `yaml:"probe_on_start"`
}

func (e EphemerisConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// ComputeConfig tunes line generation.
type ComputeConfig struct {
	Workers      int     `yaml:"workers"`
	LatStepDeg   float64 `yaml:"lat_step_deg"`
	ParanBandDeg float64 `yaml:"paran_band_deg"`
	FrameCap     int     `yaml:"frame_cap"`
}

type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	Size       int  `yaml:"size"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RegistryConfig points at the body catalog. An empty path uses the embedded
// defaults; watch enables hot reload of the file.
type RegistryConfig struct {
	BodiesPath string `yaml:"bodies_path"`
	Watch      bool   `yaml:"watch"`
}

// StoreConfig selects the request journal backend.
type StoreConfig struct {
	Backend     string `yaml:"backend"` // "sqlite" | "gorm" | "none"
	Path        string `yaml:"path"`
	RecentLimit int    `yaml:"recent_limit"`
}

type NatalConfig struct {
	Enabled bool `yaml:"enabled"`
}
