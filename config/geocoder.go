package config

import (
	"fmt"
	"time"

	"github.com/MakerMama/afterschool-finder/core/factory"
)

// GeocoderConfig configures address resolution.
type GeocoderConfig struct {
	// Provider selects the lookup backend ("nominatim" or "static").
	Provider factory.ModuleConfig `json:"provider"`
	// MinIntervalMS spaces outbound lookups. Nominatim's usage policy asks
	// for at most one request per second.
	MinIntervalMS int `json:"min_interval_ms"`
	// TimeoutSeconds bounds a single lookup; a timeout counts as not found.
	TimeoutSeconds int              `json:"timeout_seconds"`
	Cache          GeocodeCacheConf `json:"cache"`
}

// GeocodeCacheConf selects where lookup results are memoized.
type GeocodeCacheConf struct {
	// Backend is "memory" or "redis".
	Backend  string `json:"backend"`
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	// TTLHours expires entries; zero keeps them forever.
	TTLHours int    `json:"ttl_hours"`
	Prefix   string `json:"prefix"`
}

// SetDefaults applies sane defaults.
func (c *GeocoderConfig) SetDefaults() {
	if c.Provider.Type == "" {
		c.Provider.Type = "nominatim"
	}
	if c.MinIntervalMS == 0 {
		c.MinIntervalMS = 1000
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Backend == "redis" && c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
}

// Validate checks mandatory fields.
func (c GeocoderConfig) Validate() error {
	if c.MinIntervalMS < 0 {
		return fmt.Errorf("min_interval_ms must not be negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %s", c.Cache.Backend)
	}
	return nil
}

// MinInterval returns the lookup spacing as a duration.
func (c GeocoderConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMS) * time.Millisecond
}

// Timeout returns the per-lookup timeout as a duration.
func (c GeocoderConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TTL returns the cache entry lifetime as a duration.
func (c GeocodeCacheConf) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}
