package config

import (
	"fmt"
	"time"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address string `json:"address"`
	// RequestsPerMinute limits each client IP. Zero disables the limit.
	RequestsPerMinute int `json:"requests_per_minute"`
	// SessionIdleMinutes drops sessions, with their schedules, after this
	// much inactivity.
	SessionIdleMinutes int `json:"session_idle_minutes"`
	// AllowedOrigins enables CORS for the listed origins.
	AllowedOrigins []string `json:"allowed_origins"`
	// AdminToken protects the search log endpoint. Empty leaves it open.
	AdminToken string `json:"admin_token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = 120
	}
	if c.SessionIdleMinutes == 0 {
		c.SessionIdleMinutes = 120
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative")
	}
	if c.SessionIdleMinutes < 0 {
		return fmt.Errorf("session_idle_minutes must not be negative")
	}
	return nil
}

// SessionIdle returns the idle expiry as a duration.
func (c ServerConfig) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

// CatalogConfig locates the program catalog.
type CatalogConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *CatalogConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "programs.csv"
	}
}

// SearchConfig tunes catalog filtering.
type SearchConfig struct {
	// Workers bounds concurrent program evaluation. Zero uses every CPU.
	Workers int `json:"workers"`
}

// SetDefaults is a no-op; zero workers is a valid setting.
func (c *SearchConfig) SetDefaults() {}

// Validate checks mandatory fields.
func (c SearchConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}
