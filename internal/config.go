package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Transport modes.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Cache    CacheConfig       `yaml:"cache"`
	Upstream UpstreamConfig    `yaml:"upstream"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return c.Upstream.Validate()
}

// ApplicationConfig holds application-level configuration.
//
// Transport controls how the MCP server is exposed:
//   - "stdio" (default): stdin/stdout, for local agent integration.
//   - "http": streamable HTTP endpoint plus health checks.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	Transport string     `yaml:"transport"`
	HTTP      HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Transport, validation.Required, validation.In(TransportStdio, TransportHTTP)),
	); err != nil {
		return err
	}
	if c.Transport == TransportHTTP {
		return c.HTTP.Validate()
	}
	return nil
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CacheConfig holds the on-disk content cache settings.
type CacheConfig struct {
	Path     string `yaml:"path"`
	TTLHours int    `yaml:"ttl_hours"`
}

// TTL returns the cache entry lifetime.
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Validate validates the cache configuration.
func (c *CacheConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.TTLHours, validation.Required, validation.Min(1)),
	)
}

// UpstreamConfig bounds outbound traffic to d3js.org and observablehq.com.
type UpstreamConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// Validate validates the upstream configuration.
func (c *UpstreamConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RequestsPerSecond, validation.Required, validation.Min(0.1)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			Transport: TransportStdio,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Cache: CacheConfig{
			Path:     "./cache",
			TTLHours: 24,
		},
		Upstream: UpstreamConfig{
			RequestsPerSecond: 4,
		},
	}
}
