package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/tagdex/internal/domain/content"
)

// Config holds the tagdex API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Storage    StorageConfig    `yaml:"storage"`
	Engine     EngineConfig     `yaml:"engine"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// EngineConfig holds ranking and search settings.
type EngineConfig struct {
	DefaultLocale       string         `yaml:"default_locale"`
	DefaultCountryTagID int64          `yaml:"default_country_tag_id"`
	MinResults          int            `yaml:"min_results"`
	DefaultPageSize     int            `yaml:"default_page_size"`
	MaxPageSize         int            `yaml:"max_page_size"`
	RelatedLimits       map[string]int `yaml:"related_limits"` // per content type cap
	CarouselItems       int            `yaml:"carousel_items"`
	AssociationFetch    int            `yaml:"association_fetch_limit"`
	UseSetIntersection  *bool          `yaml:"use_set_intersection"` // default true
}

// SetIntersection reports whether the precomputed intersection path is enabled.
func (e EngineConfig) SetIntersection() bool {
	return e.UseSetIntersection == nil || *e.UseSetIntersection
}

// EnrichmentConfig holds nearby POI lookup settings.
type EnrichmentConfig struct {
	Enabled         bool    `yaml:"enabled"`
	RadiusKm        float64 `yaml:"radius_km"`
	MaxPOIs         int     `yaml:"max_pois"`
	CacheMaxEntries int64   `yaml:"cache_max_entries"`
	CacheTTLSec     int     `yaml:"cache_ttl_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "tagdex:"
	}
	if c.Engine.DefaultLocale == "" {
		c.Engine.DefaultLocale = "es"
	}
	if c.Engine.MinResults <= 0 {
		c.Engine.MinResults = 8
	}
	if c.Engine.DefaultPageSize <= 0 {
		c.Engine.DefaultPageSize = 20
	}
	if c.Engine.MaxPageSize <= 0 {
		c.Engine.MaxPageSize = 100
	}
	if c.Engine.CarouselItems <= 0 {
		c.Engine.CarouselItems = 12
	}
	if c.Engine.AssociationFetch <= 0 {
		c.Engine.AssociationFetch = 50
	}
	if c.Enrichment.RadiusKm <= 0 {
		c.Enrichment.RadiusKm = 1
	}
	if c.Enrichment.MaxPOIs <= 0 {
		c.Enrichment.MaxPOIs = 10
	}
	if c.Enrichment.CacheMaxEntries <= 0 {
		c.Enrichment.CacheMaxEntries = 10000
	}
	if c.Enrichment.CacheTTLSec <= 0 {
		c.Enrichment.CacheTTLSec = 3600
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Engine.DefaultCountryTagID < 0 {
		return fmt.Errorf("engine.default_country_tag_id must be non-negative, got %d", c.Engine.DefaultCountryTagID)
	}
	if c.Engine.DefaultPageSize > c.Engine.MaxPageSize {
		return fmt.Errorf(
			"engine.default_page_size (%d) must not exceed engine.max_page_size (%d)",
			c.Engine.DefaultPageSize, c.Engine.MaxPageSize,
		)
	}
	for name, limit := range c.Engine.RelatedLimits {
		if !content.Type(name).IsValid() || content.Type(name) == content.Property {
			return fmt.Errorf("engine.related_limits: unknown related content type %q", name)
		}
		if limit <= 0 {
			return fmt.Errorf("engine.related_limits.%s must be positive, got %d", name, limit)
		}
	}
	return nil
}

// Limits returns the configured per-type caps of related content.
func (e EngineConfig) Limits() map[content.Type]int {
	out := make(map[content.Type]int, len(e.RelatedLimits))
	for name, n := range e.RelatedLimits {
		out[content.Type(name)] = n
	}
	return out
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
