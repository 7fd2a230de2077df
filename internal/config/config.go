// Package config loads flowboard's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/flowboard/config.toml (falling back to
// ~/.config) unless --config names another path. A missing file yields
// [Default]. Example:
//
//	[render]
//	theme = "light"
//	scale = 3.0
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "6h"
//
//	[[catalog.types]]
//	type = "delay"
//	color = "#f4a261"
//	glyph = "⏱"
//	label = "Delay"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowboard/pkg/catalog"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config holds flowboard configuration.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Catalog CatalogConfig `toml:"catalog"`
}

// RenderConfig holds defaults for `flowboard render` and server exports.
type RenderConfig struct {
	Theme  string  `toml:"theme"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Scale  float64 `toml:"scale"`
}

// ServerConfig configures `flowboard serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend"` // "none", "file", "redis"
	Dir       string `toml:"dir,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	TTL       string `toml:"ttl"`
}

// CatalogConfig adds node types on top of the built-ins.
type CatalogConfig struct {
	Types []catalog.Entry `toml:"types"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{Theme: "dark", Scale: 2},
		Server: ServerConfig{Addr: ":8080", AllowedOrigins: []string{"*"}},
		Cache:  CacheConfig{Backend: CacheFile, TTL: "24h"},
	}
}

// Dir returns the flowboard config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowboard")
}

// Path returns the default config file path.
func Path() string { return filepath.Join(Dir(), "config.toml") }

// Load reads the config at path, or at [Path] when path is empty. A missing
// file is not an error. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, or to [Path] when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return fmt.Errorf("cache.backend %q: want none, file or redis", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New("cache.redis_addr is required for the redis backend")
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	for i, e := range c.Catalog.Types {
		if e.Type == "" {
			return fmt.Errorf("catalog.types[%d]: type is required", i)
		}
	}
	return nil
}

// TTLDuration parses TTL. An empty TTL means no expiry.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("cache.ttl: %w", err)
	}
	return d, nil
}

// CacheDir returns the file cache directory, defaulting to the user cache
// directory.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "flowboard"), nil
}

// BuildCatalog returns the built-in catalog extended with the configured
// types.
func (c *Config) BuildCatalog() *catalog.Catalog {
	if len(c.Catalog.Types) == 0 {
		return catalog.Default()
	}
	return catalog.Extend(c.Catalog.Types...)
}
