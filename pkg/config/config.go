// Package config loads the archsketch TOML configuration file.
//
// The file is optional: every field has a working default and CLI flags
// override file values. Default location is $XDG_CONFIG_HOME/archsketch/
// config.toml (falling back to ~/.config/archsketch/config.toml).
//
// Example:
//
//	[layout]
//	rest_length = 140.0
//	iterations = 80
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "file"    # file | redis | none
//
//	[store]
//	backend = "memory"  # memory | mongo
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tillvoss/archsketch/pkg/layout"
)

// appName is used for the XDG config and cache directories.
const appName = "archsketch"

// Config is the root configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig mirrors layout.Config in TOML form. Zero fields keep the
// engine defaults.
type LayoutConfig struct {
	RestLength   float64 `toml:"rest_length"`
	Spring       float64 `toml:"spring"`
	Iterations   int     `toml:"iterations"`
	RadiusFactor float64 `toml:"radius_factor"`
	Centering    float64 `toml:"centering"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file | redis | none
	Dir       string `toml:"dir"`     // file backend root, defaults to XDG cache dir
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// StoreConfig selects the diagram snapshot store backend.
type StoreConfig struct {
	Backend  string `toml:"backend"` // memory | mongo
	URI      string `toml:"uri"`     // mongo connection string
	Database string `toml:"database"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Backend: "memory", Database: appName},
	}
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields Default() without error; a malformed
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LayoutConfig converts the TOML section to the engine's Config,
// filling unset fields from the engine defaults.
func (c Config) LayoutConfig() layout.Config {
	out := layout.DefaultConfig()
	if c.Layout.RestLength != 0 {
		out.RestLength = c.Layout.RestLength
	}
	if c.Layout.Spring != 0 {
		out.Spring = c.Layout.Spring
	}
	if c.Layout.Iterations != 0 {
		out.Iterations = c.Layout.Iterations
	}
	if c.Layout.RadiusFactor != 0 {
		out.RadiusFactor = c.Layout.RadiusFactor
	}
	if c.Layout.Centering != 0 {
		out.Centering = c.Layout.Centering
	}
	return out
}

// Dir returns the configuration directory using the XDG standard.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the cache directory using the XDG standard.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
