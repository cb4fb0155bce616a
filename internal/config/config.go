// Package config contains the loader and typed model for the osmchactl run configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osm-qa/osmchactl/internal/env"
)

// DefaultBaseURL points at the public OSMCHA API.
const DefaultBaseURL = "https://osmcha.org/api/v1"

// tokenEnvVar names the environment variable carrying the OSMCHA API token.
const tokenEnvVar = "OSMCHA_TOKEN"

// Config models the osmchactl.yaml run configuration.
type Config struct {
	// Users lists OSM usernames to report on. Order matters: it drives the
	// order of the batched API query.
	Users []string `yaml:"users"`
	// BaseURL is the OSMCHA API root. Defaults to the public instance.
	BaseURL string `yaml:"baseURL,omitempty"`
	// PageSize is the changeset listing page size. Defaults to 100.
	PageSize int `yaml:"pageSize,omitempty"`
	// MaxPages bounds the pagination loop; 0 means unbounded.
	MaxPages int `yaml:"maxPages,omitempty"`
	// Concurrency caps simultaneous comment fetches per user; 0 means unbounded.
	Concurrency int `yaml:"concurrency,omitempty"`
	// RequestTimeout is the per-request timeout (e.g. "30s"); empty means none.
	RequestTimeout string `yaml:"requestTimeout,omitempty"`
	// EnvFiles lists .env files consulted for the API token, relative to the
	// config file. The process environment always wins over file values.
	EnvFiles []string `yaml:"envFiles,omitempty"`

	baseDir string
}

// Load reads and parses the YAML config at path and applies defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", absPath, err)
	}

	if len(cfg.Users) == 0 {
		return nil, fmt.Errorf("config %q lists no users", absPath)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("config %q: pageSize must not be negative", absPath)
	}
	cfg.baseDir = filepath.Dir(absPath)

	return &cfg, nil
}

// Timeout parses RequestTimeout, returning 0 when unset.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse requestTimeout %q: %w", c.RequestTimeout, err)
	}
	return d, nil
}

// ResolveToken returns the OSMCHA API token from the process environment or
// the configured env files.
func (c *Config) ResolveToken() (string, error) {
	fileVars, err := env.LoadEnvFiles(c.baseDir, c.EnvFiles)
	if err != nil {
		return "", err
	}

	merged := env.Merge(fileVars, env.FromOS())
	token, ok := merged.Lookup(tokenEnvVar)
	if !ok {
		return "", fmt.Errorf("%s is not set in the environment or configured env files", tokenEnvVar)
	}
	return token, nil
}
