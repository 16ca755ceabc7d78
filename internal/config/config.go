// Package config loads treeviz settings from a YAML file with TREEVIZ_*
// environment overrides.
//
// Nested keys are addressed in the environment with a double underscore:
// TREEVIZ_RENDER__WIDTH=900 sets render.width, TREEVIZ_CACHE__REDIS_ADDR
// sets cache.redis_addr. Comma-separated values fill lists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TREEVIZ_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Overlay environment variables: TREEVIZ_RENDER__WIDTH -> render.width, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration to the given YAML file path, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative")
	}
	if c.Cache.RedisDB < 0 {
		return fmt.Errorf("cache.redis_db must be non-negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must be non-negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	return nil
}

// PipelineOptions converts the render section to pipeline options.
// The theme path is not resolved here; see theme.Load.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Render.Width,
		Formats: append([]string(nil), c.Render.Formats...),
		Engine:  c.Render.Engine,
		Legend:  c.Render.Legend,
		Scale:   c.Render.Scale,
	}
}
