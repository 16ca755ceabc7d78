package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TREEVIZ_"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:   pipeline.DefaultWidth,
			Formats: []string{pipeline.FormatSVG},
			Engine:  pipeline.DefaultEngine,
			Scale:   pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			TTL: cache.TTLArtifact,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Timeout:      30 * time.Second,
			MaxBodyBytes: 8 << 20,
		},
	}
}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/treeviz/config.yaml on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "treeviz.yaml"
	}
	return filepath.Join(dir, "treeviz", "config.yaml")
}
