package config

import "time"

// Config is the top-level treeviz configuration, corresponding to config.yaml.
type Config struct {
	Render RenderConfig `yaml:"render" koanf:"render"`
	Cache  CacheConfig  `yaml:"cache" koanf:"cache"`
	Server ServerConfig `yaml:"server" koanf:"server"`
}

// RenderConfig holds the defaults for `treeviz render` and the HTTP surface.
type RenderConfig struct {
	Width   float64  `yaml:"width" koanf:"width"`
	Formats []string `yaml:"formats" koanf:"formats"`
	Engine  string   `yaml:"engine" koanf:"engine"`
	Theme   string   `yaml:"theme" koanf:"theme"` // path to a TOML theme, empty for the built-in one
	Legend  bool     `yaml:"legend" koanf:"legend"`
	Scale   float64  `yaml:"scale" koanf:"scale"`
}

// CacheConfig selects and tunes the memo cache.
// Redis is used when RedisAddr is set, the file cache otherwise.
type CacheConfig struct {
	Disabled      bool          `yaml:"disabled" koanf:"disabled"`
	Dir           string        `yaml:"dir" koanf:"dir"`
	RedisAddr     string        `yaml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string        `yaml:"redis_password" koanf:"redis_password"`
	RedisDB       int           `yaml:"redis_db" koanf:"redis_db"`
	TTL           time.Duration `yaml:"ttl" koanf:"ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr" koanf:"addr"`
	CORSAllowAll bool          `yaml:"cors_allow_all" koanf:"cors_allow_all"`
	Timeout      time.Duration `yaml:"timeout" koanf:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" koanf:"max_body_bytes"`
}
