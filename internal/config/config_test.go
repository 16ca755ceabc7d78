package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Render.Width != 1200 {
		t.Errorf("expected default width 1200, got %g", cfg.Render.Width)
	}
	if cfg.Render.Engine != "native" {
		t.Errorf("expected default engine %q, got %q", "native", cfg.Render.Engine)
	}
	if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "svg" {
		t.Errorf("expected default formats [svg], got %v", cfg.Render.Formats)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr %q, got %q", ":8080", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	original := DefaultConfig()
	original.Render.Width = 900
	original.Render.Formats = []string{"svg", "png"}
	original.Render.Engine = "graphviz"
	original.Render.Legend = true
	original.Cache.RedisAddr = "localhost:6379"
	original.Cache.TTL = 48 * time.Hour
	original.Server.CORSAllowAll = true

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Render.Width != 900 {
		t.Errorf("width: got %g, want 900", loaded.Render.Width)
	}
	if loaded.Render.Engine != "graphviz" {
		t.Errorf("engine: got %q, want graphviz", loaded.Render.Engine)
	}
	if !loaded.Render.Legend {
		t.Error("legend: got false, want true")
	}
	if len(loaded.Render.Formats) != 2 || loaded.Render.Formats[1] != "png" {
		t.Errorf("formats: got %v", loaded.Render.Formats)
	}
	if loaded.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("redis_addr: got %q", loaded.Cache.RedisAddr)
	}
	if loaded.Cache.TTL != 48*time.Hour {
		t.Errorf("ttl: got %v, want 48h", loaded.Cache.TTL)
	}
	if !loaded.Server.CORSAllowAll {
		t.Error("cors_allow_all: got false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yaml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.Width != DefaultConfig().Render.Width {
		t.Errorf("expected default width, got %g", cfg.Render.Width)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  legend: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Render.Legend {
		t.Error("legend should be loaded from file")
	}
	// Unset keys keep their defaults.
	if cfg.Render.Engine != "native" {
		t.Errorf("engine: got %q, want native", cfg.Render.Engine)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TREEVIZ_RENDER__WIDTH", "640")
	t.Setenv("TREEVIZ_RENDER__FORMATS", "svg,json")
	t.Setenv("TREEVIZ_CACHE__REDIS_ADDR", "redis:6379")
	t.Setenv("TREEVIZ_SERVER__TIMEOUT", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("width: got %g, want 640", cfg.Render.Width)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[1] != "json" {
		t.Errorf("formats: got %v", cfg.Render.Formats)
	}
	if cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("redis_addr: got %q", cfg.Cache.RedisAddr)
	}
	if cfg.Server.Timeout != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", cfg.Server.Timeout)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("render: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad engine", func(c *Config) { c.Render.Engine = "neato" }, true},
		{"bad format", func(c *Config) { c.Render.Formats = []string{"gif"} }, true},
		{"negative width", func(c *Config) { c.Render.Width = -1 }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
