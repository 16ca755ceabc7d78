package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, t *tree.Tree, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Tree:      t,
		TreeHash:  TreeHash(t),
		Issues:    Inspect(t, opts.Logger),
		Artifacts: make(map[string][]byte),
	}
	if t != nil {
		result.Stats.NodeCount = len(t.Nodes)
		result.Stats.EdgeCount = len(t.Edges)
	}

	// Stage 1: Build
	buildStart := time.Now()
	scene, sceneHit, err := r.BuildWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = scene
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.CommandCount = len(scene.Commands)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("built scene",
		"nodes", result.Stats.NodeCount,
		"commands", result.Stats.CommandCount,
		"cached", sceneHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, t, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds the scene for t with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, t *tree.Tree, opts Options) (render.Scene, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return render.Scene{}, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	cacheKey := r.Keyer.SceneKey(TreeHash(t), opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached render.Scene
			if err := json.Unmarshal(data, &cached); err == nil {
				cacheHooks.OnCacheHit(ctx, "scene")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Debug("scene cache read failed", "error", err)
		}
	}
	cacheHooks.OnCacheMiss(ctx, "scene")

	nodeCount := 0
	if t != nil {
		nodeCount = len(t.Nodes)
	}
	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.Engine, nodeCount)
	scene := Build(t, opts.Width, opts.Layout)
	hooks.OnLayoutComplete(ctx, opts.Engine, time.Since(start), nil)

	// Cache the result
	if data, err := json.Marshal(scene); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLScene)); err != nil {
			opts.Logger.Debug("scene cache write failed", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "scene", len(data))
		}
	}

	return scene, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, t *tree.Tree, opts Options) (render.Scene, error) {
	scene, _, err := r.BuildWithCacheInfo(ctx, t, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, t *tree.Tree, scene render.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	// Compute cache key from scene data. The graphviz engine and DOT output
	// read the tree, so the tree hash joins the key.
	sceneData, err := json.Marshal(scene)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	cacheKeyHash := cache.Hash(sceneData, []byte(TreeHash(t)))

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	// Render all formats
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, t, scene, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLArtifact)); err != nil {
			opts.Logger.Debug("artifact cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, t *tree.Tree, scene render.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, t, scene, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// TreeHash returns the content hash of t's canonical JSON encoding.
// A nil tree hashes like an empty one.
func TreeHash(t *tree.Tree) string {
	data, err := tree.Marshal(t)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
