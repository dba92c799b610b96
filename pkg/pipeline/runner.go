package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tillvoss/archsketch/pkg/cache"
	"github.com/tillvoss/archsketch/pkg/extract"
	"github.com/tillvoss/archsketch/pkg/layout"
	"github.com/tillvoss/archsketch/pkg/observability"
	"github.com/tillvoss/archsketch/pkg/render"
	"github.com/tillvoss/archsketch/pkg/sketch"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete extract → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Extract
	extractStart := time.Now()
	g, extractHit, err := r.ExtractWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ExtractHit = extractHit

	r.Logger.Info("extracted sketch",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ExtractTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	laid, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Graph = laid
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := sketch.MarshalGraph(laid); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"width", opts.Width,
		"height", opts.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, laid, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExtractWithCacheInfo extracts a graph with caching and reports whether
// the result came from cache. Extraction itself has no failure mode;
// errors can only come from option validation.
func (r *Runner) ExtractWithCacheInfo(ctx context.Context, opts Options) (*sketch.Graph, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	key := r.Keyer.TextKey(cache.Hash([]byte(opts.Text)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := sketch.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	observability.Pipeline().OnExtractStart(ctx, len(opts.Text))
	start := time.Now()
	g := extract.Extract(opts.Text)
	observability.Pipeline().OnExtractComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start))

	if data, err := sketch.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return g, false, nil
}

// Extract is a convenience wrapper discarding the cache hit info.
func (r *Runner) Extract(ctx context.Context, opts Options) (*sketch.Graph, error) {
	g, _, err := r.ExtractWithCacheInfo(ctx, opts)
	return g, err
}

// LayoutWithCacheInfo lays out a graph with caching. The returned graph
// is the laid-out one: on a cache hit it is the deserialized cached copy,
// otherwise g itself, mutated in place.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *sketch.Graph, opts Options) (*sketch.Graph, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	graphData, err := sketch.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	key := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := sketch.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Deserialization failure falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Pipeline().OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()
	layout.LayoutWithConfig(g, opts.Width, opts.Height, opts.Layout)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(start))

	if data, err := sketch.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return g, false, nil
}

// Layout is a convenience wrapper discarding the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *sketch.Graph, opts Options) (*sketch.Graph, error) {
	laid, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return laid, err
}

// RenderWithCacheInfo renders artifacts for every requested format with
// caching. The hit flag is true only when all formats came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *sketch.Graph, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := sketch.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderFormats(g, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper discarding the cache hit info.
func (r *Runner) Render(ctx context.Context, g *sketch.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// renderFormats produces artifact bytes for each requested format.
func renderFormats(g *sketch.Graph, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			svgOpts := []render.SVGOption{render.WithBackground(opts.Background)}
			if opts.NoLabels {
				svgOpts = append(svgOpts, render.WithoutLabels())
			}
			out[format] = render.SVG(g, opts.Width, opts.Height, svgOpts...)
		case FormatDOT:
			out[format] = []byte(render.ToDOT(g, opts.Height))
		case FormatPNG:
			png, err := render.RenderPNG(render.ToDOT(g, opts.Height))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			out[format] = png
		case FormatJSON:
			data, err := sketch.MarshalGraph(g)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			out[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
