package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchflow/sketchflow/pkg/cache"
	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/errors"
	"github.com/sketchflow/sketchflow/pkg/layout"
	"github.com/sketchflow/sketchflow/pkg/manifest"
	"github.com/sketchflow/sketchflow/pkg/observability"
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

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.Source())
	m, data, err := r.parse(opts)
	result.Stats.ParseTime = time.Since(parseStart)
	if m != nil {
		result.Stats.BlockCount = m.Blocks()
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Source(), result.Stats.BlockCount, result.Stats.ParseTime, err)
	if err != nil {
		return nil, err
	}
	result.Manifest = m

	r.Logger.Info("parsed manifest",
		"source", opts.Source(),
		"blocks", m.Blocks(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, m.Blocks())
	doc, layoutHit, err := r.BuildDocumentWithCacheInfo(ctx, m, data, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, len(doc.Elements), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.ElementCount = len(doc.Elements)
	result.CacheInfo.DocumentHit = layoutHit

	if docData, err := json.Marshal(doc); err == nil {
		result.DocumentHash = cache.Hash(docData)
	}

	r.Logger.Info("assembled document",
		"elements", len(doc.Elements),
		"groups", len(doc.Groups),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse reads and validates the manifest named by the options.
func (r *Runner) Parse(ctx context.Context, opts Options) (*manifest.Manifest, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	m, _, err := r.parse(opts)
	return m, err
}

// parse resolves the manifest bytes and parses them. The raw bytes are
// returned alongside so later stages can derive cache keys from them.
func (r *Runner) parse(opts Options) (*manifest.Manifest, []byte, error) {
	data, err := opts.manifestBytes()
	if err != nil {
		return nil, nil, err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return m, data, nil
}

// BuildDocument assembles the document for a parsed manifest.
func (r *Runner) BuildDocument(ctx context.Context, m *manifest.Manifest, opts Options) (diagram.Document, error) {
	doc, _, err := r.BuildDocumentWithCacheInfo(ctx, m, nil, opts)
	return doc, err
}

// BuildDocumentWithCacheInfo assembles the document with caching and
// returns cache hit info. The manifestData parameter carries the raw
// TOML used for the cache key; passing nil disables caching for this
// call.
func (r *Runner) BuildDocumentWithCacheInfo(ctx context.Context, m *manifest.Manifest, manifestData []byte, opts Options) (diagram.Document, bool, error) {
	r.applyLogger(&opts)

	var cacheKey string
	if manifestData != nil {
		manifestHash := cache.Hash(manifestData)
		cacheKey = r.Keyer.DocumentKey(manifestHash, opts.DocumentKeyOpts())

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				var cached diagram.Document
				if json.Unmarshal(data, &cached) == nil {
					observability.Cache().OnCacheHit(ctx, "document")
					return cached, true, nil
				}
			}
			observability.Cache().OnCacheMiss(ctx, "document")
		}
	}

	b := diagram.New()
	if err := m.BuildWith(b, r.layoutConfig(m, opts)); err != nil {
		return diagram.Document{}, false, err
	}
	title := opts.Title
	if title == "" {
		title = m.Title
	}
	doc, err := b.Assemble(title)
	if err != nil {
		return diagram.Document{}, false, err
	}

	if cacheKey != "" {
		if data, err := json.Marshal(doc); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
			observability.Cache().OnCacheSet(ctx, "document", len(data))
		}
	}

	return doc, false, nil
}

// layoutConfig merges the manifest's [layout] block with the options'
// overrides. Option fields win when set.
func (r *Runner) layoutConfig(m *manifest.Manifest, opts Options) layout.Config {
	cfg := m.Layout.Config()
	if opts.HGap != 0 {
		cfg.HGap = opts.HGap
	}
	if opts.VGap != 0 {
		cfg.VGap = opts.VGap
	}
	if opts.ShapeWidth != 0 {
		cfg.ShapeWidth = opts.ShapeWidth
	}
	if opts.ShapeHeight != 0 {
		cfg.ShapeHeight = opts.ShapeHeight
	}
	return cfg
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc diagram.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	docData, err := json.Marshal(doc)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize document for cache key")
	}
	docHash := cache.Hash(docData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
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

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(doc, format, opts)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc diagram.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
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
