// Package pipeline provides the core diagram generation pipeline.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read and validate the TOML manifest
//  2. Layout: Build the element document from the manifest's pattern blocks
//  3. Render: Generate output artifacts in various formats
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ManifestPath: "flow.toml",
//	    Formats:      []string{"excalidraw", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scene := result.Artifacts["excalidraw"]
//
// Run individual stages:
//
//	// Parse only
//	m, err := runner.Parse(ctx, opts)
//
//	// Layout with a parsed manifest
//	doc, err := runner.BuildDocument(ctx, m, opts)
//
//	// Render with an existing document
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchflow/sketchflow/pkg/cache"
	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/errors"
	"github.com/sketchflow/sketchflow/pkg/manifest"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPNGScale is the raster scale for PNG output. 2x suits
	// high-DPI displays.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatExcalidraw = "excalidraw"
	FormatJSON       = "json"
	FormatDOT        = "dot"
	FormatSVG        = "svg"
	FormatPNG        = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatExcalidraw: true,
	FormatJSON:       true,
	FormatDOT:        true,
	FormatSVG:        true,
	FormatPNG:        true,
}

// DefaultFormats is used when no formats are requested.
var DefaultFormats = []string{FormatExcalidraw}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of Manifest (inline TOML) or
	// ManifestPath must be set.
	Manifest     string `json:"manifest,omitempty"`
	ManifestPath string `json:"manifest_path,omitempty"`
	Title        string `json:"title,omitempty"` // overrides the manifest title

	// Layout options. Zero values keep the layout package defaults.
	HGap        float64 `json:"h_gap,omitempty"`
	VGap        float64 `json:"v_gap,omitempty"`
	ShapeWidth  float64 `json:"shape_width,omitempty"`
	ShapeHeight float64 `json:"shape_height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // node-link labels carry ids and positions
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses the cache for every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manifest is the parsed manifest.
	Manifest *manifest.Manifest

	// Document is the assembled element document.
	Document diagram.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount   int
	ElementCount int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // Whether the assembled document came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: excalidraw, json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Manifest == "" && o.ManifestPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "manifest or manifest_path is required")
	}
	if o.Manifest != "" && o.ManifestPath != "" {
		return errors.New(errors.ErrCodeInvalidInput, "manifest and manifest_path are mutually exclusive")
	}
	if err := errors.ValidateTitle(o.Title); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Source names the manifest origin for logging and hooks.
func (o *Options) Source() string {
	if o.ManifestPath != "" {
		return o.ManifestPath
	}
	return "inline"
}

// manifestBytes resolves the raw manifest TOML.
func (o *Options) manifestBytes() ([]byte, error) {
	if o.ManifestPath != "" {
		data, err := os.ReadFile(o.ManifestPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %s", o.ManifestPath)
		}
		return data, nil
	}
	return []byte(o.Manifest), nil
}

// DocumentKeyOpts returns cache key options for document assembly.
func (o *Options) DocumentKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		HGap:        o.HGap,
		VGap:        o.VGap,
		ShapeWidth:  o.ShapeWidth,
		ShapeHeight: o.ShapeHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}
