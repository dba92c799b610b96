// Package pipeline provides the core sketch pipeline for archsketch.
//
// This package implements the complete extract → layout → render flow
// used by the CLI, the watch loop, and the HTTP API. Centralizing it
// keeps behavior and caching identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Extract: turn raw architecture text into a typed graph
//  2. Layout: compute node positions (circular placement + relaxation)
//  3. Render: generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can run independently or as part of the complete pipeline,
// and each stage result is cached under a key derived from its exact
// inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    "api gateway -> auth service, database",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tillvoss/archsketch/pkg/cache"
	skerrors "github.com/tillvoss/archsketch/pkg/errors"
	"github.com/tillvoss/archsketch/pkg/layout"
	"github.com/tillvoss/archsketch/pkg/sketch"
)

// Default canvas dimensions in canvas units.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return skerrors.New(skerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json)", format)
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

// Options contains all configuration for the sketch pipeline.
// The struct serializes for API requests; runtime-only fields are
// excluded from JSON.
type Options struct {
	// Extract options
	Text string `json:"text"`

	// Layout options. A zero Layout config means engine defaults.
	Width  float64       `json:"width,omitempty"`
	Height float64       `json:"height,omitempty"`
	Layout layout.Config `json:"layout,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"`
	NoLabels   bool     `json:"no_labels,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := skerrors.ValidateText(o.Text); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := skerrors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills unset render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:        o.Width,
		Height:       o.Height,
		RestLength:   o.Layout.RestLength,
		Spring:       o.Layout.Spring,
		Iterations:   o.Layout.Iterations,
		RadiusFactor: o.Layout.RadiusFactor,
		Centering:    o.Layout.Centering,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		Labels:     !o.NoLabels,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the laid-out sketch graph.
	Graph *sketch.Graph

	// GraphHash is the content hash of the laid-out graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ExtractTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExtractHit bool
	LayoutHit  bool
	RenderHit  bool
}
