// Package pipeline turns an editor session into output artifacts.
//
// The CLI and the HTTP server both render through a [Runner], so format
// dispatch, option defaults, and artifact caching behave the same
// everywhere.
//
// # Stages
//
//  1. Project: the session is projected to a [canvas.Diagram] (canvas) or
//     a Graphviz DOT document (nodelink).
//  2. Render: each requested format is produced from that projection.
//     Rasterized formats go through rsvg-convert.
//
// Canvas SVG and JSON are cheap to rebuild and are never cached. PNG, PDF,
// and every nodelink artifact are cached under a key derived from the
// projection hash and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, session, pipeline.Options{
//	    VizType: "canvas",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := res.Artifacts["svg"]
//
// [canvas.Diagram]: github.com/matzehuels/flowboard/pkg/render/canvas.Diagram
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/cache"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultVizType is the default visualization type.
	DefaultVizType = errors.VizCanvas

	// DefaultTheme is the default canvas theme.
	DefaultTheme = "dark"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultTTL is how long cached artifacts live.
	DefaultTTL = 24 * time.Hour
)

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It is JSON-serializable so the HTTP
// shell can accept it as query or body parameters.
type Options struct {
	VizType string   `json:"viz_type,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Canvas options
	Theme       string  `json:"theme,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Interactive bool    `json:"interactive,omitempty"` // embed hover CSS/JS in SVG
	Inspector   bool    `json:"inspector,omitempty"`   // draw the inspector panel in SVG

	// Nodelink options
	Detailed bool `json:"detailed,omitempty"`

	// Raster options
	Scale float64 `json:"scale,omitempty"`

	// Refresh bypasses cache reads. Fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SourceHash is the hash of the projection the artifacts were built from.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo records which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	RenderTime time.Duration
}

// CacheInfo records cache hits per format.
type CacheInfo struct {
	Hits map[string]bool
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool {
	if len(c.Hits) == 0 {
		return false
	}
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults fills in defaults and checks that the viz type,
// formats, and theme are known. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{errors.FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateVizType(o.VizType); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, o.VizType); err != nil {
			return err
		}
	}
	if _, err := canvas.ThemeByName(o.Theme); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "unknown theme %q (want dark or light)", o.Theme)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must not be negative")
	}
	return nil
}

// IsNodelink reports whether this run exports through Graphviz.
func (o *Options) IsNodelink() bool { return o.VizType == errors.VizNodelink }

// canvasOptions returns the projection options for a canvas run.
func (o *Options) canvasOptions() []canvas.Option {
	th, _ := canvas.ThemeByName(o.Theme)
	opts := []canvas.Option{canvas.WithTheme(th)}
	if o.Width > 0 || o.Height > 0 {
		opts = append(opts, canvas.WithSize(o.Width, o.Height))
	}
	return opts
}

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{VizType: o.VizType, Format: format}
	if o.IsNodelink() {
		k.Detailed = o.Detailed
	} else {
		k.Theme = o.Theme
		k.Interactive = o.Interactive
		k.Inspector = o.Inspector
	}
	if format == errors.FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// Cacheable reports whether format is worth caching for this run.
func (o *Options) Cacheable(format string) bool {
	if o.IsNodelink() {
		return true
	}
	return format == errors.FormatPNG || format == errors.FormatPDF
}
