package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/cache"
	"github.com/matzehuels/flowboard/pkg/editor"
	"github.com/matzehuels/flowboard/pkg/observability"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/render/nodelink"
)

// Runner renders sessions with caching. It holds no per-run state, so one
// Runner may serve many goroutines as long as each session is accessed by
// one goroutine at a time.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer.
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
		TTL:    DefaultTTL,
	}
}

// Execute projects s and renders every requested format. Callers holding a
// lock on s should call Project under the lock and Render after releasing
// it.
func (r *Runner) Execute(ctx context.Context, s *editor.Session, opts Options) (*Result, error) {
	src, err := r.Project(s, &opts)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, src, opts)
}

// Source is a projected session, ready to render without touching the
// session again.
type Source struct {
	Diagram canvas.Diagram
	DOT     string
	Hash    string
	Nodes   int
	Edges   int
}

// Project validates opts and projects s for the requested visualization.
func (r *Runner) Project(s *editor.Session, opts *Options) (Source, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Source{}, err
	}
	r.applyLogger(opts)

	var src Source
	if opts.IsNodelink() {
		g := s.Graph()
		src.DOT = nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Catalog: s.Catalog()})
		src.Hash = cache.Hash([]byte(src.DOT))
		src.Nodes = g.NodeCount()
		for c := range g.Connections() {
			if g.Valid(c) {
				src.Edges++
			}
		}
		return src, nil
	}

	src.Diagram = s.Diagram(opts.canvasOptions()...)
	h, err := cache.HashJSON(src.Diagram)
	if err != nil {
		return Source{}, fmt.Errorf("hash diagram: %w", err)
	}
	src.Hash = h
	src.Nodes = len(src.Diagram.Nodes)
	src.Edges = len(src.Diagram.Edges)
	return src, nil
}

// Render produces the artifacts for a projected source.
func (r *Runner) Render(ctx context.Context, src Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	res := &Result{
		SourceHash: src.Hash,
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
		Stats:      Stats{NodeCount: src.Nodes, EdgeCount: src.Edges},
		CacheInfo:  CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}

	start := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.renderFormat(ctx, src, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		res.Artifacts[format] = data
		res.CacheInfo.Hits[format] = hit
	}
	res.Stats.RenderTime = time.Since(start)

	opts.Logger.Debug("rendered artifacts",
		"viz", opts.VizType,
		"formats", opts.Formats,
		"nodes", src.Nodes,
		"edges", src.Edges,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// renderFormat renders one format, consulting the cache for the expensive
// ones.
func (r *Runner) renderFormat(ctx context.Context, src Source, format string, opts Options) ([]byte, bool, error) {
	hooks := observability.Cache()
	cacheable := opts.Cacheable(format)
	key := r.Keyer.ArtifactKey(src.Hash, opts.ArtifactKeyOpts(format))

	if cacheable && !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if hit {
			hooks.OnCacheHit(ctx, format)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, format)
	}

	data, err := r.renderUncached(ctx, src, format, opts)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			hooks.OnCacheSet(ctx, format, len(data))
		}
	}
	return data, false, nil
}

func (r *Runner) renderUncached(ctx context.Context, src Source, format string, opts Options) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.VizType, format)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	if opts.IsNodelink() {
		data, err = RenderNodelink(src.DOT, format, opts)
	} else {
		data, err = RenderCanvas(src.Diagram, format, opts)
	}

	hooks.OnRenderComplete(ctx, opts.VizType, format, len(data), time.Since(start), err)
	return data, err
}

// Close releases the cache.
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
