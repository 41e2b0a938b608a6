package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/injectograph/injectograph/pkg/cache"
	"github.com/injectograph/injectograph/pkg/decl"
	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/observability"
	"github.com/injectograph/injectograph/pkg/render"
)

// Runner executes the pipeline with a shared cache and logger.
// A single Runner is safe for concurrent use: all per-execution state is
// local to Execute.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner.
// A nil cache disables caching (NullCache); a nil logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, logger: logger}
}

// Execute runs decode → build → filter → render over raw declaration JSON.
// The built-and-filtered graph is cached keyed by the sha256 of input plus
// the filter options; rendered artifacts are cached by graph hash and
// format.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	start := time.Now()

	g, cached, err := r.graph(ctx, input, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}

	res := &Result{
		Graph:       g,
		Artifacts:   artifacts,
		GraphCached: cached,
		Duration:    time.Since(start),
	}
	r.logger.Debug("pipeline complete",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"cycles", len(g.CircularDependencies),
		"cached", cached,
		"duration", res.Duration)
	return res, nil
}

// Graph runs only the decode → build → filter stages.
func (r *Runner) Graph(ctx context.Context, input []byte, opts Options) (digraph.Graph, error) {
	if err := opts.Validate(); err != nil {
		return digraph.Graph{}, err
	}
	g, _, err := r.graph(ctx, input, opts.withDefaults())
	return g, err
}

func (r *Runner) graph(ctx context.Context, input []byte, opts Options) (digraph.Graph, bool, error) {
	key := cache.GraphKey(cache.Hash(input), cache.GraphKeyOpts{
		Direction: string(opts.Direction),
		Entries:   opts.Entries,
	})

	if !opts.Refresh {
		if data, hit, err := r.cache.Get(ctx, key); err != nil {
			r.logger.Warn("graph cache read failed", "err", err)
		} else if hit {
			g, err := render.ReadGraph(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit("graph")
				return g, true, nil
			}
			r.logger.Warn("discarding corrupt graph cache entry", "err", err)
		}
	}
	observability.Cache().OnCacheMiss("graph")

	classes, err := decl.ReadJSON(bytes.NewReader(input))
	if err != nil {
		return digraph.Graph{}, false, err
	}
	g, err := digraph.Build(classes)
	if err != nil {
		return digraph.Graph{}, false, err
	}
	g, err = digraph.Filter(g, opts.Direction, opts.Entries)
	if err != nil {
		return digraph.Graph{}, false, err
	}

	if data, err := render.MarshalGraph(g); err == nil {
		if err := r.cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
			r.logger.Warn("graph cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet("graph", len(data))
		}
	}
	return g, false, nil
}

// renderFormat produces one artifact, consulting the artifact cache for
// the expensive raster formats.
func (r *Runner) renderFormat(ctx context.Context, g digraph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return render.MarshalGraph(g)
	case FormatDOT:
		return []byte(render.ToDOT(g, render.DOTOptions{Detailed: opts.Detailed})), nil
	case FormatMermaid:
		return []byte(render.ToMermaid(g)), nil
	}

	// SVG and PNG go through Graphviz; cache them by graph content.
	graphJSON, err := render.MarshalGraph(g)
	if err != nil {
		return nil, err
	}
	key := cache.ArtifactKey(cache.Hash(graphJSON), format)
	if !opts.Refresh {
		if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit("artifact")
			return data, nil
		}
	}
	observability.Cache().OnCacheMiss("artifact")

	dot := render.ToDOT(g, render.DOTOptions{Detailed: opts.Detailed})
	var data []byte
	switch format {
	case FormatSVG:
		data, err = render.RenderSVG(dot)
	case FormatPNG:
		data, err = render.RenderPNG(dot)
	}
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		r.logger.Warn("artifact cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet("artifact", len(data))
	}
	return data, nil
}
