// Package pipeline provides the core processing pipeline for injectograph.
//
// This package implements the decode → build → filter → render flow shared
// by the CLI and the HTTP API. By centralizing this logic, both entry
// points behave identically and caching happens in exactly one place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read class declarations from the extractor's JSON contract
//  2. Graph: build the dependency graph, optionally filtered to the
//     sub-graph reachable from entry points
//  3. Render: produce output artifacts (JSON, DOT, SVG, PNG, Mermaid)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Direction: digraph.DirectionDownstream,
//	    Entries:   []string{"AppComponent"},
//	    Formats:   []string{pipeline.FormatJSON},
//	}
//	result, err := runner.Execute(ctx, declarationBytes, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := result.Artifacts[pipeline.FormatJSON]
package pipeline

import (
	"time"

	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultDirection is the traversal direction used when none is given.
const DefaultDirection = digraph.DirectionDownstream

// DefaultCacheTTL is how long cached graphs and artifacts stay valid.
// Cache keys are content-derived, so the TTL only bounds disk usage;
// entries can never serve stale data.
const DefaultCacheTTL = 24 * time.Hour

// Format constants for output formats.
const (
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatMermaid = "mermaid"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:    true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatMermaid: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline execution.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Filter options. Empty Entries means the full graph.
	Direction digraph.Direction `json:"direction,omitempty"`
	Entries   []string          `json:"entries,omitempty"`

	// Formats to render. Defaults to ["json"].
	Formats []string `json:"formats,omitempty"`

	// Detailed includes node kinds in diagram labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses the cache for this execution.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration `json:"-"`
}

// withDefaults fills unset fields with pipeline defaults.
func (o Options) withDefaults() Options {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return o
}

// Validate checks the options before any work happens.
func (o Options) Validate() error {
	if o.Direction != "" && !o.Direction.Valid() {
		return errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q", o.Direction)
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
		}
	}
	return nil
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result is the output of one pipeline execution.
type Result struct {
	// Graph is the built (and possibly filtered) graph.
	Graph digraph.Graph

	// Artifacts maps each requested format to its rendered bytes.
	Artifacts map[string][]byte

	// GraphCached is true when the graph came from the cache.
	GraphCached bool

	// Duration is the total execution time.
	Duration time.Duration
}
