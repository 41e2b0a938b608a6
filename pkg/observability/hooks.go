// Package observability provides hooks for diagnostics around graph
// building, filtering, and caching.
//
// The graph engine itself performs no I/O and keeps no state, but callers
// often want to know about data-quality anomalies it tolerates silently:
// entry points that name no node, cycle entries dropped as inconsistent,
// cache hits and misses. This package exposes those events without adding
// hard dependencies on any logging or metrics backend.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and lets different backends plug in without touching the core.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFilterHooks(&myFilterHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Filter().OnEntrySkipped(id)
package observability

import "sync"

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from graph construction.
type BuildHooks interface {
	// OnBuildComplete records a successful build with result counts.
	OnBuildComplete(nodeCount, edgeCount, cycleCount int)
}

// =============================================================================
// Filter Hooks
// =============================================================================

// FilterHooks receives events from sub-graph filtering.
type FilterHooks interface {
	// OnEntrySkipped records an entry point that names no node in the graph.
	OnEntrySkipped(id string)

	// OnCycleDropped records a cycle entry whose members survived filtering
	// but whose shape or steps were inconsistent with the graph's edges.
	OnCycleDropped(cycle []string)

	// OnFilterComplete records a completed filter pass with result counts.
	OnFilterComplete(direction string, entryCount, nodeCount, edgeCount int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildComplete(int, int, int) {}

// NoopFilterHooks is a no-op implementation of FilterHooks.
type NoopFilterHooks struct{}

func (NoopFilterHooks) OnEntrySkipped(string)                  {}
func (NoopFilterHooks) OnCycleDropped([]string)                {}
func (NoopFilterHooks) OnFilterComplete(string, int, int, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks  BuildHooks  = NoopBuildHooks{}
	filterHooks FilterHooks = NoopFilterHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any builds.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetFilterHooks registers custom filter hooks.
// This should be called once at application startup before any filtering.
func SetFilterHooks(h FilterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		filterHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache use.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Filter returns the registered filter hooks.
func Filter() FilterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return filterHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	filterHooks = NoopFilterHooks{}
	cacheHooks = NoopCacheHooks{}
}
