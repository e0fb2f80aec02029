// Package observability provides hooks for metrics, tracing, and logging.
//
// The core packages stay free of any observability backend. Consumers
// register hooks at startup and receive events about document export, LaTeX
// runs and artifact cache lookups.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnExportStart(ctx, source)
//	lines, err := doc.Export()
//	observability.Pipeline().OnExportComplete(ctx, source, len(lines), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	// Export events. source names the scene or "-" for in-memory documents.
	OnExportStart(ctx context.Context, source string)
	OnExportComplete(ctx context.Context, source string, lineCount int, duration time.Duration, err error)

	// OnWrite records a .tex file written to disk.
	OnWrite(ctx context.Context, path string, size int64, err error)
}

// =============================================================================
// Compiler Hooks
// =============================================================================

// CompilerHooks receives events from LaTeX engine runs.
type CompilerHooks interface {
	OnCompileStart(ctx context.Context, engine, texPath string)
	// OnCompileComplete reports the exit code of a finished run, or err if
	// the engine could not be run at all.
	OnCompileComplete(ctx context.Context, engine, texPath string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnExportStart(context.Context, string) {}
func (NoopPipelineHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnWrite(context.Context, string, int64, error) {}

// NoopCompilerHooks is a no-op implementation of CompilerHooks.
type NoopCompilerHooks struct{}

func (NoopCompilerHooks) OnCompileStart(context.Context, string, string) {}
func (NoopCompilerHooks) OnCompileComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	compilerHooks CompilerHooks = NoopCompilerHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCompilerHooks registers custom compiler hooks.
func SetCompilerHooks(h CompilerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compilerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Compiler returns the registered compiler hooks.
func Compiler() CompilerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compilerHooks
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
	pipelineHooks = NoopPipelineHooks{}
	compilerHooks = NoopCompilerHooks{}
	cacheHooks = NoopCacheHooks{}
}
