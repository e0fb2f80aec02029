package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzdoc/pkg/observability"
)

// logHooks reports pipeline, compiler and cache events at debug level, so
// they show up with --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnExportStart(_ context.Context, source string) {
	h.logger.Debug("export started", "source", source)
}

func (h logHooks) OnExportComplete(_ context.Context, source string, lineCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("export finished", "source", source, "lines", lineCount, "duration", d)
}

func (h logHooks) OnWrite(_ context.Context, path string, size int64, err error) {
	h.logger.Debug("wrote file", "path", path, "bytes", size, "error", err)
}

func (h logHooks) OnCompileStart(_ context.Context, engine, texPath string) {
	h.logger.Debug("engine started", "engine", engine, "tex", texPath)
}

func (h logHooks) OnCompileComplete(_ context.Context, engine, texPath string, exitCode int, d time.Duration, err error) {
	h.logger.Debug("engine finished", "engine", engine, "tex", texPath, "exit", exitCode, "duration", d, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// installHooks routes observability events to the CLI logger.
func (c *CLI) installHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCompilerHooks(h)
	observability.SetCacheHooks(h)
}
