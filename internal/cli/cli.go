// Package cli implements the tikzdoc command-line interface.
//
// The commands turn scene files (TOML or JSON descriptions of a part tree)
// into LaTeX markup, compile that markup and help debug it. The CLI is built
// with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: write the .tex file for a scene, optionally compiling it
//   - show: print the markup, highlighted on a terminal
//   - tree: draw the part tree as DOT or SVG
//   - check: compile a scene in a scratch directory and report errors
//   - cache: manage the compiled-PDF cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzdoc/pkg/buildinfo"
	"github.com/matzehuels/tikzdoc/pkg/cache"
	"github.com/matzehuels/tikzdoc/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tikzdoc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w. It routes the library
// observability hooks to the same logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.installHooks()
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "tikzdoc turns scene files into LaTeX/TikZ documents",
		Long:         `tikzdoc builds LaTeX documents with TikZ pictures and beamer overlays from TOML or JSON scene files, and compiles them to PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner. Caching is opt-in.
func (c *CLI) newRunner(useCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(useCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func newCache(useCache bool) (cache.Cache, error) {
	if !useCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory. On Linux this follows the
// XDG convention (~/.cache/tikzdoc or $XDG_CACHE_HOME/tikzdoc).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
