// Package pipeline provides the render pipeline shared by all tikzdoc
// commands.
//
// # Stages
//
//  1. Load: decode a scene file into a [latex.Document] (skipped when the
//     caller passes a document)
//  2. Export: render the document into markup lines
//  3. Write: store the markup as a .tex file
//  4. Compile: run the LaTeX engine, or reuse a cached PDF built from
//     identical markup
//
// Each stage is also available on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   "slides.toml",
//	    Compile: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.TexPath, result.PDFPath)
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzdoc/pkg/cache"
	"github.com/matzehuels/tikzdoc/pkg/compiler"
	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
	"github.com/matzehuels/tikzdoc/pkg/markup"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCompiler is the LaTeX engine used when none is given.
	DefaultCompiler = compiler.DefaultExecutable

	// DefaultCompileTimeout bounds a single engine run.
	DefaultCompileTimeout = 2 * time.Minute

	// TTLArtifact is how long a compiled PDF stays in the cache.
	TTLArtifact = 30 * 24 * time.Hour
)

// Output formats.
const (
	FormatTeX = "tex"
	FormatPDF = "pdf"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Scene is the scene file to load. It may be empty when Document is set.
	Scene string `json:"scene,omitempty"`

	// Output is the .tex path. It defaults to the scene path with a .tex
	// extension.
	Output string `json:"output,omitempty"`

	// Compile runs the LaTeX engine after writing.
	Compile        bool          `json:"compile,omitempty"`
	Compiler       string        `json:"compiler,omitempty"`
	CompileTimeout time.Duration `json:"compile_timeout,omitempty"`

	// Refresh ignores cached artifacts (they are still updated).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Document *latex.Document `json:"-"`
	Logger   *log.Logger     `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the rendered document.
	Document *latex.Document

	// Lines is the exported markup.
	Lines markup.Lines

	// MarkupHash is the SHA-256 of the displayed markup.
	MarkupHash string

	// TexPath is the written .tex file.
	TexPath string

	// PDFPath is the compiled PDF. Empty unless compilation was requested
	// and produced a PDF.
	PDFPath string

	// Compile is the engine run. Nil when compilation was not requested or
	// the PDF came from the cache.
	Compile *compiler.Result

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PartCount   int
	LineCount   int
	ColorCount  int
	ExportTime  time.Duration
	CompileTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ArtifactHit bool // Whether the PDF came from the cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Scene == "" && o.Document == nil {
		return errors.New(errors.ErrCodeInvalidScene, "scene or document is required")
	}
	if o.Scene != "" {
		if err := errors.ValidateSceneFilename(o.Scene); err != nil {
			return err
		}
	}
	if o.Output == "" {
		if o.Scene == "" {
			return errors.New(errors.ErrCodePathIsNoFile, "output path is required for in-memory documents")
		}
		o.Output = DefaultOutputPath(o.Scene)
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if o.Compiler == "" {
		o.Compiler = DefaultCompiler
	}
	if o.CompileTimeout == 0 {
		o.CompileTimeout = DefaultCompileTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the compiled PDF.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Compiler: o.Compiler,
		Format:   FormatPDF,
	}
}

// source names the input in logs and hooks.
func (o *Options) source() string {
	if o.Scene != "" {
		return o.Scene
	}
	return "-"
}

// DefaultOutputPath replaces the extension of a scene path with .tex.
func DefaultOutputPath(scene string) string {
	return strings.TrimSuffix(scene, filepath.Ext(scene)) + "." + FormatTeX
}
