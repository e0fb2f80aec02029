package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzdoc/pkg/cache"
	"github.com/matzehuels/tikzdoc/pkg/compiler"
	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
	"github.com/matzehuels/tikzdoc/pkg/markup"
	"github.com/matzehuels/tikzdoc/pkg/observability"
	"github.com/matzehuels/tikzdoc/pkg/scene"
)

const keyTypeArtifact = "artifact"

// Runner executes the pipeline with caching.
//
// The Runner keeps no per-run state; one Runner may serve several
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default().
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → export → write → compile.
//
// A compile run that exits non-zero is not an error: Result.Compile carries
// the exit code and log.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{Document: doc}

	exportStart := time.Now()
	lines, err := r.Export(ctx, opts.source(), doc)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Lines = lines
	result.MarkupHash = cache.Hash([]byte(lines.String()))
	result.Stats.ExportTime = time.Since(exportStart)
	result.Stats.LineCount = len(lines)
	result.Stats.PartCount = countParts(doc)
	result.Stats.ColorCount = len(doc.Colors())

	r.Logger.Info("exported document",
		"parts", result.Stats.PartCount,
		"lines", result.Stats.LineCount,
		"colors", result.Stats.ColorCount,
		"duration", result.Stats.ExportTime)

	if err := r.Write(ctx, opts.Output, lines); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.TexPath = opts.Output
	r.Logger.Info("wrote markup", "path", opts.Output)

	if !opts.Compile {
		return result, nil
	}

	compileStart := time.Now()
	res, hit, err := r.CompileWithCacheInfo(ctx, opts.Output, result.MarkupHash, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	result.Compile = res
	result.CacheInfo.ArtifactHit = hit
	result.Stats.CompileTime = time.Since(compileStart)
	if hit || res.Success {
		result.PDFPath = pdfPath(opts.Output)
	}

	switch {
	case hit:
		r.Logger.Info("reused cached pdf", "path", result.PDFPath)
	case res.Success:
		r.Logger.Info("compiled pdf", "path", result.PDFPath, "duration", result.Stats.CompileTime)
	default:
		r.Logger.Warn("compilation failed", "exit", res.ExitCode, "errors", len(res.Errors()))
	}
	return result, nil
}

// Load returns opts.Document, or decodes and builds opts.Scene.
func (r *Runner) Load(ctx context.Context, opts Options) (*latex.Document, error) {
	if opts.Document != nil {
		return opts.Document, nil
	}
	r.Logger.Debug("loading scene", "path", opts.Scene)
	return scene.LoadFile(opts.Scene)
}

// Export renders doc, reporting to the pipeline hooks.
func (r *Runner) Export(ctx context.Context, source string, doc *latex.Document) (markup.Lines, error) {
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, source)
	start := time.Now()
	lines, err := doc.Export()
	hooks.OnExportComplete(ctx, source, len(lines), time.Since(start), err)
	return lines, err
}

// Write stores lines at path.
func (r *Runner) Write(ctx context.Context, path string, lines markup.Lines) error {
	n, err := writeLines(path, lines)
	observability.Pipeline().OnWrite(ctx, path, n, err)
	return err
}

// CompileWithCacheInfo produces the PDF for the .tex file at texPath, whose
// markup hashes to markupHash. On a cache hit the PDF is restored from the
// cache, the engine is not run (nor even resolved) and the result is nil.
// Successful runs are cached.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, texPath, markupHash string, opts Options) (*compiler.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	key := r.Keyer.ArtifactKey(markupHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		if err == nil && hit {
			if err := os.WriteFile(pdfPath(texPath), data, 0o644); err != nil {
				return nil, false, errors.Wrap(errors.ErrCodeIO, err, "restore cached pdf")
			}
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			return nil, true, nil
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	c, err := compiler.New(opts.Compiler, compiler.WithTimeout(opts.CompileTimeout))
	if err != nil {
		return nil, false, err
	}
	res, err := Compile(ctx, c, texPath)
	if err != nil {
		return nil, false, err
	}

	if res.Success {
		if data, err := os.ReadFile(res.PDFPath); err == nil {
			if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "error", err)
			} else {
				hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
			}
		}
	}
	return res, false, nil
}

// Compile runs c on texPath, reporting to the compiler hooks.
func Compile(ctx context.Context, c *compiler.Compiler, texPath string) (*compiler.Result, error) {
	hooks := observability.Compiler()
	hooks.OnCompileStart(ctx, c.Name(), texPath)
	start := time.Now()
	res, err := c.Compile(ctx, texPath)
	exitCode := -1
	if res != nil {
		exitCode = res.ExitCode
	}
	hooks.OnCompileComplete(ctx, c.Name(), texPath, exitCode, time.Since(start), err)
	return res, err
}

func writeLines(path string, lines markup.Lines) (int64, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	n, err := lines.WriteTo(f)
	if err != nil {
		_ = f.Close()
		return n, errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return n, errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return n, nil
}

// pdfPath mirrors where LaTeX engines put their output.
func pdfPath(texPath string) string {
	return strings.TrimSuffix(texPath, filepath.Ext(texPath)) + "." + FormatPDF
}

func countParts(doc *latex.Document) int {
	n := 0
	for range doc.Parts() {
		n++
	}
	return n
}
