// Package compiler runs a LaTeX engine on exported documents.
//
// The engine is an external program (pdflatex by default) resolved on PATH
// when the [Compiler] is created. A run that starts but exits non-zero is not
// an error: the caller inspects [Result] and its log. Only problems that
// prevent a run at all are returned as errors.
package compiler

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
)

// DefaultExecutable is the engine used when none is configured.
const DefaultExecutable = "pdflatex"

// Compiler invokes a LaTeX engine.
type Compiler struct {
	path    string
	args    []string
	timeout time.Duration
}

// Option configures a [Compiler].
type Option func(*Compiler)

// WithArgs appends extra engine arguments. They are passed after
// -halt-on-error and before the file name.
func WithArgs(args ...string) Option {
	return func(c *Compiler) { c.args = append(c.args, args...) }
}

// WithTimeout bounds every run. Zero means no limit beyond the context.
func WithTimeout(d time.Duration) Option {
	return func(c *Compiler) { c.timeout = d }
}

// New resolves executable on PATH. An empty name selects
// [DefaultExecutable].
func New(executable string, opts ...Option) (*Compiler, error) {
	if executable == "" {
		executable = DefaultExecutable
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "LaTeX engine %q not found; install a TeX distribution (TeX Live, MiKTeX) or pass --compiler", executable)
	}
	c := &Compiler{path: path}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Path returns the resolved engine path.
func (c *Compiler) Path() string { return c.path }

// Name returns the base name of the engine, e.g. "pdflatex".
func (c *Compiler) Name() string { return filepath.Base(c.path) }

// Result describes one engine run.
type Result struct {
	ExitCode int
	Success  bool
	Stdout   string
	Stderr   string
	Duration time.Duration
	// PDFPath is where the engine writes its output. It is set even when
	// the run fails; the file may be missing or stale then.
	PDFPath string
}

// Errors returns the error lines of the engine log. TeX engines print
// errors to stdout as lines starting with "! ".
func (r *Result) Errors() []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(r.Stdout))
	for sc.Scan() {
		if line := sc.Text(); strings.HasPrefix(line, "! ") {
			out = append(out, strings.TrimPrefix(line, "! "))
		}
	}
	return out
}

// Compile runs `<engine> -halt-on-error <file>` in the directory of
// texPath, so that auxiliary files and the PDF land next to the source.
func (c *Compiler) Compile(ctx context.Context, texPath string) (*Result, error) {
	if err := errors.ValidateOutputPath(texPath); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(texPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "resolve %s", texPath)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	dir, base := filepath.Split(abs)
	args := append([]string{"-halt-on-error"}, c.args...)
	args = append(args, base)

	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		PDFPath:  filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf"),
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		res.Success = true
	case ctx.Err() != nil:
		return nil, errors.Wrap(errors.ErrCodeIO, ctx.Err(), "run %s", c.Name())
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, errors.Wrap(errors.ErrCodeIO, runErr, "start %s", c.Name())
	}
	return res, nil
}

// Check exports doc into a scratch directory, compiles it there and removes
// the directory. The returned result has no PDFPath.
func (c *Compiler) Check(ctx context.Context, doc *latex.Document) (*Result, error) {
	dir, err := os.MkdirTemp("", "tikzdoc-check-")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create scratch dir")
	}
	defer os.RemoveAll(dir)

	texPath := filepath.Join(dir, "job-"+uuid.NewString()+".tex")
	if err := doc.WriteFile(texPath); err != nil {
		return nil, err
	}
	res, err := c.Compile(ctx, texPath)
	if err != nil {
		return nil, err
	}
	res.PDFPath = ""
	return res, nil
}
