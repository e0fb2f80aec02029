package compiler

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
)

// fakeEngine behaves like pdflatex for the arguments the compiler passes:
// it fails with a TeX-style error when the source contains FAIL and writes
// a PDF otherwise.
const fakeEngine = `#!/bin/sh
for last; do :; done
echo "This is fakeTeX"
if grep -q FAIL "$last"; then
	echo "! Undefined control sequence."
	echo "l.3 \\FAIL"
	exit 1
fi
if grep -q SLEEP "$last"; then
	exec sleep 5
fi
printf '%%PDF-1.5' > "${last%.tex}.pdf"
echo "warning" >&2
`

func newFake(t *testing.T, opts ...Option) *Compiler {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a shell script")
	}
	path := filepath.Join(t.TempDir(), "fakelatex")
	if err := os.WriteFile(path, []byte(fakeEngine), 0o755); err != nil {
		t.Fatal(err)
	}
	c, err := New(path, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func writeTex(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.tex")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewNotFound(t *testing.T) {
	_, err := New("definitely-not-a-latex-engine-7f3a")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestCompileSuccess(t *testing.T) {
	c := newFake(t)
	tex := writeTex(t, `\documentclass{article}`)

	res, err := c.Compile(context.Background(), tex)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !res.Success || res.ExitCode != 0 {
		t.Errorf("Success = %v, ExitCode = %d", res.Success, res.ExitCode)
	}
	if want := strings.TrimSuffix(tex, ".tex") + ".pdf"; res.PDFPath != want {
		t.Errorf("PDFPath = %q, want %q", res.PDFPath, want)
	}
	data, err := os.ReadFile(res.PDFPath)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if string(data) != "%PDF-1.5" {
		t.Errorf("PDF = %q", data)
	}
	if !strings.Contains(res.Stdout, "fakeTeX") || !strings.Contains(res.Stderr, "warning") {
		t.Errorf("output not captured: stdout %q, stderr %q", res.Stdout, res.Stderr)
	}
	if res.Duration <= 0 {
		t.Error("Duration not measured")
	}
}

func TestCompileFailureIsNotAnError(t *testing.T) {
	c := newFake(t)
	tex := writeTex(t, "\\documentclass{article}\n\\FAIL\n")

	res, err := c.Compile(context.Background(), tex)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if res.Success || res.ExitCode != 1 {
		t.Errorf("Success = %v, ExitCode = %d, want failure with 1", res.Success, res.ExitCode)
	}
	if got, want := res.Errors(), []string{"Undefined control sequence."}; !slices.Equal(got, want) {
		t.Errorf("Errors() = %v, want %v", got, want)
	}
}

func TestCompileRejectsDirectoryBeforeExec(t *testing.T) {
	c := newFake(t)
	dir := t.TempDir()

	for _, path := range []string{dir, dir + string(filepath.Separator), ""} {
		_, err := c.Compile(context.Background(), path)
		if !errors.Is(err, errors.ErrCodePathIsNoFile) {
			t.Errorf("Compile(%q) error = %v, want %s", path, err, errors.ErrCodePathIsNoFile)
		}
	}
}

func TestCompileTimeout(t *testing.T) {
	c := newFake(t, WithTimeout(100*time.Millisecond))
	tex := writeTex(t, "SLEEP")

	_, err := c.Compile(context.Background(), tex)
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Compile() error = %v, want %s", err, errors.ErrCodeIO)
	}
}

func TestCheck(t *testing.T) {
	c := newFake(t)
	doc := latex.NewDocument(latex.Article).Add(
		latex.NewPicture().Add(latex.NewPolygon().Point(0, 0).Point(1, 1)),
	)

	res, err := c.Check(context.Background(), doc)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !res.Success {
		t.Errorf("Check() failed:\n%s", res.Stdout)
	}
	if res.PDFPath != "" {
		t.Errorf("PDFPath = %q, want empty", res.PDFPath)
	}
}

func TestCheckExportError(t *testing.T) {
	c := newFake(t)
	doc := latex.NewDocument(latex.Article).Add(latex.NewPicture().Add(latex.NewLine()))

	if _, err := c.Check(context.Background(), doc); !errors.Is(err, errors.ErrCodeNoPoints) {
		t.Errorf("Check() error = %v, want %s", err, errors.ErrCodeNoPoints)
	}
}

func TestName(t *testing.T) {
	c := newFake(t)
	if c.Name() != "fakelatex" {
		t.Errorf("Name() = %q", c.Name())
	}
}
