package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/tikzdoc/pkg/buildinfo"
	"github.com/matzehuels/tikzdoc/pkg/scene"
)

const testScene = `class = "beamer"

[[part]]
type = "frame"
title = "Intro"

  [[part.children]]
  type = "picture"

    [[part.children.children]]
    type = "polygon"
    color = "kit-green"
    points = [[0, 0], [1, 0], [1, 1]]

    [[part.children.children]]
    type = "node"
    label = "LABEL"
    points = [[0.5, 0.5]]
`

const fakeEngine = `#!/bin/sh
for last; do :; done
if grep -q FAIL "$last"; then
	echo "! Undefined control sequence."
	exit 1
fi
printf '%%PDF-fake' > "${last%.tex}.pdf"
`

// runRoot executes the root command with args, collecting command output
// in out.
func runRoot(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()
	out.Reset()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeEngine(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a shell script")
	}
	path := filepath.Join(t.TempDir(), "fakelatex")
	if err := os.WriteFile(path, []byte(fakeEngine), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func expectedMarkup(t *testing.T, path string) string {
	t.Helper()
	doc, err := scene.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return doc.String()
}

func TestRenderWritesTex(t *testing.T) {
	path := writeScene(t, "slides.toml", testScene)
	var out bytes.Buffer

	if err := runRoot(t, &out, "render", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(strings.TrimSuffix(path, ".toml") + ".tex")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != expectedMarkup(t, path) {
		t.Errorf("written markup differs from export:\n%s", data)
	}
}

func TestRenderOutputFlag(t *testing.T) {
	path := writeScene(t, "slides.toml", testScene)
	output := filepath.Join(t.TempDir(), "custom.tex")
	var out bytes.Buffer

	if err := runRoot(t, &out, "render", path, "-o", output); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no scene", []string{"render"}, "no scene file given"},
		{"bad extension", []string{"render", "slides.yaml"}, "INVALID_SCENE"},
		{"shape at top level", []string{"render", writeScene(t, "bad.toml", "[[part]]\ntype = \"line\"\n")}, "line not allowed here"},
		{"too many args", []string{"render", "a.toml", "b.toml"}, "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runRoot(t, &out, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRenderCompile(t *testing.T) {
	engine := writeEngine(t)
	path := writeScene(t, "slides.toml", testScene)
	var out bytes.Buffer

	if err := runRoot(t, &out, "render", path, "--compile", "--compiler", engine); err != nil {
		t.Fatalf("render --compile: %v", err)
	}
	data, err := os.ReadFile(strings.TrimSuffix(path, ".toml") + ".pdf")
	if err != nil || string(data) != "%PDF-fake" {
		t.Errorf("pdf = %q, %v", data, err)
	}
}

func TestRenderCompileFailure(t *testing.T) {
	engine := writeEngine(t)
	path := writeScene(t, "slides.toml", strings.Replace(testScene, "LABEL", "FAIL", 1))
	var out bytes.Buffer

	err := runRoot(t, &out, "render", path, "--compile", "--compiler", engine)
	if err == nil || !strings.Contains(err.Error(), "compilation of") {
		t.Errorf("error = %v, want compilation failure", err)
	}
}

func TestShowPlain(t *testing.T) {
	path := writeScene(t, "slides.toml", testScene)
	var out bytes.Buffer

	if err := runRoot(t, &out, "show", path, "--plain"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if out.String() != expectedMarkup(t, path) {
		t.Errorf("show printed:\n%s", out.String())
	}
}

func TestShowNonTerminalIsPlain(t *testing.T) {
	path := writeScene(t, "slides.json", `{"class": "article", "part": [{"type": "picture"}]}`)
	var out bytes.Buffer

	if err := runRoot(t, &out, "show", path); err != nil {
		t.Fatalf("show: %v", err)
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Errorf("show highlighted output for a non-terminal:\n%q", out.String())
	}
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	if err := highlight(&buf, "\\documentclass{article}\n"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") || !strings.Contains(buf.String(), "documentclass") {
		t.Errorf("highlight() = %q", buf.String())
	}
}

func TestTreeDOT(t *testing.T) {
	path := writeScene(t, "slides.toml", testScene)
	var out bytes.Buffer

	if err := runRoot(t, &out, "tree", path); err != nil {
		t.Fatalf("tree: %v", err)
	}
	for _, want := range []string{"digraph Parts", `frame\nIntro`, `node\nLABEL`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("DOT missing %q:\n%s", want, out.String())
		}
	}

	dotPath := filepath.Join(t.TempDir(), "tree.dot")
	if err := runRoot(t, &out, "tree", path, "-o", dotPath, "--detailed"); err != nil {
		t.Fatalf("tree -o: %v", err)
	}
	data, err := os.ReadFile(dotPath)
	if err != nil || !strings.Contains(string(data), "3 points") {
		t.Errorf("tree.dot = %q, %v", data, err)
	}

	if err := runRoot(t, &out, "tree", path, "-o", filepath.Join(t.TempDir(), "tree.png")); err == nil {
		t.Error("tree -o tree.png should fail")
	}
}

func TestCheck(t *testing.T) {
	engine := writeEngine(t)
	var out bytes.Buffer

	ok := writeScene(t, "ok.toml", testScene)
	if err := runRoot(t, &out, "check", ok, "--compiler", engine); err != nil {
		t.Errorf("check ok: %v", err)
	}
	if entries, _ := os.ReadDir(filepath.Dir(ok)); len(entries) != 1 {
		t.Errorf("check left files next to the scene: %d entries", len(entries))
	}

	bad := writeScene(t, "bad.toml", strings.Replace(testScene, "LABEL", "FAIL", 1))
	if err := runRoot(t, &out, "check", bad, "--compiler", engine); err == nil {
		t.Error("check of failing scene succeeded")
	}

	if err := runRoot(t, &out, "check", ok, "--compiler", "no-such-engine-1b2c"); err == nil || !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("missing engine error = %v", err)
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	if err := runRoot(t, &out, "--version"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), buildinfo.Version) {
		t.Errorf("--version printed %q", out.String())
	}
}

func TestCompletion(t *testing.T) {
	var out bytes.Buffer
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		if err := runRoot(t, &out, "completion", shell); err != nil {
			t.Errorf("completion %s: %v", shell, err)
		}
		if out.Len() == 0 {
			t.Errorf("completion %s printed nothing", shell)
		}
	}
	if err := runRoot(t, &out, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
