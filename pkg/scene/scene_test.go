package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
)

const towerTOML = `
class = "article"
font_size = 11

[[part]]
type = "picture"
scale = 0.5

[[part.children]]
type = "polygon"
color = "#640f08"
points = [[0, 9.1], [30, 9.1], [30, 12.6], [0, 12.6]]

[[part.children]]
type = "node"
label = "core_lib"
anchor = "west"
color = "kit-blue"
points = [[1, 10]]
`

const towerJSON = `{
  "class": "article",
  "font_size": 11,
  "part": [
    {
      "type": "picture",
      "scale": 0.5,
      "children": [
        {"type": "polygon", "color": "#640f08", "points": [[0, 9.1], [30, 9.1], [30, 12.6], [0, 12.6]]},
        {"type": "node", "label": "core_lib", "anchor": "west", "color": "kit-blue", "points": [[1, 10]]}
      ]
    }
  ]
}`

func towerDocument() *latex.Document {
	return latex.NewDocument(latex.Article).
		WithOption(latex.FontSizeOption(11)).
		Add(latex.NewPicture().WithOption(latex.ScaleOption(0.5)).Add(
			latex.NewPolygon().WithOption(latex.Colored(latex.RGB(100, 15, 8))).
				Point(0, 9.1).Point(30, 9.1).Point(30, 12.6).Point(0, 12.6),
			latex.NewNode("core_lib").
				WithOption(latex.AnchorWest).
				WithOption(latex.Colored(latex.KITBlue)).
				Point(1, 10),
		))
}

func TestLoadMatchesBuilder(t *testing.T) {
	want, err := towerDocument().Export()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"toml", FormatTOML, towerTOML},
		{"json", FormatJSON, towerJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			got, err := doc.Export()
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if !slices.Equal(got, want) {
				t.Errorf("Export() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(towerTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []Format{FormatTOML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, s, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			doc, err := Load(&buf, format)
			if err != nil {
				t.Fatalf("Load() error = %v\n%s", err, buf.String())
			}
			if doc.String() != want.String() {
				t.Errorf("document changed after re-encoding:\n%s\nwant\n%s", doc, want)
			}
		})
	}
}

func TestBuildNesting(t *testing.T) {
	s := &Scene{
		Class: "beamer",
		Parts: []Part{{
			Type: TypeFrame,
			Children: []Part{{
				Type: TypeCenter,
				Children: []Part{{
					Type: TypePicture,
					Children: []Part{{
						Type:   TypeVisible,
						Frames: []int{2, 3},
						Children: []Part{
							{Type: TypeLine, LineWidth: ptr(2.0), Points: [][]float64{{0, 0}, {1, 1}}},
						},
					}},
				}},
			}},
		}},
	}
	doc, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	var kinds []string
	for p := range doc.Parts() {
		kinds = append(kinds, p.Kind().String())
	}
	want := []string{"frame", "center", "tikzpicture", "visible", "line"}
	if !slices.Equal(kinds, want) {
		t.Errorf("Parts() = %v, want %v", kinds, want)
	}
	if doc.Class() != latex.Beamer {
		t.Errorf("Class() = %v, want beamer", doc.Class())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		scene   Scene
		wantMsg string
	}{
		{
			name:    "shape at document level",
			scene:   Scene{Parts: []Part{{Type: TypePolygon}}},
			wantMsg: "part[0]: polygon not allowed here",
		},
		{
			name: "block inside picture",
			scene: Scene{Parts: []Part{{Type: TypePicture, Children: []Part{
				{Type: TypeLine, Points: [][]float64{{0, 0}}},
				{Type: TypeLine, Points: [][]float64{{0, 0}}},
				{Type: TypeCenter},
			}}}},
			wantMsg: "part[0].children[2]: center not allowed here",
		},
		{
			name:    "unknown type",
			scene:   Scene{Parts: []Part{{Type: "circle"}}},
			wantMsg: `part[0]: unknown type "circle"`,
		},
		{
			name:    "missing type",
			scene:   Scene{Parts: []Part{{}}},
			wantMsg: "part[0]: missing type",
		},
		{
			name:    "field of another type",
			scene:   Scene{Parts: []Part{{Type: TypeFrame, Scale: ptr(2.0), Label: "x"}}},
			wantMsg: "part[0]: frame does not take scale, label",
		},
		{
			name: "short point",
			scene: Scene{Parts: []Part{{Type: TypePicture, Children: []Part{
				{Type: TypePolygon, Points: [][]float64{{0, 0}, {1}}},
			}}}},
			wantMsg: "part[0].children[0]: points[1] has 1 coordinates, want 2",
		},
		{
			name: "unknown color",
			scene: Scene{Parts: []Part{{Type: TypePicture, Children: []Part{
				{Type: TypeNode, Color: "mauve", Points: [][]float64{{0, 0}}},
			}}}},
			wantMsg: "part[0].children[0]: color",
		},
		{
			name:    "unknown class",
			scene:   Scene{Class: "report"},
			wantMsg: "class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&tt.scene)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeInvalidScene)
			}
			if msg := errors.UserMessage(err); !strings.HasPrefix(msg, tt.wantMsg) {
				t.Errorf("message = %q, want prefix %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestBuildDefersExportErrors(t *testing.T) {
	doc, err := Build(&Scene{Parts: []Part{{Type: TypePicture, Scale: ptr(0.0), Children: []Part{
		{Type: TypePolygon},
	}}}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := doc.Export(); !errors.Is(err, errors.ErrCodeNoPoints) {
		t.Errorf("Export() error = %v, want %s", err, errors.ErrCodeNoPoints)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"toml syntax", FormatTOML, "class = "},
		{"toml unknown key", FormatTOML, "class = \"article\"\ncolour = \"red\"\n"},
		{"json syntax", FormatJSON, "{"},
		{"json unknown key", FormatJSON, `{"part": [{"type": "picture", "zoom": 2}]}`},
		{"unknown format", Format("yaml"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Decode() error = %v, want %s", err, errors.ErrCodeInvalidScene)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"scene.toml", FormatTOML, false},
		{"dir/Scene.JSON", FormatJSON, false},
		{"scene.yaml", "", true},
		{"scene", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatOf(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tower.toml")
	if err := os.WriteFile(path, []byte(towerTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if doc.String() != towerDocument().String() {
		t.Errorf("LoadFile() document differs from builder tree")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("LoadFile(missing) error = %v, want %s", err, errors.ErrCodeIO)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.toml", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "c.toml"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.toml")}
	if !slices.Equal(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func ptr[T any](v T) *T { return &v }

func TestExampleScenes(t *testing.T) {
	paths, err := Find(filepath.Join("..", "..", "examples", "scenes"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example scenes found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if _, err := doc.Export(); err != nil {
				t.Errorf("Export() error = %v", err)
			}
			if len(doc.Colors()) == 0 {
				t.Error("example scene uses no colors")
			}
		})
	}
}
