package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
)

// Format identifies the encoding of a scene file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by the file extension of path.
func FormatOf(path string) (Format, error) {
	if err := errors.ValidateSceneFilename(path); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON, nil
	}
	return FormatTOML, nil
}

// Scene is the decoded form of a scene file.
type Scene struct {
	Class    string `toml:"class" json:"class"`
	FontSize int    `toml:"font_size,omitempty" json:"font_size,omitempty"`
	Parts    []Part `toml:"part" json:"part"`
}

// Part describes one node of the part tree. Which fields apply depends on
// Type; setting a field the type does not use is an error.
type Part struct {
	Type      string      `toml:"type" json:"type"`
	Title     string      `toml:"title,omitempty" json:"title,omitempty"`
	Scale     *float64    `toml:"scale,omitempty" json:"scale,omitempty"`
	Color     string      `toml:"color,omitempty" json:"color,omitempty"`
	Opacity   *float64    `toml:"opacity,omitempty" json:"opacity,omitempty"`
	LineWidth *float64    `toml:"line_width,omitempty" json:"line_width,omitempty"`
	Anchor    string      `toml:"anchor,omitempty" json:"anchor,omitempty"`
	Label     string      `toml:"label,omitempty" json:"label,omitempty"`
	Frames    []int       `toml:"frames,omitempty" json:"frames,omitempty"`
	Points    [][]float64 `toml:"points,omitempty" json:"points,omitempty"`
	Children  []Part      `toml:"children,omitempty" json:"children,omitempty"`
}

// LoadFile reads and builds the scene at path. The format follows the file
// extension (.toml or .json).
func LoadFile(path string) (*latex.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Load(f, format)
}

// Load decodes a scene from r and builds it into a document.
func Load(r io.Reader, format Format) (*latex.Document, error) {
	s, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(s)
}

// Decode reads a scene without building it. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown scene format %q", format)
	}
	return &s, nil
}

// Encode writes s in the given format.
func Encode(w io.Writer, s *Scene, format Format) error {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return errors.Wrap(errors.ErrCodeFormatting, err, "encode toml")
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(errors.ErrCodeFormatting, err, "encode json")
		}
	default:
		return errors.New(errors.ErrCodeInvalidScene, "unknown scene format %q", format)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write scene")
	}
	return nil
}

// Find lists the scene files directly inside dir, sorted by name.
func Find(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || errors.ValidateSceneFilename(e.Name()) != nil {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}
