package scene

import (
	"fmt"
	"slices"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/latex"
)

// Part types.
const (
	TypePicture = "picture"
	TypeFrame   = "frame"
	TypeCenter  = "center"
	TypeVisible = "visible"
	TypePolygon = "polygon"
	TypeLine    = "line"
	TypeNode    = "node"
)

// fields lists the keys each part type accepts besides "type".
var fields = map[string][]string{
	TypePicture: {"scale", "children"},
	TypeFrame:   {"title", "children"},
	TypeCenter:  {"children"},
	TypeVisible: {"frames", "children"},
	TypePolygon: {"color", "opacity", "points"},
	TypeLine:    {"color", "opacity", "line_width", "points"},
	TypeNode:    {"color", "opacity", "anchor", "label", "points"},
}

// Build turns a decoded scene into a document. Structural problems are
// reported as [errors.ErrCodeInvalidScene] naming the offending part, e.g.
// "part[0].children[2]: polygon not allowed here". Option values are checked
// when the document is exported, not here.
func Build(s *Scene) (*latex.Document, error) {
	class := latex.Article
	if s.Class != "" {
		c, err := latex.ParseDocumentClass(s.Class)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "class")
		}
		class = c
	}

	doc := latex.NewDocument(class)
	if s.FontSize != 0 {
		doc.WithOption(latex.FontSizeOption(s.FontSize))
	}
	for i, p := range s.Parts {
		b, err := buildBlock(p, fmt.Sprintf("part[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Add(b)
	}
	return doc, nil
}

func buildBlock(p Part, at string) (latex.Block, error) {
	if err := checkFields(p, at); err != nil {
		return nil, err
	}
	switch p.Type {
	case TypePicture:
		pic := latex.NewPicture()
		if p.Scale != nil {
			pic.WithOption(latex.ScaleOption(*p.Scale))
		}
		shapes, err := buildShapes(p.Children, at)
		if err != nil {
			return nil, err
		}
		return pic.Add(shapes...), nil
	case TypeFrame:
		blocks, err := buildBlocks(p.Children, at)
		if err != nil {
			return nil, err
		}
		return latex.NewFrame().WithTitle(p.Title).Add(blocks...), nil
	case TypeCenter:
		blocks, err := buildBlocks(p.Children, at)
		if err != nil {
			return nil, err
		}
		return latex.NewCenter().Add(blocks...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "%s: %s not allowed here (want picture, frame or center)", at, p.Type)
}

func buildShape(p Part, at string) (latex.Shape, error) {
	if err := checkFields(p, at); err != nil {
		return nil, err
	}
	if p.Type == TypeVisible {
		shapes, err := buildShapes(p.Children, at)
		if err != nil {
			return nil, err
		}
		return latex.NewVisible(p.Frames...).Add(shapes...), nil
	}

	pts, err := points(p, at)
	if err != nil {
		return nil, err
	}
	color, hasColor, err := lookupColor(p, at)
	if err != nil {
		return nil, err
	}

	switch p.Type {
	case TypePolygon:
		poly := latex.NewPolygon()
		if hasColor {
			poly.WithOption(latex.Colored(color))
		}
		if p.Opacity != nil {
			poly.WithOption(latex.OpacityOption(*p.Opacity))
		}
		for _, pt := range pts {
			poly.WithPoint(pt)
		}
		return poly, nil
	case TypeLine:
		line := latex.NewLine()
		if hasColor {
			line.WithOption(latex.Colored(color))
		}
		if p.Opacity != nil {
			line.WithOption(latex.OpacityOption(*p.Opacity))
		}
		if p.LineWidth != nil {
			line.WithOption(latex.LineWidthOption(*p.LineWidth))
		}
		for _, pt := range pts {
			line.WithPoint(pt)
		}
		return line, nil
	case TypeNode:
		node := latex.NewNode(p.Label)
		if hasColor {
			node.WithOption(latex.Colored(color))
		}
		if p.Opacity != nil {
			node.WithOption(latex.OpacityOption(*p.Opacity))
		}
		if p.Anchor != "" {
			node.WithOption(latex.AnchorOption(p.Anchor))
		}
		for _, pt := range pts {
			node.WithPoint(pt)
		}
		return node, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "%s: %s not allowed here (want polygon, line, node or visible)", at, p.Type)
}

func buildBlocks(children []Part, at string) ([]latex.Block, error) {
	out := make([]latex.Block, 0, len(children))
	for i, c := range children {
		b, err := buildBlock(c, childPath(at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func buildShapes(children []Part, at string) ([]latex.Shape, error) {
	out := make([]latex.Shape, 0, len(children))
	for i, c := range children {
		s, err := buildShape(c, childPath(at, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func childPath(at string, i int) string {
	return fmt.Sprintf("%s.children[%d]", at, i)
}

func lookupColor(p Part, at string) (latex.Color, bool, error) {
	if p.Color == "" {
		return latex.Color{}, false, nil
	}
	c, err := latex.LookupColor(p.Color)
	if err != nil {
		return latex.Color{}, false, errors.Wrap(errors.ErrCodeInvalidScene, err, "%s: color", at)
	}
	return c, true, nil
}

// points converts [x, y] pairs. A drawable without points is built as is;
// its export reports the missing points.
func points(p Part, at string) ([]vec.Vec2, error) {
	out := make([]vec.Vec2, len(p.Points))
	for i, pt := range p.Points {
		if len(pt) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "%s: points[%d] has %d coordinates, want 2", at, i, len(pt))
		}
		out[i] = vec.Vec2{X: pt[0], Y: pt[1]}
	}
	return out, nil
}

// checkFields rejects keys the part type does not use.
func checkFields(p Part, at string) error {
	allowed, ok := fields[p.Type]
	if !ok {
		if p.Type == "" {
			return errors.New(errors.ErrCodeInvalidScene, "%s: missing type", at)
		}
		return errors.New(errors.ErrCodeInvalidScene, "%s: unknown type %q", at, p.Type)
	}
	var extra []string
	for _, f := range p.setFields() {
		if !slices.Contains(allowed, f) {
			extra = append(extra, f)
		}
	}
	if len(extra) > 0 {
		return errors.New(errors.ErrCodeInvalidScene, "%s: %s does not take %s", at, p.Type, strings.Join(extra, ", "))
	}
	return nil
}

func (p Part) setFields() []string {
	var set []string
	add := func(name string, isSet bool) {
		if isSet {
			set = append(set, name)
		}
	}
	add("title", p.Title != "")
	add("scale", p.Scale != nil)
	add("color", p.Color != "")
	add("opacity", p.Opacity != nil)
	add("line_width", p.LineWidth != nil)
	add("anchor", p.Anchor != "")
	add("label", p.Label != "")
	add("frames", p.Frames != nil)
	add("points", p.Points != nil)
	add("children", p.Children != nil)
	return set
}
