package latex

import (
	"math"
	"slices"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/markup"
)

// path is the state shared by all drawables: an ordered point sequence and
// a kind-keyed option set.
type path[O Option] struct {
	points  []vec.Vec2
	options OptionSet[O]
}

func (p *path[O]) clone() path[O] {
	return path[O]{points: slices.Clone(p.points), options: p.options.Clone()}
}

// head renders `<command>[<options>]`.
func (p *path[O]) head(command string) (string, error) {
	opts, err := p.options.render()
	if err != nil {
		return "", err
	}
	return command + "[" + opts + "]", nil
}

// coordinates renders every point, failing on an empty sequence.
func (p *path[O]) coordinates(kind PartKind) ([]string, error) {
	if len(p.points) == 0 {
		return nil, errors.New(errors.ErrCodeNoPoints, "%s has no points", kind)
	}
	out := make([]string, len(p.points))
	for i, pt := range p.points {
		s, err := formatPoint(pt)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// formatPoint renders a point as "(x, y)".
func formatPoint(pt vec.Vec2) (string, error) {
	for _, v := range [2]float64{pt.X, pt.Y} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return "", errors.New(errors.ErrCodeNotFiniteFloat, "point (%v, %v) is not finite", pt.X, pt.Y)
		}
	}
	return "(" + formatFloat(pt.X) + ", " + formatFloat(pt.Y) + ")", nil
}

// =============================================================================
// Polygon
// =============================================================================

// Polygon is a closed, filled shape.
//
//	\fill[color=0x640f08] (0, 9.1) -- (30, 9.1) -- (30, 12.6) -- cycle;
type Polygon struct {
	path[PolygonOption]
}

// NewPolygon returns an empty polygon.
func NewPolygon() *Polygon {
	return &Polygon{}
}

// Point appends the point (x, y).
func (p *Polygon) Point(x, y float64) *Polygon {
	return p.WithPoint(vec.Vec2{X: x, Y: y})
}

// WithPoint appends pt.
func (p *Polygon) WithPoint(pt vec.Vec2) *Polygon {
	p.points = append(p.points, pt)
	return p
}

// WithOption sets o, replacing an earlier option of the same kind.
func (p *Polygon) WithOption(o PolygonOption) *Polygon {
	p.options.Insert(o)
	return p
}

// Points returns a copy of the point sequence.
func (p *Polygon) Points() []vec.Vec2 { return slices.Clone(p.points) }

// Options returns the option set of the polygon.
func (p *Polygon) Options() *OptionSet[PolygonOption] { return &p.options }

// Color returns the color option, if set.
func (p *Polygon) Color() (Color, bool) { return colorOf(&p.options) }

// Clone returns a deep copy.
func (p *Polygon) Clone() *Polygon { return &Polygon{path: p.path.clone()} }

func (*Polygon) Kind() PartKind { return KindPolygon }

// Export renders the polygon as a single \fill line.
func (p *Polygon) Export() (markup.Lines, error) {
	head, err := p.head(`\fill`)
	if err != nil {
		return nil, err
	}
	coords, err := p.coordinates(KindPolygon)
	if err != nil {
		return nil, err
	}
	return markup.Of(head + " " + strings.Join(coords, " -- ") + " -- cycle;"), nil
}

// =============================================================================
// Line
// =============================================================================

// Line is an open polyline, stroked but not filled.
//
//	\draw[line width=2pt] (0, 0) -- (1, 1) -- (2, 0);
type Line struct {
	path[LineOption]
}

// NewLine returns an empty line.
func NewLine() *Line {
	return &Line{}
}

// Point appends the point (x, y).
func (l *Line) Point(x, y float64) *Line {
	return l.WithPoint(vec.Vec2{X: x, Y: y})
}

// WithPoint appends pt.
func (l *Line) WithPoint(pt vec.Vec2) *Line {
	l.points = append(l.points, pt)
	return l
}

// WithOption sets o, replacing an earlier option of the same kind.
func (l *Line) WithOption(o LineOption) *Line {
	l.options.Insert(o)
	return l
}

// Points returns a copy of the point sequence.
func (l *Line) Points() []vec.Vec2 { return slices.Clone(l.points) }

// Options returns the option set of the line.
func (l *Line) Options() *OptionSet[LineOption] { return &l.options }

// Color returns the color option, if set.
func (l *Line) Color() (Color, bool) { return colorOf(&l.options) }

// Clone returns a deep copy.
func (l *Line) Clone() *Line { return &Line{path: l.path.clone()} }

func (*Line) Kind() PartKind { return KindLine }

// Export renders the line as a single \draw line.
func (l *Line) Export() (markup.Lines, error) {
	head, err := l.head(`\draw`)
	if err != nil {
		return nil, err
	}
	coords, err := l.coordinates(KindLine)
	if err != nil {
		return nil, err
	}
	return markup.Of(head + " " + strings.Join(coords, " -- ") + ";"), nil
}

// =============================================================================
// Node
// =============================================================================

// Node places a text label at its first point. Further points are kept but
// not rendered.
//
//	\node[anchor=west] at (1, 2) {Label};
type Node struct {
	path[NodeOption]
	label string
}

// NewNode returns a node without position showing label.
func NewNode(label string) *Node {
	return &Node{label: label}
}

// Point appends the point (x, y).
func (n *Node) Point(x, y float64) *Node {
	return n.WithPoint(vec.Vec2{X: x, Y: y})
}

// WithPoint appends pt.
func (n *Node) WithPoint(pt vec.Vec2) *Node {
	n.points = append(n.points, pt)
	return n
}

// WithOption sets o, replacing an earlier option of the same kind.
func (n *Node) WithOption(o NodeOption) *Node {
	n.options.Insert(o)
	return n
}

// Label returns the unescaped label text.
func (n *Node) Label() string { return n.label }

// Points returns a copy of the point sequence.
func (n *Node) Points() []vec.Vec2 { return slices.Clone(n.points) }

// Options returns the option set of the node.
func (n *Node) Options() *OptionSet[NodeOption] { return &n.options }

// Color returns the color option, if set.
func (n *Node) Color() (Color, bool) { return colorOf(&n.options) }

// Clone returns a deep copy.
func (n *Node) Clone() *Node { return &Node{path: n.path.clone(), label: n.label} }

func (*Node) Kind() PartKind { return KindNode }

// Export renders the node as a single \node line.
func (n *Node) Export() (markup.Lines, error) {
	head, err := n.head(`\node`)
	if err != nil {
		return nil, err
	}
	coords, err := n.coordinates(KindNode)
	if err != nil {
		return nil, err
	}
	return markup.Of(head + " at " + coords[0] + " {" + EscapeText(n.label) + "};"), nil
}

// texEscaper replaces the characters that have a special meaning in LaTeX
// running text. Line breaks become spaces so that escaped text always fits
// on one markup line.
var texEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeText escapes s for use as LaTeX running text.
func EscapeText(s string) string {
	return texEscaper.Replace(s)
}

func (*Polygon) part()  {}
func (*Polygon) shape() {}
func (*Line) part()     {}
func (*Line) shape()    {}
func (*Node) part()     {}
func (*Node) shape()    {}
