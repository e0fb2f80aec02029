package latex

import (
	"fmt"
	"iter"

	"github.com/matzehuels/tikzdoc/pkg/markup"
)

// PartKind is the discriminant of a [Part].
type PartKind int

const (
	KindPolygon PartKind = iota + 1
	KindLine
	KindNode
	KindPicture
	KindFrame
	KindCenter
	KindVisible
)

var partKindNames = map[PartKind]string{
	KindPolygon: "polygon",
	KindLine:    "line",
	KindNode:    "node",
	KindPicture: "tikzpicture",
	KindFrame:   "frame",
	KindCenter:  "center",
	KindVisible: "visible",
}

func (k PartKind) String() string {
	if s, ok := partKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("part(%d)", int(k))
}

// IsContainer reports whether parts of this kind hold children.
func (k PartKind) IsContainer() bool {
	switch k {
	case KindPicture, KindFrame, KindCenter, KindVisible:
		return true
	}
	return false
}

// Part is a node of a document tree. The set of implementations is closed:
// drawables ([*Polygon], [*Line], [*Node]) and containers ([*Picture],
// [*Frame], [*Center], [*Visible]).
type Part interface {
	Kind() PartKind
	// Export renders the part at indentation 0.
	Export() (markup.Lines, error)
	part()
}

// Block is a part that lives at document level: [*Picture], [*Frame] or
// [*Center].
type Block interface {
	Part
	block()
}

// Shape is a part that lives inside a picture: [*Polygon], [*Line], [*Node]
// or [*Visible].
type Shape interface {
	Part
	shape()
}

// Children returns the direct children of p in insertion order. Drawables
// have none.
func Children(p Part) []Part {
	switch p := p.(type) {
	case *Picture:
		return asParts(p.children)
	case *Visible:
		return asParts(p.children)
	case *Frame:
		return asParts(p.children)
	case *Center:
		return asParts(p.children)
	}
	return nil
}

func asParts[P Part](ps []P) []Part {
	out := make([]Part, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

// Flatten yields every part of the trees rooted at roots in pre-order: a
// root first, then its children depth-first in insertion order, then the
// next root. The sequence is lazy and can be ranged over any number of
// times. It never modifies the tree.
//
// Traversal uses an explicit stack, so deeply nested trees do not grow the
// goroutine stack.
func Flatten(roots ...Part) iter.Seq[Part] {
	return func(yield func(Part) bool) {
		stack := make([]Part, 0, len(roots))
		for i := len(roots) - 1; i >= 0; i-- {
			stack = append(stack, roots[i])
		}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(p) {
				return
			}
			children := Children(p)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// ColorOf returns the color option of a drawable. Containers have no color.
func ColorOf(p Part) (Color, bool) {
	switch p := p.(type) {
	case *Polygon:
		return p.Color()
	case *Line:
		return p.Color()
	case *Node:
		return p.Color()
	}
	return Color{}, false
}

// exportChildren renders begin, then every child one level deeper, then
// end. The first failing child aborts the export; its error is prefixed
// with the child's position so the message shows the path to the failure.
func exportChildren[P Part](begin, end string, children []P) (markup.Lines, error) {
	lines := markup.Of(begin)
	for i, c := range children {
		cl, err := c.Export()
		if err != nil {
			return nil, prefixPosition(err, c.Kind(), i)
		}
		lines = lines.Concat(cl.Indented(1))
	}
	return lines.Append(end), nil
}
