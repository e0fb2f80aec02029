package latex

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/markup"
)

// =============================================================================
// Picture
// =============================================================================

// Picture is a tikzpicture environment holding shapes.
type Picture struct {
	children []Shape
	options  OptionSet[PictureOption]
}

// NewPicture returns an empty picture.
func NewPicture() *Picture {
	return &Picture{}
}

// Add appends shapes in order. Nil shapes are ignored.
func (p *Picture) Add(shapes ...Shape) *Picture {
	p.children = appendNonNil(p.children, shapes)
	return p
}

// WithOption sets o, replacing an earlier option of the same kind.
func (p *Picture) WithOption(o PictureOption) *Picture {
	p.options.Insert(o)
	return p
}

// Shapes returns the direct children.
func (p *Picture) Shapes() []Shape { return slices.Clone(p.children) }

// Options returns the option set of the picture.
func (p *Picture) Options() *OptionSet[PictureOption] { return &p.options }

// Clone returns a deep copy of the picture and its subtree.
func (p *Picture) Clone() *Picture {
	return &Picture{children: cloneAll(p.children), options: p.options.Clone()}
}

func (*Picture) Kind() PartKind { return KindPicture }

// Export renders the picture environment with its options.
func (p *Picture) Export() (markup.Lines, error) {
	opts, err := p.options.render()
	if err != nil {
		return nil, err
	}
	return exportChildren(`\begin{tikzpicture}[`+opts+`]`, `\end{tikzpicture}`, p.children)
}

// =============================================================================
// Frame
// =============================================================================

// Frame is a beamer frame (one slide, possibly with several overlays).
type Frame struct {
	title    string
	children []Block
}

// NewFrame returns an empty, untitled frame.
func NewFrame() *Frame {
	return &Frame{}
}

// WithTitle sets the frame title.
func (f *Frame) WithTitle(title string) *Frame {
	f.title = title
	return f
}

// Title returns the unescaped frame title.
func (f *Frame) Title() string { return f.title }

// Add appends blocks in order. Nil blocks are ignored.
func (f *Frame) Add(blocks ...Block) *Frame {
	f.children = appendNonNil(f.children, blocks)
	return f
}

// Blocks returns the direct children.
func (f *Frame) Blocks() []Block { return slices.Clone(f.children) }

// Clone returns a deep copy of the frame and its subtree.
func (f *Frame) Clone() *Frame {
	return &Frame{title: f.title, children: cloneAll(f.children)}
}

func (*Frame) Kind() PartKind { return KindFrame }

// Export renders the frame environment.
func (f *Frame) Export() (markup.Lines, error) {
	begin := `\begin{frame}`
	if f.title != "" {
		begin += "{" + EscapeText(f.title) + "}"
	}
	return exportChildren(begin, `\end{frame}`, f.children)
}

// =============================================================================
// Center
// =============================================================================

// Center horizontally centers its blocks.
type Center struct {
	children []Block
}

// NewCenter returns an empty center environment.
func NewCenter() *Center {
	return &Center{}
}

// Add appends blocks in order. Nil blocks are ignored.
func (c *Center) Add(blocks ...Block) *Center {
	c.children = appendNonNil(c.children, blocks)
	return c
}

// Blocks returns the direct children.
func (c *Center) Blocks() []Block { return slices.Clone(c.children) }

// Clone returns a deep copy of the environment and its subtree.
func (c *Center) Clone() *Center {
	return &Center{children: cloneAll(c.children)}
}

func (*Center) Kind() PartKind { return KindCenter }

// Export renders the center environment.
func (c *Center) Export() (markup.Lines, error) {
	return exportChildren(`\begin{center}`, `\end{center}`, c.children)
}

// =============================================================================
// Visible
// =============================================================================

// Visible shows its shapes only on the given overlays (slides) of a beamer
// frame. Overlays are numbered from 1.
//
//	\visible<1-3,5>{
//		\fill[] (0, 0) -- (1, 0) -- (1, 1) -- cycle;
//	}
type Visible struct {
	frames   map[int]struct{}
	children []Shape
}

// NewVisible returns a visibility scope for the given overlays.
func NewVisible(frames ...int) *Visible {
	v := &Visible{frames: make(map[int]struct{})}
	return v.On(frames...)
}

// On adds overlays to the scope.
func (v *Visible) On(frames ...int) *Visible {
	if v.frames == nil {
		v.frames = make(map[int]struct{})
	}
	for _, f := range frames {
		v.frames[f] = struct{}{}
	}
	return v
}

// Add appends shapes in order. Nil shapes are ignored.
func (v *Visible) Add(shapes ...Shape) *Visible {
	v.children = appendNonNil(v.children, shapes)
	return v
}

// Frames returns the overlay numbers in ascending order.
func (v *Visible) Frames() []int {
	return slices.Sorted(maps.Keys(v.frames))
}

// Shapes returns the direct children.
func (v *Visible) Shapes() []Shape { return slices.Clone(v.children) }

// Clone returns a deep copy of the scope and its subtree.
func (v *Visible) Clone() *Visible {
	return &Visible{frames: maps.Clone(v.frames), children: cloneAll(v.children)}
}

func (*Visible) Kind() PartKind { return KindVisible }

// Export renders the scope as a \visible group. An empty overlay set or an
// overlay number below 1 is an [errors.ErrCodeInvalidOverlay].
func (v *Visible) Export() (markup.Lines, error) {
	spec, err := OverlaySpec(v.Frames())
	if err != nil {
		return nil, err
	}
	return exportChildren(`\visible<`+spec+`>{`, `}`, v.children)
}

// OverlaySpec compresses overlay numbers into a beamer overlay
// spec: [5 1 2 3] becomes "1-3,5". Duplicates are ignored.
func OverlaySpec(frames []int) (string, error) {
	frames = slices.Compact(slices.Sorted(slices.Values(frames)))
	if len(frames) == 0 {
		return "", errors.New(errors.ErrCodeInvalidOverlay, "visible scope has no overlays")
	}
	if frames[0] < 1 {
		return "", errors.New(errors.ErrCodeInvalidOverlay, "overlay %d out of range (overlays start at 1)", frames[0])
	}

	var ranges []string
	start, prev := frames[0], frames[0]
	flush := func() {
		if start == prev {
			ranges = append(ranges, strconv.Itoa(start))
		} else {
			ranges = append(ranges, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}
	for _, f := range frames[1:] {
		if f == prev+1 {
			prev = f
			continue
		}
		flush()
		start, prev = f, f
	}
	flush()
	return strings.Join(ranges, ","), nil
}

// =============================================================================
// Helpers
// =============================================================================

func appendNonNil[P Part](dst, src []P) []P {
	for _, p := range src {
		if any(p) != nil {
			dst = append(dst, p)
		}
	}
	return dst
}

// cloneAll deep-copies every part of ps.
func cloneAll[P Part](ps []P) []P {
	out := make([]P, len(ps))
	for i, p := range ps {
		out[i] = Clone(p).(P)
	}
	return out
}

// Clone returns a deep copy of p and its subtree.
func Clone(p Part) Part {
	switch p := p.(type) {
	case *Polygon:
		return p.Clone()
	case *Line:
		return p.Clone()
	case *Node:
		return p.Clone()
	case *Picture:
		return p.Clone()
	case *Frame:
		return p.Clone()
	case *Center:
		return p.Clone()
	case *Visible:
		return p.Clone()
	}
	return p
}

func (*Picture) part()  {}
func (*Picture) block() {}
func (*Frame) part()    {}
func (*Frame) block()   {}
func (*Center) part()   {}
func (*Center) block()  {}
func (*Visible) part()  {}
func (*Visible) shape() {}
