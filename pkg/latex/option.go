package latex

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/tikzdoc/pkg/errors"
)

// OptionKind is the discriminant of an option. Option sets are keyed by
// kind, never by payload.
type OptionKind int

const (
	OptionColor OptionKind = iota + 1
	OptionOpacity
	OptionLineWidth
	OptionAnchor
	OptionScale
	OptionClass
	OptionFontSize
)

var optionKindNames = map[OptionKind]string{
	OptionColor:     "color",
	OptionOpacity:   "opacity",
	OptionLineWidth: "line width",
	OptionAnchor:    "anchor",
	OptionScale:     "scale",
	OptionClass:     "class",
	OptionFontSize:  "font size",
}

func (k OptionKind) String() string {
	if s, ok := optionKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("option(%d)", int(k))
}

// Option is a single styling setting.
type Option interface {
	// OptionKind returns the slot the option occupies in an [OptionSet].
	OptionKind() OptionKind
	// Render returns the markup of the option, e.g. "scale=0.5". Payloads
	// that cannot be rendered are rejected here, before they reach a part.
	Render() (string, error)
}

// Options accepted by each part type. The marker methods restrict at
// compile time which option can be attached where.
type (
	PolygonOption interface {
		Option
		polygonOption()
	}
	LineOption interface {
		Option
		lineOption()
	}
	NodeOption interface {
		Option
		nodeOption()
	}
	PictureOption interface {
		Option
		pictureOption()
	}
	DocumentOption interface {
		Option
		documentOption()
	}
)

// =============================================================================
// OptionSet
// =============================================================================

// OptionSet holds at most one option per [OptionKind]. Inserting an option
// whose kind is already present replaces the earlier value in place, so the
// iteration order is the order in which kinds were first inserted.
//
// The zero value is an empty set ready to use.
type OptionSet[O Option] struct {
	slots []O
	index map[OptionKind]int
}

// Insert adds o, replacing any option of the same kind.
func (s *OptionSet[O]) Insert(o O) {
	k := o.OptionKind()
	if i, ok := s.index[k]; ok {
		s.slots[i] = o
		return
	}
	if s.index == nil {
		s.index = make(map[OptionKind]int)
	}
	s.index[k] = len(s.slots)
	s.slots = append(s.slots, o)
}

// Get returns the option stored for kind.
func (s *OptionSet[O]) Get(kind OptionKind) (O, bool) {
	if i, ok := s.index[kind]; ok {
		return s.slots[i], true
	}
	var zero O
	return zero, false
}

// Contains reports whether an option of kind is present.
func (s *OptionSet[O]) Contains(kind OptionKind) bool {
	_, ok := s.index[kind]
	return ok
}

// Len returns the number of options in the set.
func (s *OptionSet[O]) Len() int {
	return len(s.slots)
}

// All yields the options in slot order.
func (s *OptionSet[O]) All() iter.Seq[O] {
	return slices.Values(s.slots)
}

// Clone returns an independent copy of the set.
func (s *OptionSet[O]) Clone() OptionSet[O] {
	c := OptionSet[O]{slots: slices.Clone(s.slots)}
	if s.index != nil {
		c.index = make(map[OptionKind]int, len(s.index))
		for k, v := range s.index {
			c.index[k] = v
		}
	}
	return c
}

// render joins the rendered options with ", ".
func (s *OptionSet[O]) render() (string, error) {
	parts := make([]string, 0, len(s.slots))
	for _, o := range s.slots {
		r, err := o.Render()
		if err != nil {
			return "", err
		}
		parts = append(parts, r)
	}
	return strings.Join(parts, ", "), nil
}

// colorOf returns the payload of the color option of s, if any.
func colorOf[O Option](s *OptionSet[O]) (Color, bool) {
	o, ok := s.Get(OptionColor)
	if !ok {
		return Color{}, false
	}
	c, ok := any(o).(ColorOption)
	return c.Color, ok
}

// =============================================================================
// Options
// =============================================================================

// ColorOption colors a drawable. The color is declared in the preamble by
// the enclosing [Document].
type ColorOption struct {
	Color Color
}

// Colored returns a color option for c.
func Colored(c Color) ColorOption {
	return ColorOption{Color: c}
}

func (ColorOption) OptionKind() OptionKind { return OptionColor }

func (o ColorOption) Render() (string, error) {
	return "color=" + o.Color.Name(), nil
}

// OpacityOption sets the opacity of a drawable, from 0 (invisible) to 1.
type OpacityOption float64

func (OpacityOption) OptionKind() OptionKind { return OptionOpacity }

func (o OpacityOption) Render() (string, error) {
	v := float64(o)
	if err := checkFinite(OptionOpacity, v); err != nil {
		return "", err
	}
	if v < 0 || v > 1 {
		return "", errors.New(errors.ErrCodeInvalidOption, "opacity %s out of range [0, 1]", formatFloat(v))
	}
	return "opacity=" + formatFloat(v), nil
}

// LineWidthOption sets the stroke width of a line in points.
type LineWidthOption float64

func (LineWidthOption) OptionKind() OptionKind { return OptionLineWidth }

func (o LineWidthOption) Render() (string, error) {
	v := float64(o)
	if err := checkFinite(OptionLineWidth, v); err != nil {
		return "", err
	}
	if v <= 0 {
		return "", errors.New(errors.ErrCodeInvalidOption, "line width %s must be positive", formatFloat(v))
	}
	return "line width=" + formatFloat(v) + "pt", nil
}

// AnchorOption selects which point of a node's box sits on its position.
type AnchorOption string

// Anchors understood by TikZ for every node shape.
const (
	AnchorCenter    AnchorOption = "center"
	AnchorNorth     AnchorOption = "north"
	AnchorNorthEast AnchorOption = "north east"
	AnchorEast      AnchorOption = "east"
	AnchorSouthEast AnchorOption = "south east"
	AnchorSouth     AnchorOption = "south"
	AnchorSouthWest AnchorOption = "south west"
	AnchorWest      AnchorOption = "west"
	AnchorNorthWest AnchorOption = "north west"
)

var validAnchors = map[AnchorOption]bool{
	AnchorCenter: true, AnchorNorth: true, AnchorNorthEast: true,
	AnchorEast: true, AnchorSouthEast: true, AnchorSouth: true,
	AnchorSouthWest: true, AnchorWest: true, AnchorNorthWest: true,
}

func (AnchorOption) OptionKind() OptionKind { return OptionAnchor }

func (o AnchorOption) Render() (string, error) {
	if !validAnchors[o] {
		return "", errors.New(errors.ErrCodeInvalidOption, "unknown anchor %q", string(o))
	}
	return "anchor=" + string(o), nil
}

// ScaleOption scales a whole picture.
type ScaleOption float64

func (ScaleOption) OptionKind() OptionKind { return OptionScale }

func (o ScaleOption) Render() (string, error) {
	if err := checkFinite(OptionScale, float64(o)); err != nil {
		return "", err
	}
	return "scale=" + formatFloat(float64(o)), nil
}

// ClassOption selects the document class.
type ClassOption DocumentClass

func (ClassOption) OptionKind() OptionKind { return OptionClass }

func (o ClassOption) Render() (string, error) {
	c := DocumentClass(o)
	if _, ok := documentClassNames[c]; !ok {
		return "", errors.New(errors.ErrCodeInvalidOption, "unknown document class %d", int(c))
	}
	return c.String(), nil
}

// FontSizeOption sets the base font size of the document in points.
type FontSizeOption int

func (FontSizeOption) OptionKind() OptionKind { return OptionFontSize }

func (o FontSizeOption) Render() (string, error) {
	if o <= 0 {
		return "", errors.New(errors.ErrCodeInvalidOption, "font size %d must be positive", int(o))
	}
	return strconv.Itoa(int(o)) + "pt", nil
}

func (ColorOption) polygonOption()     {}
func (ColorOption) lineOption()        {}
func (ColorOption) nodeOption()        {}
func (OpacityOption) polygonOption()   {}
func (OpacityOption) lineOption()      {}
func (OpacityOption) nodeOption()      {}
func (LineWidthOption) lineOption()    {}
func (AnchorOption) nodeOption()       {}
func (ScaleOption) pictureOption()     {}
func (ClassOption) documentOption()    {}
func (FontSizeOption) documentOption() {}

// =============================================================================
// Number formatting
// =============================================================================

// formatFloat renders v in the shortest form that round-trips, without
// exponent: 0.5, 9.1, 30.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkFinite(kind OptionKind, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return errors.New(errors.ErrCodeNotFiniteFloat, "%s is not a finite number: %v", kind, v)
	}
	return nil
}
