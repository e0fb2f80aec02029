package latex

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tikzdoc/pkg/errors"
)

// Color is an immutable RGB triple.
//
// Two colors are equal exactly when their components are equal, which also
// makes Color usable as a map key for deduplication.
type Color struct {
	R, G, B uint8
}

// RGB returns the color with the given components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Name returns the canonical identifier of the color, e.g. "0x640f08".
// The name is fixed-width lowercase hex and therefore injective.
func (c Color) Name() string {
	return fmt.Sprintf("0x%02x%02x%02x", c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Definition returns the preamble line declaring the color under its
// canonical name.
func (c Color) Definition() string {
	return fmt.Sprintf(`\definecolor{%s}{RGB}{%d,%d,%d}`, c.Name(), c.R, c.G, c.B)
}

// Compare orders colors lexicographically on (R, G, B).
func (c Color) Compare(o Color) int {
	if r := cmp.Compare(c.R, o.R); r != 0 {
		return r
	}
	if g := cmp.Compare(c.G, o.G); g != 0 {
		return g
	}
	return cmp.Compare(c.B, o.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid hex color %q", s)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// LookupColor resolves a palette name (see [Palette]) or a hex string.
func LookupColor(s string) (Color, error) {
	if c, ok := Palette[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return ColorFromHex(strings.TrimSpace(s))
}
