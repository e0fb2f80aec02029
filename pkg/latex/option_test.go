package latex

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/tikzdoc/pkg/errors"
)

func TestOptionSetOverwrite(t *testing.T) {
	var s OptionSet[PolygonOption]
	a, b := RGB(1, 2, 3), RGB(4, 5, 6)

	s.Insert(Colored(a))
	s.Insert(Colored(b))

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, ok := s.Get(OptionColor)
	if !ok {
		t.Fatal("Get(OptionColor) missing")
	}
	if got.(ColorOption).Color != b {
		t.Errorf("Get(OptionColor) = %v, want %v", got, b)
	}
}

func TestOptionSetKeepsFirstSlot(t *testing.T) {
	var s OptionSet[LineOption]
	s.Insert(Colored(KITRed))
	s.Insert(LineWidthOption(2))
	s.Insert(Colored(KITBlue))

	var kinds []OptionKind
	for o := range s.All() {
		kinds = append(kinds, o.OptionKind())
	}
	want := []OptionKind{OptionColor, OptionLineWidth}
	if !slices.Equal(kinds, want) {
		t.Errorf("All() kinds = %v, want %v", kinds, want)
	}

	rendered, err := s.render()
	if err != nil {
		t.Fatal(err)
	}
	// The color keeps its first position but carries the latest value.
	if want := "color=0x4664aa, line width=2pt"; rendered != want {
		t.Errorf("render() = %q, want %q", rendered, want)
	}
}

func TestOptionSetZeroValue(t *testing.T) {
	var s OptionSet[NodeOption]
	if s.Contains(OptionColor) {
		t.Error("empty set contains color")
	}
	if _, ok := s.Get(OptionAnchor); ok {
		t.Error("empty set returned an anchor")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if r, err := s.render(); err != nil || r != "" {
		t.Errorf("render() = %q, %v", r, err)
	}
}

func TestOptionSetClone(t *testing.T) {
	var s OptionSet[PolygonOption]
	s.Insert(Colored(KITGreen))

	c := s.Clone()
	c.Insert(Colored(KITCyan))
	c.Insert(OpacityOption(0.5))

	got, _ := s.Get(OptionColor)
	if got.(ColorOption).Color != KITGreen {
		t.Error("Clone shares storage with the original")
	}
	if s.Contains(OptionOpacity) {
		t.Error("Clone shares the index with the original")
	}
}

func TestOptionRender(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		want    string
		wantErr errors.Code
	}{
		{"color", Colored(RGB(100, 15, 8)), "color=0x640f08", ""},
		{"scale", ScaleOption(0.5), "scale=0.5", ""},
		{"scale integer", ScaleOption(2), "scale=2", ""},
		{"scale +inf", ScaleOption(math.Inf(1)), "", errors.ErrCodeNotFiniteFloat},
		{"scale nan", ScaleOption(math.NaN()), "", errors.ErrCodeNotFiniteFloat},
		{"opacity", OpacityOption(0.25), "opacity=0.25", ""},
		{"opacity too large", OpacityOption(1.5), "", errors.ErrCodeInvalidOption},
		{"opacity -inf", OpacityOption(math.Inf(-1)), "", errors.ErrCodeNotFiniteFloat},
		{"line width", LineWidthOption(0.4), "line width=0.4pt", ""},
		{"line width zero", LineWidthOption(0), "", errors.ErrCodeInvalidOption},
		{"anchor", AnchorNorthWest, "anchor=north west", ""},
		{"anchor unknown", AnchorOption("up"), "", errors.ErrCodeInvalidOption},
		{"class", ClassOption(Beamer), "beamer", ""},
		{"class unknown", ClassOption(7), "", errors.ErrCodeInvalidOption},
		{"font size", FontSizeOption(11), "11pt", ""},
		{"font size negative", FontSizeOption(-1), "", errors.ErrCodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opt.Render()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Render() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionKindString(t *testing.T) {
	if OptionLineWidth.String() != "line width" {
		t.Errorf("OptionLineWidth.String() = %q", OptionLineWidth.String())
	}
	if OptionKind(99).String() != "option(99)" {
		t.Errorf("unknown kind String() = %q", OptionKind(99).String())
	}
}
