package latex

// Corporate colors of the KIT design guide.
var (
	KITGreen   = Color{R: 0, G: 150, B: 130}  // #009682
	KITBlue    = Color{R: 70, G: 100, B: 170} // #4664AA
	KITBlack   = Color{R: 0, G: 0, B: 0}      // #000000
	KITBlack70 = Color{R: 64, G: 64, B: 64}   // #404040

	KITYellow   = Color{R: 252, G: 229, B: 0}  // #FCE500
	KITOrange   = Color{R: 223, G: 155, B: 27} // #DF9B1B
	KITMayGreen = Color{R: 140, G: 182, B: 60} // #8CB63C
	KITRed      = Color{R: 162, G: 34, B: 35}  // #A22223
	KITPurple   = Color{R: 163, G: 16, B: 124} // #A3107C
	KITBrown    = Color{R: 167, G: 130, B: 46} // #A7822E
	KITCyan     = Color{R: 35, G: 161, B: 224} // #23A1E0
)

// Palette maps lowercase names to the predefined colors. Scene files refer
// to these names.
var Palette = map[string]Color{
	"kit-green":     KITGreen,
	"kit-blue":      KITBlue,
	"kit-black":     KITBlack,
	"kit-black-70":  KITBlack70,
	"kit-yellow":    KITYellow,
	"kit-orange":    KITOrange,
	"kit-may-green": KITMayGreen,
	"kit-red":       KITRed,
	"kit-purple":    KITPurple,
	"kit-brown":     KITBrown,
	"kit-cyan":      KITCyan,
}
