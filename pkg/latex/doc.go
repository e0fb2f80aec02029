// Package latex models a LaTeX document as a tree of typed parts and renders
// it into indented markup.
//
// # Part Tree
//
// A [Document] holds top-level [Block] parts: pictures, beamer frames and
// center environments. Pictures hold [Shape] parts: the drawables [Polygon],
// [Line] and [Node], and [Visible] scopes that restrict shapes to some
// overlays of a frame. The split into Block and Shape makes illegal nesting
// (a \fill outside a tikzpicture) a compile error.
//
//	poly := latex.NewPolygon().
//	    WithOption(latex.Colored(latex.RGB(100, 15, 8))).
//	    Point(0, 9.1).Point(30, 9.1).Point(30, 12.6).Point(0, 12.6)
//
//	doc := latex.NewDocument(latex.Article).
//	    Add(latex.NewPicture().Add(poly).WithOption(latex.ScaleOption(0.5)))
//
//	lines, err := doc.Export()
//
// Builders mutate and return their receiver; the call order decides the
// order of children and which option of a kind wins.
//
// # Options
//
// Every option has an [OptionKind]. An [OptionSet] keeps one option per
// kind: setting a color twice keeps the second color in the slot of the
// first. Options validate their payload when rendered, so a non-finite scale
// fails the export with NOT_FINITE_FLOAT.
//
// # Export
//
// Each part exports independently at indentation 0. Containers wrap the
// lines of their children between a begin and an end marker and raise the
// children's indentation by one. The document adds the preamble, one
// \definecolor per distinct color found anywhere in the tree (sorted by
// component), and the document environment.
//
// Export is fail-fast: the first failing part aborts the whole export. The
// returned error keeps the code of the failure and names the path to the
// failing part, e.g. "frame[0] > tikzpicture[1] > polygon[0] > polygon has
// no points".
//
// # Traversal
//
// [Flatten] and [Document.Parts] yield all parts in pre-order without
// recursion. [Children] exposes the direct children of any part.
package latex
