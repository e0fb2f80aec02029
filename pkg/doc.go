// Package pkg provides the libraries behind tikzdoc, a builder for LaTeX
// documents with TikZ pictures and beamer overlays.
//
// # Overview
//
// A document is a tree of typed parts. Containers (pictures, frames,
// centered blocks, overlay scopes) hold drawables (polygons, lines, text
// nodes), each carrying a small set of options. Exporting the tree yields
// indented markup with a preamble that declares every color the drawables
// use.
//
//  1. [latex] - the part tree, options, colors and export
//  2. [markup] - indentation-tagged line buffers
//  3. [scene] - TOML/JSON scene files decoded into part trees
//  4. [compiler] - runs a LaTeX engine on exported files
//  5. [pipeline] - orchestration (load → export → write → compile)
//  6. [cache] - compiled PDFs keyed by markup hash
//  7. [treeviz] - Graphviz diagrams of the part tree
//
// # Data Flow
//
//	scene file (.toml / .json)
//	         ↓
//	    [scene] package (decode + build)
//	         ↓
//	    [latex] package (part tree → markup lines)
//	         ↓
//	    .tex file
//	         ↓
//	    [compiler] package (pdflatex, cached via [cache])
//	         ↓
//	    .pdf file
//
// # Quick Start
//
//	doc := latex.NewDocument(latex.Beamer).Add(
//	    latex.NewFrame().WithTitle("Overlays").Add(
//	        latex.NewPicture().Add(
//	            latex.NewVisible(2).Add(
//	                latex.NewPolygon().
//	                    WithOption(latex.Colored(latex.KITGreen)).
//	                    Point(0, 0).Point(2, 0).Point(1, 1),
//	            ),
//	        ),
//	    ),
//	)
//	if err := doc.WriteFile("slides.tex"); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors carry a code from [errors] and, for failures inside the tree, the
// path of the failing part:
//
//	NO_POINTS: frame[0] > tikzpicture[0] > visible[0] > polygon[0] > polygon has no points
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/latex/...     # Specific package
//	go test -run Example        # Examples only
//	go test -short ./...        # Skip Graphviz rendering
//
// [latex]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/latex
// [markup]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/markup
// [scene]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/scene
// [compiler]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/compiler
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/cache
// [treeviz]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/treeviz
// [errors]: https://pkg.go.dev/github.com/matzehuels/tikzdoc/pkg/errors
package pkg
