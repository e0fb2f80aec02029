package latex

import (
	"fmt"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/markup"
)

// DocumentClass selects the LaTeX document class.
type DocumentClass int

const (
	Article DocumentClass = iota
	Beamer
)

var documentClassNames = map[DocumentClass]string{
	Article: "article",
	Beamer:  "beamer",
}

func (c DocumentClass) String() string {
	if s, ok := documentClassNames[c]; ok {
		return s
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// ParseDocumentClass parses "article" or "beamer" (case-insensitive).
func ParseDocumentClass(s string) (DocumentClass, error) {
	for c, name := range documentClassNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidOption, "unknown document class %q (want article or beamer)", s)
}

// defaultFontSize is the base font size of each class when no
// [FontSizeOption] is set. Zero leaves the class default alone.
var defaultFontSize = map[DocumentClass]FontSizeOption{
	Article: 10,
}

// validFontSizes lists the font sizes each class ships option files for.
var validFontSizes = map[DocumentClass][]FontSizeOption{
	Article: {10, 11, 12},
	Beamer:  {8, 9, 10, 11, 12, 14, 17, 20},
}

// Fixed preamble lines.
const (
	lineInputEncoding = `\usepackage[utf8]{inputenc}`
	lineBeginDocument = `\begin{document}`
	lineEndDocument   = `\end{document}`
)

// pictureLines are emitted once when the document contains any picture.
var pictureLines = []string{
	`\usepackage{tikz}`,
	`\usepackage{pgfplots}`,
	`\usetikzlibrary{external}`,
	`\usepackage{color}`,
	`\usetikzlibrary{arrows, automata, positioning, shapes.misc}`,
}

// Document is the root of a part tree. It owns the top-level blocks and the
// document-wide options, and produces the complete file: preamble, color
// declarations and body.
type Document struct {
	blocks  []Block
	options OptionSet[DocumentOption]
}

// NewDocument returns an empty document of the given class.
func NewDocument(class DocumentClass) *Document {
	d := &Document{}
	d.options.Insert(ClassOption(class))
	return d
}

// Add appends top-level blocks in order. Nil blocks are ignored.
func (d *Document) Add(blocks ...Block) *Document {
	d.blocks = appendNonNil(d.blocks, blocks)
	return d
}

// WithOption sets o, replacing an earlier option of the same kind.
func (d *Document) WithOption(o DocumentOption) *Document {
	d.options.Insert(o)
	return d
}

// Class returns the document class.
func (d *Document) Class() DocumentClass {
	if o, ok := d.options.Get(OptionClass); ok {
		if c, ok := o.(ClassOption); ok {
			return DocumentClass(c)
		}
	}
	return Article
}

// Blocks returns the top-level blocks.
func (d *Document) Blocks() []Block { return slices.Clone(d.blocks) }

// Options returns the document option set.
func (d *Document) Options() *OptionSet[DocumentOption] { return &d.options }

// Parts yields every part of the document in pre-order. See [Flatten].
func (d *Document) Parts() iter.Seq[Part] {
	return Flatten(asParts(d.blocks)...)
}

// Colors returns the distinct colors used by any drawable of the document,
// ordered by [Color.Compare].
func (d *Document) Colors() []Color {
	seen := make(map[Color]struct{})
	var colors []Color
	for p := range d.Parts() {
		c, ok := ColorOf(p)
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	slices.SortFunc(colors, Color.Compare)
	return colors
}

// HasPictures reports whether the document contains a picture anywhere.
func (d *Document) HasPictures() bool {
	for p := range d.Parts() {
		if p.Kind() == KindPicture {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{blocks: cloneAll(d.blocks), options: d.options.Clone()}
}

// Export renders the complete document. Any failing part aborts the export
// and no lines are returned.
func (d *Document) Export() (markup.Lines, error) {
	classLine, err := d.classLine()
	if err != nil {
		return nil, err
	}

	lines := markup.Of(classLine, lineInputEncoding)
	if d.HasPictures() {
		lines = lines.Append(pictureLines...)
	}
	for _, c := range d.Colors() {
		lines = lines.Append(c.Definition())
	}

	lines = lines.Append(lineBeginDocument)
	for i, b := range d.blocks {
		bl, err := b.Export()
		if err != nil {
			return nil, prefixPosition(err, b.Kind(), i)
		}
		lines = lines.Concat(bl.Indented(1))
	}
	return lines.Append(lineEndDocument), nil
}

// classLine renders the \documentclass line.
func (d *Document) classLine() (string, error) {
	class := d.Class()
	name, err := ClassOption(class).Render()
	if err != nil {
		return "", err
	}

	size := defaultFontSize[class]
	if o, ok := d.options.Get(OptionFontSize); ok {
		size = o.(FontSizeOption)
		if !slices.Contains(validFontSizes[class], size) {
			return "", errors.New(errors.ErrCodeInvalidOption, "font size %dpt not available for %s", int(size), class)
		}
	}
	if size == 0 {
		return `\documentclass{` + name + `}`, nil
	}

	opt, err := size.Render()
	if err != nil {
		return "", err
	}
	return `\documentclass[` + opt + `]{` + name + `}`, nil
}

// String renders the document, or the error message if the export fails.
func (d *Document) String() string {
	lines, err := d.Export()
	if err != nil {
		return err.Error()
	}
	return lines.String()
}

// WriteFile exports the document and writes it to path. The path must name
// a file ([errors.ErrCodePathIsNoFile]); nothing is written if the export
// fails.
func (d *Document) WriteFile(path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	lines, err := d.Export()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if _, err := lines.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}

func prefixPosition(err error, kind PartKind, i int) error {
	return errors.Prefix(err, fmt.Sprintf("%s[%d]", kind, i))
}
